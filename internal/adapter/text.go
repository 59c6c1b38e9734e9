package adapter

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy 去掉全部标签，script/style 连同内容一起丢弃；构建后可并发使用
var strictPolicy = bluemonday.StrictPolicy()

// StripHTML 去掉 HTML 标签并反转义实体
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Truncate 按字符截断，不切断多字节字符
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// JoinTitleBody 标题与正文以空行拼接，正文为空时只返回标题
func JoinTitleBody(title, body string) string {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if body == "" {
		return title
	}
	return title + "\n\n" + body
}

// DescriptionWithLink 机会描述：正文前 400 个字符，末尾附原帖链接
func DescriptionWithLink(text, link string) string {
	return Truncate(strings.TrimSpace(text), 400) + "\n\nLink: " + link
}

// MinTextLength 太短的文本没有分析价值
const MinTextLength = 20
