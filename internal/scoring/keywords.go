package scoring

import "strings"

// Keywords 评分输入里的关键词列表（统一为字符串切片，入口处完成归一化）
type Keywords []string

// ParseKeywords 把逗号或换行分隔的字符串解析为 Keywords，去掉首尾空白与空项
func ParseKeywords(raw string) Keywords {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make(Keywords, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Joined 小写后以空格拼接，用于子串匹配
func (k Keywords) Joined() string {
	return strings.ToLower(strings.Join(k, " "))
}

type weighted struct {
	term   string
	points int
}

// Rubric B 词表

var highIntentPhrases = []string{
	"how to prevent", "best tool for", "software for", "platform for",
	"solution for", "alternative to", "prevention", "automation",
	"tracking", "monitoring", "detection", "verification", "management",
}

var problemIndicators = []string{
	"theft", "fraud", "loss", "missing", "stolen",
	"slow", "manual", "inefficient", "expensive",
	"complicated", "difficult", "frustrating",
}

var b2bKeywords = []string{"freight", "cargo", "compliance", "verification", "reporting", "api"}

var selfServiceIndicators = []weighted{
	{"api", 5}, {"dashboard", 5}, {"automated", 5}, {"real-time", 4},
	{"instant", 4}, {"platform", 3}, {"saas", 4}, {"subscription", 4},
}

var salesRequiredIndicators = []weighted{
	{"enterprise", -8}, {"custom", -5}, {"integration", -3},
	{"consulting", -8}, {"implementation", -5},
}

var extremePainKeywords = []string{
	"existential", "crisis", "emergency", "urgent",
	"losing money", "losing customers", "costing",
	"theft", "fraud", "stolen", "breach",
}

var recurringIndicators = []weighted{
	{"daily", 5}, {"every", 4}, {"ongoing", 4}, {"continuous", 4},
	{"monitoring", 5}, {"tracking", 5}, {"real-time", 5},
	{"subscription", 5}, {"monthly", 4}, {"recurring", 5},
}
