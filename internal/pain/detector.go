// Package pain 从单条文本中提取痛点信号：挫败程度、预算信号、提及的产品、痛点关键词。
// 所有函数均为纯函数，不区分大小写，空文本返回零值结果。
package pain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxFrustrationScore = 10
	MaxBudgetScore      = 50
)

// Analysis 单条帖子的痛点分析结果
type Analysis struct {
	FrustrationScore   int      `json:"frustration_score"`   // 0-10
	BudgetSignalScore  int      `json:"budget_signal_score"` // 0-50
	PainKeywords       []string `json:"pain_keywords"`
	ProductsMentioned  []string `json:"products_mentioned"`
	HasSolutionSeeking bool     `json:"has_solution_seeking"`
	HasTimeInvestment  bool     `json:"has_time_investment"`
	DollarAmounts      []string `json:"dollar_amounts"`
}

// Analyze 痛点分析主入口
func Analyze(text string) Analysis {
	return Analysis{
		FrustrationScore:   FrustrationScore(text),
		BudgetSignalScore:  BudgetSignalScore(text),
		PainKeywords:       PainKeywords(text),
		ProductsMentioned:  ProductsMentioned(text),
		HasSolutionSeeking: HasSolutionSeeking(text),
		HasTimeInvestment:  HasTimeInvestment(text),
		DollarAmounts:      DollarAmounts(text),
	}
}

// matchAll 返回 text 中出现的词表项（按词表顺序，每项最多一次）
func matchAll(lower string, table []string) []string {
	matched := make([]string, 0)
	for _, kw := range table {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func containsAny(lower string, table []string) bool {
	for _, kw := range table {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CountFrustrationKeywords 命中的不同挫败关键词数量
func CountFrustrationKeywords(text string) int {
	return len(matchAll(strings.ToLower(text), frustrationKeywords))
}

// CountExclamationMarks 感叹号数量
func CountExclamationMarks(text string) int {
	return strings.Count(text, "!")
}

// CapsRatio 大写字母占全部字母的比例（忽略空格与标点）
func CapsRatio(text string) float64 {
	var letters, upper int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// FrustrationScore 挫败程度 0-10：关键词（上限 6）+ 感叹号（上限 2）+ 大写比例（上限 2）
func FrustrationScore(text string) int {
	score := min(6, CountFrustrationKeywords(text)*2)
	score += min(2, CountExclamationMarks(text))

	ratio := CapsRatio(text)
	switch {
	case ratio > 0.3:
		score += 2
	case ratio > 0.15:
		score++
	}
	return min(MaxFrustrationScore, score)
}

// DollarAmounts 按出现顺序提取金额字面量，允许重复
func DollarAmounts(text string) []string {
	found := dollarAmountPattern.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}

// CountBudgetKeywords 命中的不同预算关键词数量
func CountBudgetKeywords(text string) int {
	return len(matchAll(strings.ToLower(text), budgetKeywords))
}

// DetectPaidTools 命中的已知付费工具（小写，词表顺序）
func DetectPaidTools(text string) []string {
	return matchAll(strings.ToLower(text), knownPaidTools)
}

// BudgetSignalScore 预算信号 0-50。金额与付费工具都只看有无，不按次数累加
func BudgetSignalScore(text string) int {
	score := 0
	if len(DollarAmounts(text)) > 0 {
		score += 20
	}
	if len(DetectPaidTools(text)) > 0 {
		score += 20
	}
	score += min(10, CountBudgetKeywords(text)*5)
	return min(MaxBudgetScore, score)
}

// ProductsMentioned 提及的产品/公司：@提及、已知付费工具、首字母大写词（朴素启发式）。
// 不区分大小写去重，保留首次出现的写法与顺序。
func ProductsMentioned(text string) []string {
	var candidates []string
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, DetectPaidTools(text)...)
	for _, word := range capitalizedWords(text) {
		if _, skip := productStopwords[word]; skip || utf8.RuneCountInString(word) <= 2 {
			continue
		}
		candidates = append(candidates, word)
	}

	seen := make(map[string]struct{}, len(candidates))
	products := make([]string, 0, len(candidates))
	for _, p := range candidates {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		products = append(products, p)
	}
	return products
}

// capitalizedWords 首字母大写的完整单词；前后紧邻字母、数字或下划线的片段不算
func capitalizedWords(text string) []string {
	var words []string
	for _, loc := range capitalizedPattern.FindAllStringIndex(text, -1) {
		if r, _ := utf8.DecodeLastRuneInString(text[:loc[0]]); loc[0] > 0 && isWordRune(r) {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(text[loc[1]:]); loc[1] < len(text) && isWordRune(r) {
			continue
		}
		words = append(words, text[loc[0]:loc[1]])
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// HasSolutionSeeking 是否包含寻求解决方案的表达
func HasSolutionSeeking(text string) bool {
	return containsAny(strings.ToLower(text), solutionSeekingPhrases)
}

// HasTimeInvestment 是否提到时间投入
func HasTimeInvestment(text string) bool {
	return containsAny(strings.ToLower(text), timeInvestmentPhrases)
}

// PainKeywords 命中的痛点词：挫败词、寻求方案短语、时间投入短语，顺序固定
func PainKeywords(text string) []string {
	lower := strings.ToLower(text)
	keywords := matchAll(lower, frustrationKeywords)
	keywords = append(keywords, matchAll(lower, solutionSeekingPhrases)...)
	keywords = append(keywords, matchAll(lower, timeInvestmentPhrases)...)
	return keywords
}
