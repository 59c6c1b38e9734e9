package scoring

import (
	"math"
	"strings"

	"PainRadar/internal/pain"
)

const (
	MaxSEO           = 25
	MaxSelfService   = 25
	MaxPainIntensity = 30
	MaxRecurring     = 20
)

// OpportunityText 机会的标题与描述
type OpportunityText struct {
	Title       string
	Description string
}

// MicroSaaSBreakdown Rubric B 分项结果
type MicroSaaSBreakdown struct {
	Total         int `json:"total"`
	SEOPotential  int `json:"seo_potential"`  // 0-25
	SelfService   int `json:"self_service"`   // 0-25
	PainIntensity int `json:"pain_intensity"` // 0-30
	Recurring     int `json:"recurring"`      // 0-20
}

// MicroSaaS 计算 Rubric B。痛点关键词取自分析结果
func MicroSaaS(op OpportunityText, a pain.Analysis) MicroSaaSBreakdown {
	return MicroSaaSWithKeywords(op, a, nil)
}

// MicroSaaSWithKeywords 在分析结果的痛点关键词之外追加调用方给出的关键词
func MicroSaaSWithKeywords(op OpportunityText, a pain.Analysis, extra Keywords) MicroSaaSBreakdown {
	keywords := append(Keywords(nil), a.PainKeywords...)
	keywords = append(keywords, extra...)
	b := MicroSaaSBreakdown{
		SEOPotential:  SEOPotential(op.Title, op.Description, keywords),
		SelfService:   SelfServicePotential(op.Title, op.Description),
		PainIntensity: PainIntensity(a.FrustrationScore, a.BudgetSignalScore, keywords),
		Recurring:     RecurringPotential(op.Description),
	}
	b.Total = min(MaxTotal, b.SEOPotential+b.SelfService+b.PainIntensity+b.Recurring)
	return b
}

func countHits(text string, table []string, points int) int {
	score := 0
	for _, term := range table {
		if strings.Contains(text, term) {
			score += points
		}
	}
	return score
}

// SEOPotential 搜索意图短语 +3、问题词 +2、B2B 词 +3，上限 25
func SEOPotential(title, description string, keywords Keywords) int {
	combined := strings.ToLower(title) + " " + strings.ToLower(description) + " " + keywords.Joined()

	score := countHits(combined, highIntentPhrases, 3)
	score += countHits(combined, problemIndicators, 2)
	score += countHits(combined, b2bKeywords, 3)
	return min(MaxSEO, score)
}

// SelfServicePotential 自助购买潜力（无需销售团队），取值 0-25
func SelfServicePotential(title, description string) int {
	t, d := strings.ToLower(title), strings.ToLower(description)

	score := 0
	for _, ind := range selfServiceIndicators {
		if strings.Contains(d, ind.term) || strings.Contains(t, ind.term) {
			score += ind.points
		}
	}
	for _, ind := range salesRequiredIndicators {
		if strings.Contains(d, ind.term) || strings.Contains(t, ind.term) {
			score += ind.points
		}
	}
	if strings.Contains(d, "small business") || strings.Contains(d, "smb") {
		score += 5
	}
	if strings.Contains(d, "enterprise") && strings.Contains(d, "only") {
		score -= 10
	}
	return max(0, min(MaxSelfService, score))
}

// PainIntensity 痛感强度 0-30。
// budgetScore 在这里按 0-10 口径截断，而痛点分析给出的是 0-50 口径，两者刻意不做换算。
func PainIntensity(frustrationScore, budgetScore int, keywords Keywords) int {
	score := math.Min(15, float64(frustrationScore)*1.5)
	score += float64(min(10, budgetScore))
	if len(keywords) > 0 {
		score += float64(countHits(keywords.Joined(), extremePainKeywords, 2))
	}
	return min(MaxPainIntensity, max(0, int(score)))
}

// RecurringPotential 问题是否反复出现（只看描述），取值 0-20
func RecurringPotential(description string) int {
	d := strings.ToLower(description)

	score := 0
	for _, ind := range recurringIndicators {
		if strings.Contains(d, ind.term) {
			score += ind.points
		}
	}
	if strings.Contains(d, "one-time") || strings.Contains(d, "once") {
		score -= 5
	}
	return max(0, min(MaxRecurring, score))
}
