// Package scoring 把互动数据与痛点分析合成为 0-100 的机会分。
// 提供两套互相独立的评分口径：通用评分（Rubric A）与 MicroSaaS 可行性评分（Rubric B）。
package scoring

import (
	"fmt"
	"strings"

	"PainRadar/internal/pain"
)

const (
	MaxTotal       = 100
	MaxEngagement  = 20
	MaxFrustration = 30
)

// Rubric 评分口径
type Rubric string

const (
	RubricGeneric   Rubric = "generic"
	RubricMicroSaaS Rubric = "microsaas"
)

// ParseRubric 解析评分口径名称，空串按 microsaas 处理
func ParseRubric(s string) (Rubric, error) {
	switch Rubric(strings.ToLower(strings.TrimSpace(s))) {
	case "", RubricMicroSaaS:
		return RubricMicroSaaS, nil
	case RubricGeneric:
		return RubricGeneric, nil
	default:
		return "", fmt.Errorf("未知评分口径: %s", s)
	}
}

// Engagement 帖子的互动计数（与数据源无关的命名）
type Engagement struct {
	Likes    int `json:"likes"`
	Retweets int `json:"retweets"` // 转发/放大类指标
	Replies  int `json:"replies"`
}

// Factors 通用评分的参考因子，仅用于展示
type Factors struct {
	Likes              int  `json:"likes"`
	Retweets           int  `json:"retweets"`
	Replies            int  `json:"replies"`
	FrustrationLevel   int  `json:"frustration_level"`
	HasSolutionSeeking bool `json:"has_solution_seeking"`
	HasTimeInvestment  bool `json:"has_time_investment"`
	HasDollarAmount    bool `json:"has_dollar_amount"`
	MentionsPaidTool   bool `json:"mentions_paid_tool"`
	PainKeywordsCount  int  `json:"pain_keywords_count"`
}

// GenericBreakdown Rubric A 分项结果
type GenericBreakdown struct {
	Total       int     `json:"total"`
	Rating      string  `json:"rating"`
	Color       string  `json:"color"`
	Engagement  int     `json:"engagement"`  // 0-20
	Frustration int     `json:"frustration"` // 0-30
	Budget      int     `json:"budget"`      // 0-50
	Factors     Factors `json:"factors"`
}

// EngagementScore (likes + 2*retweets)/10 取整，上限 20。负数计数按 0 处理
func EngagementScore(e Engagement) int {
	weighted := max(0, e.Likes) + 2*max(0, e.Retweets)
	return min(MaxEngagement, weighted/10)
}

// FrustrationComponent 挫败分*2.5 + 寻求方案 5 + 时间投入 5，取整后上限 30
func FrustrationComponent(a pain.Analysis) int {
	score := float64(a.FrustrationScore) * 2.5
	if a.HasSolutionSeeking {
		score += 5
	}
	if a.HasTimeInvestment {
		score += 5
	}
	return min(MaxFrustration, int(score))
}

// Generic 计算 Rubric A
func Generic(e Engagement, a pain.Analysis) GenericBreakdown {
	b := GenericBreakdown{
		Engagement:  EngagementScore(e),
		Frustration: FrustrationComponent(a),
		Budget:      min(pain.MaxBudgetScore, max(0, a.BudgetSignalScore)),
		Factors: Factors{
			Likes:              e.Likes,
			Retweets:           e.Retweets,
			Replies:            e.Replies,
			FrustrationLevel:   a.FrustrationScore,
			HasSolutionSeeking: a.HasSolutionSeeking,
			HasTimeInvestment:  a.HasTimeInvestment,
			HasDollarAmount:    len(a.DollarAmounts) > 0,
			MentionsPaidTool:   len(a.ProductsMentioned) > 0,
			PainKeywordsCount:  len(a.PainKeywords),
		},
	}
	b.Total = min(MaxTotal, b.Engagement+b.Frustration+b.Budget)
	b.Rating = Rating(b.Total)
	b.Color = Color(b.Total)
	return b
}

// WithBonus 叠加数据源加分（StackOverflow 未回答、GitHub 功能需求等），结果仍限制在 0-100
func WithBonus(total, bonus int) int {
	return max(0, min(MaxTotal, total+bonus))
}

// Rating 分数对应的文字评级，仅用于展示
func Rating(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Worth Investigating"
	default:
		return "Low Signal"
	}
}

// Color 分数对应的前端配色
func Color(score int) string {
	switch {
	case score >= 80:
		return "success"
	case score >= 60:
		return "warning"
	case score >= 40:
		return "info"
	default:
		return "secondary"
	}
}
