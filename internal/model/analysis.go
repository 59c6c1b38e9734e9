package model

import (
	"encoding/json"
	"time"

	"PainRadar/internal/pain"

	"gorm.io/datatypes"
)

// PainAnalysis 与 RawPost 一对一的痛点分析结果
type PainAnalysis struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PostID             uint64         `gorm:"column:post_id;uniqueIndex;not null;comment:关联帖子ID"`
	FrustrationScore   int            `gorm:"column:frustration_score;not null;default:0;comment:挫败分 0-10"`
	BudgetSignalScore  int            `gorm:"column:budget_signal_score;not null;default:0;comment:预算信号 0-50"`
	PainKeywords       datatypes.JSON `gorm:"column:pain_keywords;comment:命中的痛点词"`
	ProductsMentioned  datatypes.JSON `gorm:"column:products_mentioned;comment:提及的产品"`
	DollarAmounts      datatypes.JSON `gorm:"column:dollar_amounts;comment:金额字面量"`
	HasSolutionSeeking bool           `gorm:"column:has_solution_seeking;default:false;comment:是否寻求方案"`
	HasTimeInvestment  bool           `gorm:"column:has_time_investment;default:false;comment:是否提到时间投入"`
	AnalyzedAt         time.Time      `gorm:"column:analyzed_at;autoCreateTime;comment:分析时间"`
}

func (PainAnalysis) TableName() string { return "pain_analyses" }

func marshalList(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func unmarshalList(j datatypes.JSON) []string {
	out := []string{}
	if len(j) == 0 {
		return out
	}
	if err := json.Unmarshal(j, &out); err != nil {
		return []string{}
	}
	return out
}

// NewPainAnalysis 由分析结果构造入库模型
func NewPainAnalysis(postID uint64, a pain.Analysis) *PainAnalysis {
	return &PainAnalysis{
		PostID:             postID,
		FrustrationScore:   a.FrustrationScore,
		BudgetSignalScore:  a.BudgetSignalScore,
		PainKeywords:       marshalList(a.PainKeywords),
		ProductsMentioned:  marshalList(a.ProductsMentioned),
		DollarAmounts:      marshalList(a.DollarAmounts),
		HasSolutionSeeking: a.HasSolutionSeeking,
		HasTimeInvestment:  a.HasTimeInvestment,
	}
}

// ToAnalysis 还原为评分使用的分析结果
func (p *PainAnalysis) ToAnalysis() pain.Analysis {
	return pain.Analysis{
		FrustrationScore:   p.FrustrationScore,
		BudgetSignalScore:  p.BudgetSignalScore,
		PainKeywords:       unmarshalList(p.PainKeywords),
		ProductsMentioned:  unmarshalList(p.ProductsMentioned),
		HasSolutionSeeking: p.HasSolutionSeeking,
		HasTimeInvestment:  p.HasTimeInvestment,
		DollarAmounts:      unmarshalList(p.DollarAmounts),
	}
}
