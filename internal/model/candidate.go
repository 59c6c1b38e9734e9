package model

import "time"

// CandidatePost 所有采集器统一产出的候选帖子，字段命名与数据源无关。
// 各采集器把自己的点赞/赞同/反应数映射到 EngagementPrimary，转发/评论映射到 Secondary，回复映射到 Tertiary。
type CandidatePost struct {
	ExternalID          string    `json:"external_id"` // 带来源前缀
	Source              string    `json:"source"`
	Title               string    `json:"title"` // 可为空，空时由正文截取
	Text                string    `json:"text"`
	Description         string    `json:"description"` // 可为空，空时由正文截取
	URL                 string    `json:"url"`
	CreatedAt           time.Time `json:"created_at"`
	Author              *string   `json:"author"`
	AuthorWeight        int       `json:"author_weight"`
	EngagementPrimary   int       `json:"engagement_primary"`
	EngagementSecondary int       `json:"engagement_secondary"`
	EngagementTertiary  int       `json:"engagement_tertiary"`
	ScoreBonus          int       `json:"score_bonus"` // 数据源加分（未回答问题、功能需求 issue 等）
}

// ToRawPost 转换为入库模型
func (c *CandidatePost) ToRawPost() *RawPost {
	postedAt := c.CreatedAt
	if postedAt.IsZero() {
		postedAt = time.Now()
	}
	return &RawPost{
		ExternalID:      c.ExternalID,
		Source:          c.Source,
		Text:            c.Text,
		URL:             c.URL,
		PostedAt:        postedAt.UTC(),
		AuthorHandle:    c.Author,
		AuthorWeight:    c.AuthorWeight,
		Likes:           c.EngagementPrimary,
		Retweets:        c.EngagementSecondary,
		Replies:         c.EngagementTertiary,
		EngagementScore: ComputeEngagementScore(c.EngagementPrimary, c.EngagementSecondary),
	}
}

// SourceRawItem 采集器拉取到的原始条目
type SourceRawItem struct {
	Source string      // 数据源名称
	ID     string      // 来源原生ID
	Query  string      // 命中的查询词/子版块/标签
	Data   interface{} // 来源原生数据
}
