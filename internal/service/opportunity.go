package service

import (
	"context"
	"fmt"
	"time"

	"PainRadar/internal/config"
	"PainRadar/internal/model"
	"PainRadar/internal/pain"
	"PainRadar/internal/repository"
	"PainRadar/internal/scoring"
)

const defaultListLimit = 50

// OpportunityView 列表/详情返回的机会
type OpportunityView struct {
	ID          uint64 `json:"id"`
	UUID        string `json:"uuid"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Score       int    `json:"score"`
	Rating      string `json:"rating"`
	Color       string `json:"color"`
	TweetCount  int    `json:"tweet_count"`
	FirstSeen   string `json:"first_seen"`
	LastSeen    string `json:"last_seen"`
	CreatedAt   string `json:"created_at"`
}

// LinkedPostView 详情中的关联帖子及其分析
type LinkedPostView struct {
	ID              uint64         `json:"id"`
	ExternalID      string         `json:"external_id"`
	Source          string         `json:"source"`
	Text            string         `json:"text"`
	URL             string         `json:"url"`
	Author          *string        `json:"author"`
	Likes           int            `json:"likes"`
	Retweets        int            `json:"retweets"`
	Replies         int            `json:"replies"`
	EngagementScore int            `json:"engagement_score"`
	PostedAt        string         `json:"posted_at"`
	Analysis        *pain.Analysis `json:"analysis"`
}

// OpportunityDetail 机会详情
type OpportunityDetail struct {
	Opportunity *OpportunityView  `json:"opportunity"`
	Posts       []*LinkedPostView `json:"posts"`
}

// AnalyzeResult 临时文本分析结果（不入库）
type AnalyzeResult struct {
	Analysis  pain.Analysis              `json:"analysis"`
	Generic   scoring.GenericBreakdown   `json:"generic"`
	MicroSaaS scoring.MicroSaaSBreakdown `json:"microsaas"`
}

// OpportunityService 面向看板的查询
type OpportunityService struct {
	posts repository.PostRepository
	opps  repository.OpportunityRepository
	cfg   config.ScoringConfig
}

func NewOpportunityService(posts repository.PostRepository, opps repository.OpportunityRepository, cfg config.ScoringConfig) *OpportunityService {
	return &OpportunityService{posts: posts, opps: opps, cfg: cfg}
}

// List 机会列表；minScore<0 时使用配置的最低分
func (s *OpportunityService) List(ctx context.Context, limit, minScore, days int, source string) ([]*OpportunityView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if minScore < 0 {
		minScore = s.cfg.MinScore
	}
	opps, err := s.opps.TopOpportunities(ctx, repository.TopFilter{Limit: limit, MinScore: minScore, SinceDays: days, Source: source})
	if err != nil {
		return nil, err
	}
	views := make([]*OpportunityView, 0, len(opps))
	for _, o := range opps {
		views = append(views, toOpportunityView(o))
	}
	return views, nil
}

// Detail 机会详情，包含按互动分排序的关联帖子
func (s *OpportunityService) Detail(ctx context.Context, idOrUUID string) (*OpportunityDetail, error) {
	opp, err := s.opps.GetOpportunity(ctx, idOrUUID)
	if err != nil {
		return nil, err
	}
	posts, err := s.opps.LinkedPosts(ctx, opp.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	analyses, err := s.posts.AnalysesByPosts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("查询帖子分析失败: %w", err)
	}

	detail := &OpportunityDetail{Opportunity: toOpportunityView(opp), Posts: make([]*LinkedPostView, 0, len(posts))}
	for _, p := range posts {
		view := &LinkedPostView{
			ID:              p.ID,
			ExternalID:      p.ExternalID,
			Source:          p.Source,
			Text:            p.Text,
			URL:             p.URL,
			Author:          p.AuthorHandle,
			Likes:           p.Likes,
			Retweets:        p.Retweets,
			Replies:         p.Replies,
			EngagementScore: p.EngagementScore,
			PostedAt:        p.PostedAt.UTC().Format(time.RFC3339),
		}
		if pa, ok := analyses[p.ID]; ok {
			a := pa.ToAnalysis()
			view.Analysis = &a
		}
		detail.Posts = append(detail.Posts, view)
	}
	return detail, nil
}

func (s *OpportunityService) Stats(ctx context.Context, days int) (*repository.OpportunityStats, error) {
	return s.opps.Stats(ctx, s.cfg.MinScore, s.cfg.HighValueScore, days)
}

// Analyze 对任意文本做痛点分析并给出两套评分；keywords 只参与 Rubric B
func (s *OpportunityService) Analyze(title, text string, e scoring.Engagement, keywords scoring.Keywords) *AnalyzeResult {
	a := pain.Analyze(text)
	desc := text
	if title == "" {
		title = text
	}
	return &AnalyzeResult{
		Analysis:  a,
		Generic:   scoring.Generic(e, a),
		MicroSaaS: scoring.MicroSaaSWithKeywords(scoring.OpportunityText{Title: title, Description: desc}, a, keywords),
	}
}

func toOpportunityView(o *model.Opportunity) *OpportunityView {
	return &OpportunityView{
		ID:          o.ID,
		UUID:        o.OpportunityUUID,
		Source:      o.Source,
		Title:       o.Title,
		Description: o.Description,
		Score:       o.Score,
		Rating:      scoring.Rating(o.Score),
		Color:       scoring.Color(o.Score),
		TweetCount:  o.TweetCount,
		FirstSeen:   o.FirstSeen.UTC().Format(time.RFC3339),
		LastSeen:    o.LastSeen.UTC().Format(time.RFC3339),
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
