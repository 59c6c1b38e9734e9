package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PainRadar/internal/adapter"
	"PainRadar/internal/config"
	"PainRadar/internal/model"
	"PainRadar/internal/pain"
	"PainRadar/internal/repository"
	"PainRadar/internal/scoring"

	"github.com/sirupsen/logrus"
)

// Outcome 单条候选帖子的处理结果
type Outcome string

const (
	OutcomeStored         Outcome = "stored"
	OutcomeDuplicate      Outcome = "duplicate"
	OutcomeBelowThreshold Outcome = "below_threshold"
	OutcomeError          Outcome = "error"
)

// IngestResult 单条处理明细
type IngestResult struct {
	ExternalID    string  `json:"external_id"`
	Outcome       Outcome `json:"outcome"`
	Score         int     `json:"score"`
	PostID        uint64  `json:"post_id,omitempty"`
	OpportunityID uint64  `json:"opportunity_id,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// BatchSummary 一批候选帖子的汇总
type BatchSummary struct {
	Source         string          `json:"source"`
	Found          int             `json:"found"`
	Stored         int             `json:"stored"`
	HighValue      int             `json:"high_value"`
	Duplicates     int             `json:"duplicates"`
	BelowThreshold int             `json:"below_threshold"`
	Errors         int             `json:"errors"`
	Results        []*IngestResult `json:"results"`
}

// IngestService 候选帖子 → 痛点分析 → 评分 → 入库 → 生成机会
type IngestService struct {
	store  repository.Store
	cfg    config.ScoringConfig
	logger *logrus.Logger
}

func NewIngestService(store repository.Store, cfg config.ScoringConfig, logger *logrus.Logger) *IngestService {
	return &IngestService{store: store, cfg: cfg, logger: logger}
}

// Process 处理单条候选帖子。存储层错误返回 error，其余情况体现在 Outcome 中。
// 帖子、分析、机会与关联在同一事务内写入，任一步失败都不会留下半成品
func (s *IngestService) Process(ctx context.Context, c *model.CandidatePost) (*IngestResult, error) {
	res := &IngestResult{ExternalID: c.ExternalID}

	exists, err := s.store.Posts().ExistsByExternalID(ctx, c.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("检查帖子是否存在失败: %w", err)
	}
	if exists {
		res.Outcome = OutcomeDuplicate
		return res, nil
	}

	analysis := pain.Analyze(c.Text)
	breakdown := scoring.Generic(scoring.Engagement{
		Likes:    c.EngagementPrimary,
		Retweets: c.EngagementSecondary,
		Replies:  c.EngagementTertiary,
	}, analysis)
	res.Score = scoring.WithBonus(breakdown.Total, c.ScoreBonus)
	if res.Score < s.cfg.MinScore {
		res.Outcome = OutcomeBelowThreshold
		return res, nil
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		postID, created, err := tx.Posts().IngestWithAnalysis(ctx, c.ToRawPost(), analysis)
		if err != nil {
			return fmt.Errorf("保存帖子失败: %w", err)
		}
		res.PostID = postID
		if !created {
			// 并发写入时被其他流程抢先
			res.Outcome = OutcomeDuplicate
			return nil
		}

		oppID, err := tx.Opportunities().CreateOpportunity(ctx, &model.Opportunity{
			Source:      c.Source,
			Title:       opportunityTitle(c),
			Description: opportunityDescription(c),
			Score:       res.Score,
		})
		if err != nil {
			return fmt.Errorf("创建机会失败: %w", err)
		}
		if _, err := tx.Opportunities().Link(ctx, oppID, postID); err != nil {
			return fmt.Errorf("关联帖子失败: %w", err)
		}
		res.OpportunityID = oppID
		res.Outcome = OutcomeStored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ProcessBatch 顺序处理一批候选帖子；单条失败记日志后继续，存储不可用时中止
func (s *IngestService) ProcessBatch(ctx context.Context, source string, candidates []*model.CandidatePost) (*BatchSummary, error) {
	summary := &BatchSummary{Source: source, Found: len(candidates), Results: make([]*IngestResult, 0, len(candidates))}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := s.Process(ctx, c)
		if err != nil {
			if errors.Is(err, repository.ErrStorage) {
				return summary, err
			}
			s.logger.WithError(err).WithField("external_id", c.ExternalID).Warn("处理候选帖子失败，跳过")
			res = &IngestResult{ExternalID: c.ExternalID, Outcome: OutcomeError, Error: err.Error()}
		}
		summary.Results = append(summary.Results, res)

		switch res.Outcome {
		case OutcomeStored:
			summary.Stored++
			if res.Score >= s.cfg.HighValueScore {
				summary.HighValue++
			}
		case OutcomeDuplicate:
			summary.Duplicates++
		case OutcomeBelowThreshold:
			summary.BelowThreshold++
		case OutcomeError:
			summary.Errors++
		}
	}

	s.logger.WithFields(logrus.Fields{
		"source":          source,
		"found":           summary.Found,
		"stored":          summary.Stored,
		"high_value":      summary.HighValue,
		"duplicates":      summary.Duplicates,
		"below_threshold": summary.BelowThreshold,
	}).Info("候选帖子处理完成")
	return summary, nil
}

// opportunityDescription 采集器给了描述就用，否则取正文前 500 个字符
func opportunityDescription(c *model.CandidatePost) string {
	if d := strings.TrimSpace(c.Description); d != "" {
		return d
	}
	return adapter.Truncate(strings.TrimSpace(c.Text), 500)
}

// opportunityTitle 优先使用采集器给出的标题，否则截取正文前 100 个字符
func opportunityTitle(c *model.CandidatePost) string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	text := strings.TrimSpace(c.Text)
	title := adapter.Truncate(text, 100)
	if len([]rune(text)) > 100 {
		title += "..."
	}
	return title
}
