package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"PainRadar/internal/model"
	"PainRadar/internal/repository"
	"PainRadar/internal/scoring"

	"github.com/sirupsen/logrus"
)

// ErrNoAnalysis 帖子没有已保存的痛点分析
var ErrNoAnalysis = errors.New("no analysis available")

// ErrOpportunityGone 重新评分过程中机会已被删除
var ErrOpportunityGone = errors.New("opportunity no longer exists")

// errNoLinkedPosts 机会没有关联帖子，无从评分
var errNoLinkedPosts = errors.New("no linked posts")

const (
	rescoreBatchSize = 100
	defaultTopN      = 10
)

// ScoreChange 单个机会的重新评分结果
type ScoreChange struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	Old       int         `json:"old"`
	New       int         `json:"new"`
	Delta     int         `json:"delta"`
	Breakdown interface{} `json:"breakdown"` // GenericBreakdown 或 MicroSaaSBreakdown
}

// SkippedOpportunity 无法重新评分的机会
type SkippedOpportunity struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// RescoreReport 一次重新评分的汇总
type RescoreReport struct {
	Rubric   scoring.Rubric        `json:"rubric"`
	Rescored int                   `json:"rescored"`
	Changed  int                   `json:"changed"`
	Gainers  []*ScoreChange        `json:"gainers"` // 涨幅从大到小
	Losers   []*ScoreChange        `json:"losers"`  // 跌幅从大到小
	Skipped  []*SkippedOpportunity `json:"skipped"`
	Top      []*ScoreChange        `json:"top"` // 新分数前 N
}

// RescoreService 用当前评分口径重算所有机会的分数
type RescoreService struct {
	posts  repository.PostRepository
	opps   repository.OpportunityRepository
	logger *logrus.Logger
	topN   int
}

func NewRescoreService(posts repository.PostRepository, opps repository.OpportunityRepository, logger *logrus.Logger) *RescoreService {
	return &RescoreService{posts: posts, opps: opps, logger: logger, topN: defaultTopN}
}

// Run 遍历全部机会，只写 score 列；数据不变时重复执行不会产生变化
func (s *RescoreService) Run(ctx context.Context, rubric scoring.Rubric) (*RescoreReport, error) {
	report := &RescoreReport{
		Rubric:  rubric,
		Gainers: []*ScoreChange{},
		Losers:  []*ScoreChange{},
		Skipped: []*SkippedOpportunity{},
		Top:     []*ScoreChange{},
	}
	var all []*ScoreChange

	err := s.opps.EachOpportunity(ctx, rescoreBatchSize, func(batch []*model.Opportunity) error {
		for _, opp := range batch {
			change, err := s.rescoreOne(ctx, opp, rubric)
			switch {
			case errors.Is(err, errNoLinkedPosts):
				// 没有关联帖子的机会直接跳过
				continue
			case errors.Is(err, ErrNoAnalysis), errors.Is(err, ErrOpportunityGone):
				report.Skipped = append(report.Skipped, &SkippedOpportunity{ID: opp.ID, Title: opp.Title, Reason: err.Error()})
				continue
			case err != nil:
				return err
			}

			report.Rescored++
			all = append(all, change)
			if change.Delta > 0 {
				report.Gainers = append(report.Gainers, change)
			} else if change.Delta < 0 {
				report.Losers = append(report.Losers, change)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("重新评分失败: %w", err)
	}

	report.Changed = len(report.Gainers) + len(report.Losers)
	sort.SliceStable(report.Gainers, func(i, j int) bool { return report.Gainers[i].Delta > report.Gainers[j].Delta })
	sort.SliceStable(report.Losers, func(i, j int) bool { return report.Losers[i].Delta < report.Losers[j].Delta })
	sort.SliceStable(all, func(i, j int) bool { return all[i].New > all[j].New })
	if len(all) > s.topN {
		all = all[:s.topN]
	}
	report.Top = append(report.Top, all...)

	s.logger.WithFields(logrus.Fields{
		"rubric":   rubric,
		"rescored": report.Rescored,
		"changed":  report.Changed,
		"skipped":  len(report.Skipped),
	}).Info("重新评分完成")
	return report, nil
}

func (s *RescoreService) rescoreOne(ctx context.Context, opp *model.Opportunity, rubric scoring.Rubric) (*ScoreChange, error) {
	post, err := s.opps.FirstLinkedPost(ctx, opp.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errNoLinkedPosts
	}
	if err != nil {
		return nil, err
	}
	pa, err := s.posts.AnalysisByPost(ctx, post.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, err
	}
	analysis := pa.ToAnalysis()

	change := &ScoreChange{ID: opp.ID, Title: opp.Title, Old: opp.Score}
	switch rubric {
	case scoring.RubricGeneric:
		b := scoring.Generic(scoring.Engagement{Likes: post.Likes, Retweets: post.Retweets, Replies: post.Replies}, analysis)
		change.New, change.Breakdown = b.Total, b
	default:
		b := scoring.MicroSaaS(scoring.OpportunityText{Title: opp.Title, Description: opp.Description}, analysis)
		change.New, change.Breakdown = b.Total, b
	}
	change.Delta = change.New - change.Old

	if change.Delta != 0 {
		err := s.opps.UpdateScore(ctx, opp.ID, change.New)
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.WithField("opportunity_id", opp.ID).Warn("重新评分时机会已被删除")
			return nil, ErrOpportunityGone
		}
		if err != nil {
			return nil, fmt.Errorf("更新机会%d分数失败: %w", opp.ID, err)
		}
	}
	return change, nil
}
