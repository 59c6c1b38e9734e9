package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PainRadar/internal/adapter"
	"PainRadar/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrUnknownSource 数据源未注册或未能初始化
var ErrUnknownSource = errors.New("unknown source")

type SyncService struct {
	registry *adapter.SourceRegistry
	ingest   *IngestService
	logger   *logrus.Logger
}

func NewSyncService(registry *adapter.SourceRegistry, ingest *IngestService, logger *logrus.Logger) *SyncService {
	return &SyncService{registry: registry, ingest: ingest, logger: logger}
}

// SyncSource 通用同步方法（支持所有数据源）：拉取 → 转换 → 评分入库
func (s *SyncService) SyncSource(ctx context.Context, source string) (*BatchSummary, error) {
	runID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{"source": source, "run_id": runID})
	start := time.Now()

	// 1. 获取采集器
	src, err := s.registry.Get(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownSource, source, err)
	}

	// 2. 拉取原始条目
	rawItems, err := src.FetchItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s拉取失败: %w", source, err)
	}
	if len(rawItems) == 0 {
		log.Warn("未拉取到任何条目")
		return &BatchSummary{Source: source, Results: []*IngestResult{}}, nil
	}

	// 3. 转换为统一候选帖子
	candidates, err := src.ConvertToCandidates(rawItems)
	if err != nil {
		return nil, fmt.Errorf("%s转换数据失败: %w", source, err)
	}
	candidates = dedupCandidates(candidates)

	// 4. 评分入库（顺序执行）
	summary, err := s.ingest.ProcessBatch(ctx, source, candidates)
	if err != nil {
		return summary, fmt.Errorf("%s入库失败: %w", source, err)
	}

	log.WithFields(logrus.Fields{
		"raw":      len(rawItems),
		"stored":   summary.Stored,
		"duration": time.Since(start).String(),
	}).Infof("%s同步完成", source)
	return summary, nil
}

// SyncAll 依次同步所有已启用的数据源，单个数据源失败不影响其他
func (s *SyncService) SyncAll(ctx context.Context) ([]*BatchSummary, error) {
	sources := s.registry.List()
	summaries := make([]*BatchSummary, 0, len(sources))
	var failed []string
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		summary, err := s.SyncSource(ctx, source)
		if err != nil {
			s.logger.WithError(err).WithField("source", source).Error("数据源同步失败")
			failed = append(failed, source)
			continue
		}
		summaries = append(summaries, summary)
	}
	if len(sources) > 0 && len(failed) == len(sources) {
		return summaries, fmt.Errorf("所有数据源同步失败: %v", failed)
	}
	return summaries, nil
}

// dedupCandidates 同一批次内按 ExternalID 去重，保留首次出现的
func dedupCandidates(candidates []*model.CandidatePost) []*model.CandidatePost {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]*model.CandidatePost, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if _, ok := seen[c.ExternalID]; ok {
			continue
		}
		seen[c.ExternalID] = struct{}{}
		out = append(out, c)
	}
	return out
}
