package adapter

import (
	"context"
	"fmt"

	"PainRadar/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentRequests = 4

// FetchFunc 拉取单个查询（关键词/子版块/标签/仓库）的原始条目
type FetchFunc func(ctx context.Context, task string) ([]*model.SourceRawItem, error)

// FanOut 并发执行多个查询，单个查询失败只记日志；全部失败时返回错误。
// 结果按查询顺序合并，并按来源ID去重。
func FanOut(ctx context.Context, logger *logrus.Logger, source string, tasks []string, fetch FetchFunc) ([]*model.SourceRawItem, error) {
	if len(tasks) == 0 {
		return []*model.SourceRawItem{}, nil
	}

	results := make([][]*model.SourceRawItem, len(tasks))
	failed := make([]error, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, task := range tasks {
		g.Go(func() error {
			items, err := fetch(gctx, task)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.WithError(err).WithFields(logrus.Fields{"source": source, "task": task}).Warn("拉取失败，跳过")
				failed[i] = err
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	merged := make([]*model.SourceRawItem, 0)
	failures := 0
	for i, items := range results {
		if failed[i] != nil {
			failures++
			continue
		}
		for _, item := range items {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			merged = append(merged, item)
		}
	}
	if failures == len(tasks) {
		return nil, fmt.Errorf("%s所有查询均失败: %w", source, failed[0])
	}
	return merged, nil
}
