package interfaces

import (
	"context"

	"PainRadar/internal/config"
	"PainRadar/internal/model"

	"github.com/sirupsen/logrus"
)

// SourceAdapter 所有数据源采集器必须实现的核心接口
type SourceAdapter interface {
	GetName() string                                                                    // 数据源名称
	FetchItems(ctx context.Context) ([]*model.SourceRawItem, error)                     // 拉取原始条目
	ConvertToCandidates(raw []*model.SourceRawItem) ([]*model.CandidatePost, error) // 转换为统一候选帖子
}

// Factory 采集器工厂函数签名
// 入参：数据源配置、日志实例
type Factory func(cfg *config.SourceConfig, logger *logrus.Logger) SourceAdapter
