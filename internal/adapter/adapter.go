package adapter

import (
	"fmt"
	"sort"
	"sync"

	"PainRadar/internal/config"
	"PainRadar/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// SourceRegistry 按配置初始化好的采集器实例
type SourceRegistry struct {
	cfg      *config.Config
	logger   *logrus.Logger
	mu       sync.Mutex
	adapters map[string]interfaces.SourceAdapter
}

// NewSourceRegistry 为 sync.enabled_sources 中的每个数据源创建采集器实例
func NewSourceRegistry(cfg *config.Config, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[string]interfaces.SourceAdapter),
	}
	r.logger.WithField("factory_sources", ListFactories()).Debug("已注册的采集器工厂函数")

	for _, source := range cfg.Sync.EnabledSources {
		if _, err := r.Get(source); err != nil {
			r.logger.WithError(err).WithField("source", source).Error("采集器初始化失败")
		}
	}
	r.logger.WithField("sources", r.List()).Info("采集器初始化完成")
	return r
}

// build 调用方需持有 mu
func (r *SourceRegistry) build(source string) (interfaces.SourceAdapter, error) {
	factory, ok := GetFactory(source)
	if !ok {
		return nil, fmt.Errorf("未找到数据源%s的工厂函数（init未注册？）", source)
	}
	sourceCfg := r.cfg.Source(source)
	ins := factory(&sourceCfg, r.logger)
	if ins == nil {
		return nil, fmt.Errorf("数据源%s的工厂函数返回nil", source)
	}
	if ins.GetName() != source {
		return nil, fmt.Errorf("采集器名称%s与配置%s不匹配", ins.GetName(), source)
	}
	r.adapters[source] = ins
	return ins, nil
}

// Get 获取采集器实例；未启用但已注册的数据源按需创建（手动触发同步时使用）
func (r *SourceRegistry) Get(source string) (interfaces.SourceAdapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ins, ok := r.adapters[source]; ok {
		return ins, nil
	}
	return r.build(source)
}

// List 已初始化的数据源（按名称排序）
func (r *SourceRegistry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	sources := make([]string, 0, len(r.adapters))
	for s := range r.adapters {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}
