// Package app 组装各命令共用的依赖：日志、数据库、采集器与服务
package app

import (
	"fmt"
	"os"
	"strings"

	"PainRadar/internal/adapter"
	"PainRadar/internal/config"
	"PainRadar/internal/repository"
	"PainRadar/internal/service"

	// 采集器在 init 中注册工厂函数
	_ "PainRadar/internal/adapter/github"
	_ "PainRadar/internal/adapter/hackernews"
	_ "PainRadar/internal/adapter/reddit"
	_ "PainRadar/internal/adapter/stackoverflow"
	_ "PainRadar/internal/adapter/twitter"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App 已初始化的依赖
type App struct {
	Config      *config.Config
	Logger      *logrus.Logger
	DB          *gorm.DB
	Registry    *adapter.SourceRegistry
	Ingest      *service.IngestService
	Sync        *service.SyncService
	Rescore     *service.RescoreService
	Opportunity *service.OpportunityService
}

// NewLogger 按配置设置日志级别与格式
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// New 打开数据库并组装服务
func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	db, err := repository.Open(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	store := repository.NewStore(db)
	posts, opps := store.Posts(), store.Opportunities()
	registry := adapter.NewSourceRegistry(cfg, logger)
	ingest := service.NewIngestService(store, cfg.Scoring, logger)

	return &App{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Registry:    registry,
		Ingest:      ingest,
		Sync:        service.NewSyncService(registry, ingest, logger),
		Rescore:     service.NewRescoreService(posts, opps, logger),
		Opportunity: service.NewOpportunityService(posts, opps, cfg.Scoring),
	}, nil
}

// Close 关闭数据库连接
func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
