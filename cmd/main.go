package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PainRadar/internal/api"
	"PainRadar/internal/app"
	"PainRadar/internal/config"
	"PainRadar/internal/scheduler"
	"PainRadar/internal/scoring"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := app.NewLogger(cfg.Log)
	logger.Info("配置文件加载成功")

	// 3. 初始化数据库与服务（库表不存在则自动创建）
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatalf("初始化失败: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. 定时采集与定时重算
	sched := scheduler.New(ctx, logger)
	if cfg.Sync.Cron != "" {
		if err := sched.AddJob("sync", cfg.Sync.Cron, func(ctx context.Context) error {
			_, err := a.Sync.SyncAll(ctx)
			return err
		}); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	if cfg.Sync.RescoreCron != "" {
		rubric, err := scoring.ParseRubric(cfg.Scoring.RescoreRubric)
		if err != nil {
			logger.Fatalf("评分口径配置错误: %v", err)
		}
		if err := sched.AddJob("rescore", cfg.Sync.RescoreCron, func(ctx context.Context) error {
			_, err := a.Rescore.Run(ctx, rubric)
			return err
		}); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// 5. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册ppof 方便调试和监测性能问题
	pprof.Register(r)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 6. 注册API路由
	api.RegisterRoutes(r, &api.Handlers{
		Opportunity: api.NewOpportunityHandler(a.Opportunity, logger),
		Analyze:     api.NewAnalyzeHandler(a.Opportunity, logger),
		Sync:        api.NewSyncHandler(a.Sync, a.Rescore, cfg.Scoring.RescoreRubric, logger),
		Jobs:        api.NewJobHandler(sched, logger),
	})

	// 7. 启动服务（从配置读取端口）
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: r}
	go func() {
		logger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("收到退出信号，正在关闭服务…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("关闭服务失败")
	}
}
