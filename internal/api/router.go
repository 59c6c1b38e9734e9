package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖
type Handlers struct {
	Opportunity *OpportunityHandler
	Analyze     *AnalyzeHandler
	Sync        *SyncHandler
	Jobs        *JobHandler
}

// RegisterRoutes 注册所有 API 路由
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 数据同步
	r.POST("/sync/source/:source", h.Sync.SyncSourceHandler)
	r.POST("/sync/all", h.Sync.SyncAllHandler)

	// 看板接口
	apiGroup := r.Group("/api")
	apiGroup.GET("/opportunities", h.Opportunity.ListOpportunities)
	apiGroup.GET("/opportunities/:id", h.Opportunity.GetOpportunityDetail)
	apiGroup.GET("/stats", h.Opportunity.GetStats)
	apiGroup.POST("/analyze", h.Analyze.Analyze)
	apiGroup.POST("/rescore", h.Sync.RescoreHandler)

	// 定时任务
	apiGroup.GET("/jobs", h.Jobs.ListJobs)
	apiGroup.POST("/jobs/:name/run", h.Jobs.RunJob)
	apiGroup.DELETE("/jobs/:name", h.Jobs.RemoveJob)
}
