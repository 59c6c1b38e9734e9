package api

import (
	"fmt"
	"net/http"

	"PainRadar/internal/scoring"
	"PainRadar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	syncService    *service.SyncService
	rescoreService *service.RescoreService
	defaultRubric  string
	logger         *logrus.Logger
}

func NewSyncHandler(syncService *service.SyncService, rescoreService *service.RescoreService, defaultRubric string, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService:    syncService,
		rescoreService: rescoreService,
		defaultRubric:  defaultRubric,
		logger:         logger,
	}
}

// SyncSourceHandler 同步指定数据源
// @Param source path string true "数据源名称（reddit/hackernews/stackoverflow/github/twitter）"
// @Router /sync/source/{source} [post]
func (h *SyncHandler) SyncSourceHandler(c *gin.Context) {
	source := c.Param("source")
	summary, err := h.syncService.SyncSource(c.Request.Context(), source)
	if err != nil {
		respondError(c, h.logger, fmt.Sprintf("同步%s", source), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s同步成功", source),
		"summary": summary,
	})
}

// SyncAllHandler 同步所有已启用的数据源
// @Router /sync/all [post]
func (h *SyncHandler) SyncAllHandler(c *gin.Context) {
	summaries, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "同步全部数据源", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

// RescoreHandler 按评分口径重算所有机会
// @Param rubric query string false "generic/microsaas，默认取配置"
// @Router /api/rescore [post]
func (h *SyncHandler) RescoreHandler(c *gin.Context) {
	rubric, err := scoring.ParseRubric(c.DefaultQuery("rubric", h.defaultRubric))
	if err != nil {
		respondError(c, h.logger, "Rescore", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	report, err := h.rescoreService.Run(c.Request.Context(), rubric)
	if err != nil {
		respondError(c, h.logger, "Rescore", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
