package api

import (
	"fmt"
	"net/http"
	"strconv"

	"PainRadar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OpportunityHandler 提供给看板的机会查询接口
type OpportunityHandler struct {
	svc    *service.OpportunityService
	logger *logrus.Logger
}

func NewOpportunityHandler(svc *service.OpportunityService, logger *logrus.Logger) *OpportunityHandler {
	return &OpportunityHandler{svc: svc, logger: logger}
}

// ListOpportunities 机会列表
// GET /api/opportunities?limit=50&min_score=40&days=7&source=reddit
func (h *OpportunityHandler) ListOpportunities(c *gin.Context) {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		respondError(c, h.logger, "ListOpportunities", err)
		return
	}
	minScore, err := queryInt(c, "min_score", -1)
	if err != nil {
		respondError(c, h.logger, "ListOpportunities", err)
		return
	}
	days, err := queryInt(c, "days", defaultDays)
	if err != nil {
		respondError(c, h.logger, "ListOpportunities", err)
		return
	}
	if limit > 500 {
		limit = 500
	}

	list, err := h.svc.List(c.Request.Context(), limit, minScore, days, c.Query("source"))
	if err != nil {
		respondError(c, h.logger, "ListOpportunities", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": list, "count": len(list)})
}

// GetOpportunityDetail :id 为数字时按主键，否则按 uuid
// GET /api/opportunities/:id
func (h *OpportunityHandler) GetOpportunityDetail(c *gin.Context) {
	detail, err := h.svc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "GetOpportunityDetail", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetStats GET /api/stats?days=7
func (h *OpportunityHandler) GetStats(c *gin.Context) {
	days, err := queryInt(c, "days", defaultDays)
	if err != nil {
		respondError(c, h.logger, "GetStats", err)
		return
	}
	stats, err := h.svc.Stats(c.Request.Context(), days)
	if err != nil {
		respondError(c, h.logger, "GetStats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// defaultDays 未传 days 时只看最近一周，days=0 表示不限
const defaultDays = 7

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: 参数%s必须是非负整数", errBadRequest, key)
	}
	return v, nil
}
