package api

import (
	"fmt"
	"net/http"
	"strings"

	"PainRadar/internal/scoring"
	"PainRadar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type analyzeRequest struct {
	Title    string `json:"title"`
	Text     string `json:"text" binding:"required"`
	Likes    int    `json:"likes"`
	Retweets int    `json:"retweets"`
	Replies  int    `json:"replies"`
	Keywords string `json:"keywords"` // 可选，逗号或换行分隔
}

type AnalyzeHandler struct {
	svc    *service.OpportunityService
	logger *logrus.Logger
}

func NewAnalyzeHandler(svc *service.OpportunityService, logger *logrus.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, logger: logger}
}

// Analyze 临时分析一段文本，不入库
// POST /api/analyze {"text": "...", "likes": 10, "retweets": 2, "keywords": "theft, urgent"}
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "Analyze", fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(c, h.logger, "Analyze", fmt.Errorf("%w: text不能为空", errBadRequest))
		return
	}
	engagement := scoring.Engagement{Likes: req.Likes, Retweets: req.Retweets, Replies: req.Replies}
	res := h.svc.Analyze(req.Title, req.Text, engagement, scoring.ParseKeywords(req.Keywords))
	c.JSON(http.StatusOK, res)
}
