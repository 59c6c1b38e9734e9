package api

import (
	"fmt"
	"net/http"

	"PainRadar/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// JobScheduler 定时任务的查看与手动触发
type JobScheduler interface {
	ListJobs() []scheduler.JobInfo
	RunNow(name string) error
	RemoveJob(name string) bool
}

type JobHandler struct {
	scheduler JobScheduler
	logger    *logrus.Logger
}

func NewJobHandler(s JobScheduler, logger *logrus.Logger) *JobHandler {
	return &JobHandler{scheduler: s, logger: logger}
}

// ListJobs GET /api/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs := h.scheduler.ListJobs()
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// RunJob 同步执行一次，返回时任务已结束
// POST /api/jobs/:name/run
func (h *JobHandler) RunJob(c *gin.Context) {
	name := c.Param("name")
	if err := h.scheduler.RunNow(name); err != nil {
		respondError(c, h.logger, fmt.Sprintf("执行任务%s", name), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": name, "status": "done"})
}

// RemoveJob DELETE /api/jobs/:name
func (h *JobHandler) RemoveJob(c *gin.Context) {
	name := c.Param("name")
	if !h.scheduler.RemoveJob(name) {
		respondError(c, h.logger, "RemoveJob", fmt.Errorf("%w: %s", scheduler.ErrJobNotFound, name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": name, "status": "removed"})
}
