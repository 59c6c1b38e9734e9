package api

import (
	"errors"
	"net/http"

	"PainRadar/internal/repository"
	"PainRadar/internal/scheduler"
	"PainRadar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// errBadRequest 参数校验失败
var errBadRequest = errors.New("bad request")

// respondError 不存在→404，参数错误→400，其余→500
func respondError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, scheduler.ErrJobNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, service.ErrUnknownSource):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.WithError(err).Errorf("%s失败", op)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
