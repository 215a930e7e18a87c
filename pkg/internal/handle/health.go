package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/assetvault/pkg/configs"
)

// Healthz 健康检查：探测数据库和 blob 存储，任一不可用返回 503.
func (h *Handlers) Healthz(c *gin.Context) {
	if err := h.Health.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": configs.AppVersion,
	})
}
