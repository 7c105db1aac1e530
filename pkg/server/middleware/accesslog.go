package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/logger"
)

// AccessLogger logs every request after completion with method, path,
// status, latency and the assigned request id.
func AccessLogger(l logger.LogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := l.With(
			"log_type", "access",
			"ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", GetRequestID(c),
		)
		switch {
		case status >= 500:
			entry.ErrorF("request completed")
		case status >= 400:
			entry.WarnF("request completed")
		default:
			entry.InfoF("request completed")
		}
	}
}
