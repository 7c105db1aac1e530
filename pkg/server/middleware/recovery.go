package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/apperr"
	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/response"
)

// Recovery converts panics into a 500 envelope and logs the stack.
func Recovery(l logger.LogManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.With("log_type", "panic", "path", c.Request.URL.Path).
					ErrorF("panic recovered: %v\n%s", r, debug.Stack())
				response.JSONError(c, apperr.New(apperr.ErrorCodeInternal))
				c.Abort()
			}
		}()
		c.Next()
	}
}
