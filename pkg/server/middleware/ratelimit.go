package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds per-IP rate limiting configuration and runtime
// state.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int

	limit   rate.Limit
	clients sync.Map // ip -> *rate.Limiter
}

// NewRateLimitConfig creates a per-IP rate limit.
func NewRateLimitConfig(enabled bool, rps float64, burst int) *RateLimitConfig {
	return &RateLimitConfig{
		Enabled: enabled,
		RPS:     rps,
		Burst:   burst,
		limit:   rate.Limit(rps),
	}
}

func (rl *RateLimitConfig) limiter(ip string) *rate.Limiter {
	if v, ok := rl.clients.Load(ip); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rl.limit, rl.Burst)
	actual, _ := rl.clients.LoadOrStore(ip, lim)
	return actual.(*rate.Limiter)
}

func remoteIP(c *gin.Context) string {
	if xff := c.Request.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.ClientIP()
}

// Middleware enforces the per-IP limit, answering 429 when exceeded.
func (rl *RateLimitConfig) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Enabled {
			c.Next()
			return
		}
		if !rl.limiter(remoteIP(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
