package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/config"
	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/server/middleware"
)

// EngineOption configures NewEngine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger        logger.LogManager
	recovery      bool
	corsConfig    middleware.CorsConfig
	prometheus    bool
	rateLimit     *middleware.RateLimitConfig
	addMiddleware []gin.HandlerFunc
}

// WithLogger sets the engine logger.
func WithLogger(l logger.LogManager) EngineOption {
	return func(e *engineOptions) { e.logger = l }
}

// WithRecovery toggles the panic recovery middleware.
func WithRecovery(enabled bool) EngineOption {
	return func(e *engineOptions) { e.recovery = enabled }
}

// WithCors applies a CORS configuration.
func WithCors(c middleware.CorsConfig) EngineOption {
	return func(e *engineOptions) { e.corsConfig = c }
}

// WithPrometheus toggles request metrics and the /metrics endpoint.
func WithPrometheus(enabled bool) EngineOption {
	return func(e *engineOptions) { e.prometheus = enabled }
}

// WithRateLimit enables per-IP rate limiting.
func WithRateLimit(cfg *middleware.RateLimitConfig) EngineOption {
	return func(e *engineOptions) { e.rateLimit = cfg }
}

// WithMiddleware appends extra middleware after the standard stack.
func WithMiddleware(m ...gin.HandlerFunc) EngineOption {
	return func(e *engineOptions) { e.addMiddleware = append(e.addMiddleware, m...) }
}

// StartOption configures Start.
type StartOption func(*startOptions)

type startOptions struct {
	cfg             *config.Config
	logger          logger.LogManager
	shutdownTimeout time.Duration
	addr            string
}

// StartWithConfig resolves the listen address from config.
func StartWithConfig(c *config.Config) StartOption {
	return func(o *startOptions) { o.cfg = c }
}

// StartWithLogger passes a logger for lifecycle messages.
func StartWithLogger(l logger.LogManager) StartOption {
	return func(o *startOptions) { o.logger = l }
}

// StartWithAddr overrides the listen address (host:port).
func StartWithAddr(addr string) StartOption {
	return func(o *startOptions) { o.addr = addr }
}

// StartWithShutdownTimeout sets the graceful shutdown timeout.
func StartWithShutdownTimeout(d time.Duration) StartOption {
	return func(o *startOptions) { o.shutdownTimeout = d }
}
