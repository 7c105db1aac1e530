// Package server assembles the gin engine with the console's middleware
// ordering and runs it with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/server/middleware"
)

// NewEngine creates a gin engine with the recommended middleware ordering.
func NewEngine(opts ...EngineOption) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	var opt engineOptions
	for _, o := range opts {
		o(&opt)
	}

	logMgr := opt.logger
	if logMgr == nil {
		logMgr = logger.MustNewDefaultLogger()
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLogger(logMgr))

	if opt.corsConfig.Enabled {
		engine.Use(middleware.CORS(opt.corsConfig))
	}
	if opt.rateLimit != nil && opt.rateLimit.Enabled {
		engine.Use(opt.rateLimit.Middleware())
	}
	if opt.prometheus {
		prom := middleware.NewPrometheusCollector("/metrics")
		engine.Use(prom.Middleware())
		prom.RegisterMetricsEndpoint(engine)
	}

	for _, m := range opt.addMiddleware {
		engine.Use(m)
	}

	if opt.recovery {
		engine.Use(middleware.Recovery(logMgr))
	}

	return engine
}

// Start runs the HTTP server and blocks until an interrupt triggers a
// graceful shutdown.
func Start(engine *gin.Engine, opts ...StartOption) error {
	so := &startOptions{shutdownTimeout: 15 * time.Second}
	for _, o := range opts {
		o(so)
	}

	addr := resolveAddress(so)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if so.logger != nil {
			so.logger.InfoF("server listening on %s", addr)
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	if so.logger != nil {
		so.logger.InfoF("shutdown initiated")
	}
	ctx, cancel := context.WithTimeout(context.Background(), so.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if so.logger != nil {
		so.logger.InfoF("server stopped gracefully")
	}
	return nil
}

func resolveAddress(so *startOptions) string {
	if so.addr != "" {
		return so.addr
	}
	if so.cfg != nil {
		host := so.cfg.GetStringD("service.endpoint", "0.0.0.0")
		port := so.cfg.GetStringD("service.port", "8080")
		return fmt.Sprintf("%s:%s", host, port)
	}
	return ":8080"
}
