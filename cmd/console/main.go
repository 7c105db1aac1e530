// Command console runs the admin console session gateway: login/logout
// against the upstream identity service, the derived permission set, and
// the permission-guarded entity routes consumed by the UI shell.
package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/leadgrid/console/pkg/audit"
	"github.com/leadgrid/console/pkg/config"
	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/observability"
	"github.com/leadgrid/console/pkg/permission"
	"github.com/leadgrid/console/pkg/server"
	"github.com/leadgrid/console/pkg/server/middleware"
	"github.com/leadgrid/console/pkg/session"
	"github.com/leadgrid/console/pkg/validator"
)

// Entities surfaced by the console shell.
var entities = []string{"leads", "customers", "contracts", "properties", "payments"}

func main() {
	cfg := config.New(
		config.WithDefaults(map[string]any{
			"service.endpoint": "0.0.0.0",
			"service.port":     "8080",
			"auth.endpoint":    "http://localhost:9000/api/login",
			"redis.addr":       "localhost:6379",
			"audit.enabled":    false,
			"audit.topic":      "console.audit",
			"tracing.enabled":  false,
		}),
		config.WithEnv("CONSOLE"),
	)
	log := logger.MustNewDefaultLogger()
	defer log.Sync()

	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("redis.addr"),
		Password: cfg.GetString("redis.password"),
	})
	storage := session.NewRedisStorage(redisClient)

	store := permission.NewStore()
	checker := permission.NewChecker(store)

	var publisher *audit.Publisher
	if cfg.GetBool("audit.enabled") {
		publisher = audit.NewPublisher(
			cfg.GetStringSlice("audit.brokers"),
			cfg.GetString("audit.topic"),
			log,
		)
		publisher.Follow(store)
		defer publisher.Close()
	}

	mgr := session.NewManager(ctx, session.ManagerConfig{
		API:     session.NewClient(cfg.GetString("auth.endpoint"), log),
		Storage: storage,
		Store:   store,
		Log:     log,
		OnLogout: func() {
			log.InfoF("session ended, console returns to the login view")
		},
	})

	engine := server.NewEngine(
		server.WithLogger(log),
		server.WithRecovery(true),
		server.WithCors(middleware.DefaultCorsConfig()),
		server.WithRateLimit(middleware.NewRateLimitConfig(true, 10, 20)),
		server.WithPrometheus(true),
	)

	if cfg.GetBool("tracing.enabled") {
		obs, err := observability.New(log, cfg)
		if err != nil {
			log.ErrorF("tracing setup failed: %v", err)
			os.Exit(1)
		}
		defer obs.Shutdown(ctx)
		engine.Use(obs.GinMiddleware())
	}

	registerRoutes(engine, mgr, checker, publisher, validator.New())

	if err := server.Start(engine,
		server.StartWithConfig(cfg),
		server.StartWithLogger(log),
	); err != nil {
		log.ErrorF("server error: %v", err)
		os.Exit(1)
	}
}

func registerRoutes(engine *gin.Engine, mgr *session.Manager, checker *permission.Checker, publisher *audit.Publisher, vi *validator.Validator) {
	api := engine.Group("/api")

	api.POST("/login", loginHandler(mgr, publisher, vi))
	api.POST("/logout", logoutHandler(mgr, publisher))
	api.GET("/session", sessionHandler(mgr))

	for _, entity := range entities {
		registerEntityRoutes(api, checker, entity)
	}
}
