// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/firstclub/membership-api/internal/benefit"
	"github.com/firstclub/membership-api/internal/config"
	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/health"
	"github.com/firstclub/membership-api/internal/middleware"
	"github.com/firstclub/membership-api/internal/ops"
	"github.com/firstclub/membership-api/internal/plan"
	"github.com/firstclub/membership-api/internal/seed"
	"github.com/firstclub/membership-api/internal/server"
	"github.com/firstclub/membership-api/internal/subscription"
	"github.com/firstclub/membership-api/internal/tier"
	"github.com/firstclub/membership-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	tierRepo := tier.NewRepository(db.DB)
	tierSvc := tier.NewService(tierRepo, userSvc)
	tierHandler := tier.NewHandler(tierSvc)

	planRepo := plan.NewRepository(db.DB)
	planSvc := plan.NewService(planRepo)
	planHandler := plan.NewHandler(planSvc)

	benefitRepo := benefit.NewRepository(db.DB)
	benefitSvc := benefit.NewService(benefitRepo)
	benefitHandler := benefit.NewHandler(benefitSvc)

	subRepo := subscription.NewRepository(db)
	subSvc := subscription.NewService(subRepo, planSvc, userSvc, tierRepo, logger)
	subHandler := subscription.NewHandler(subSvc)

	if cfg.Seed.Enabled {
		seeder := seed.NewSeeder(planRepo, tierRepo, logger)
		if err := seeder.Run(ctx); err != nil {
			return err
		}
	}

	healthHandler := health.NewHandler(db, redis)

	opsHandler := ops.NewHandler(ops.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Sweeper:    subSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Route("/v1", func(r chi.Router) {
		userHandler.RegisterRoutes(r)
		tierHandler.RegisterRoutes(r)
		planHandler.RegisterRoutes(r)
		benefitHandler.RegisterRoutes(r)
		subHandler.RegisterRoutes(r)
		opsHandler.RegisterRoutes(r)
	})

	var sweeper *subscription.Sweeper
	if cfg.Sweep.Enabled {
		sweeper = subscription.NewSweeper(subSvc, cfg.Sweep.Interval, logger)
		sweeper.Start(ctx)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sweeper != nil {
		sweeper.Stop()
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
