// Command tk-server starts the task-keeper REST API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/and161185/task-keeper/internal/config"
	"github.com/and161185/task-keeper/internal/limiter"
	"github.com/and161185/task-keeper/internal/migrate"
	"github.com/and161185/task-keeper/internal/repository/postgres"
	httpserver "github.com/and161185/task-keeper/internal/server/http"
	"github.com/and161185/task-keeper/internal/service"
	"github.com/and161185/task-keeper/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg, cfgErr := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if cfgErr != nil {
		logger.Fatal("configuration", zap.Error(cfgErr))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.String("env", cfg.Env),
	)

	tokens, err := token.NewManager([]byte(cfg.JWTSecret), cfg.AccessTTL, cfg.Production())
	if err != nil {
		logger.Fatal("token manager", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	taskRepo := postgres.NewTaskRepo(db)

	lim := limiter.NewPGWithQuerier(db.Pool, 15*time.Minute, 5, 15*time.Minute)

	// Services
	authSvc := service.NewAuthService(userRepo, tokens, lim)
	taskSvc := service.NewTaskService(taskRepo)

	api := httpserver.New(authSvc, taskSvc, tokens, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}

// newLogger builds a production zap logger at the configured level. An
// unknown level falls back to info.
func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
