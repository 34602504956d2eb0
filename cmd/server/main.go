package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sitereport/internal/auth"
	"sitereport/internal/bootstrap"
	"sitereport/internal/cache"
	"sitereport/internal/config"
	"sitereport/internal/db"
	"sitereport/internal/handler"
	"sitereport/internal/logger"
	"sitereport/internal/repository"
	"sitereport/internal/router"
	"sitereport/internal/service"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

// @title Site Report API
// @version 1.0
// @description Backend for construction site reports, visits and offline sync.
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.SecretGenerated {
		zlog.Warn("SECRET_KEY not set, using a per-process secret; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	seedRepo := repository.NewSeedRepository(gormDB)
	syncRepo := repository.NewSyncRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	visitRepo := repository.NewVisitRepository(gormDB)

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL, userRepo)
	boot := bootstrap.New(seedRepo, cacheClient, zlog, bootstrap.OptionsFromConfig(cfg))

	// The server starts even when the schema is unavailable; /init-db retries.
	if res := boot.Run(ctx); res.Status == bootstrap.StatusFailed {
		zlog.Error("bootstrap failed, serving degraded", zap.String("reason", res.Reason))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens)
	syncService := service.NewSyncService(syncRepo)
	dashboardService := service.NewDashboardService(projectRepo, reportRepo, visitRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, zlog, tokens, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Sync:      handler.NewSyncHandler(syncService),
		Bootstrap: handler.NewBootstrapHandler(boot),
		System:    handler.NewSystemHandler(seedRepo, version, zlog),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	})

	addr := ":" + cfg.ServerPort
	go func() {
		zlog.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("version", version))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
}
