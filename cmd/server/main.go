// Command server starts the BlogHub HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bloghub/internal/api"
	"bloghub/internal/app/limiter"
	"bloghub/internal/app/service"
	"bloghub/internal/common/security"
	"bloghub/internal/domain/repository"
	"bloghub/internal/platform/cache"
	"bloghub/internal/platform/config"
	"bloghub/internal/platform/database"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	// 1. Load Configuration (fails fast when JWT_SECRET is missing)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Token issuer/verifier
	tokens, err := security.NewTokenAuth(cfg.JWTKey, cfg.TokenLifetime)
	if err != nil {
		logger.Fatal("init token auth", zap.Error(err))
	}

	// 3. Database + migrations
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
	logger.Info("database ready")

	// 4. Redis (login limiter backend)
	rdb, err := cache.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	defer rdb.Close()

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	blogRepo := repository.NewPgBlogRepository(db)

	// 6. Services
	loginLimiter := limiter.NewRedis(rdb, cfg.LoginFailWindow, cfg.LoginMaxFails, cfg.LoginBlockFor)
	authService := service.NewAuthService(userRepo, blogRepo, tokens, loginLimiter)
	blogService := service.NewBlogService(blogRepo)

	// 7. Router & HTTP server
	router := api.NewRouter(logger, tokens, userRepo, authService, blogService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done() // Wait for interrupt signal

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
