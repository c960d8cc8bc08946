package api

import (
	"context"
	"fmt"

	_ "licensestore/docs"
	"licensestore/internal/app/config"
	"licensestore/internal/app/handler"
	"licensestore/internal/app/licensing"
	"licensestore/internal/app/middleware"
	"licensestore/internal/app/redis"
	"licensestore/internal/app/repository"
	"licensestore/internal/app/storage"
	"licensestore/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает зависимости и блокируется до отмены ctx
func StartServer(ctx context.Context) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	pkg.ConfigureLogging(cfg.App)

	if cfg.DSN == "" {
		return fmt.Errorf("database DSN is empty, set DATABASE_DSN or DB_HOST")
	}
	repo, err := repository.New(cfg.DSN)
	if err != nil {
		return fmt.Errorf("repository: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer redisClient.Close()

	// без MinIO сервис работает, но загрузка и скачивание дистрибутивов недоступны
	var artifacts handler.ArtifactStore
	store, err := storage.NewArtifactStore(ctx, cfg.MinIO)
	if err != nil {
		logrus.Warnf("MinIO is unavailable, artifact downloads disabled: %v", err)
	} else {
		artifacts = store
	}

	svc := licensing.NewService(repo, licensing.Options{
		DefaultDays: cfg.License.DefaultDays,
		LockTimeout: cfg.Purchase.LockTimeout,
	})

	h := handler.NewHandler(repo, svc, artifacts, handler.NewAuthHandler(repo, redisClient, cfg))
	auth := middleware.NewAuthMiddleware(redisClient, cfg)
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	app := pkg.NewApp(cfg, gin.New(), h, auth, limiter)
	return app.RunApp(ctx)
}
