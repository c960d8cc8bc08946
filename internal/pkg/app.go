package pkg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"licensestore/internal/app/config"
	"licensestore/internal/app/handler"
	"licensestore/internal/app/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.Handler
	Auth    *middleware.AuthMiddleware
	Limiter *middleware.IPRateLimiter
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, auth *middleware.AuthMiddleware, limiter *middleware.IPRateLimiter) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
		Auth:    auth,
		Limiter: limiter,
	}
}

// ConfigureLogging: JSON-формат в production, текстовый в development
func ConfigureLogging(cfg config.AppConfig) {
	if cfg.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// Setup регистрирует middleware и все маршруты
func (a *Application) Setup() {
	a.Router.Use(middleware.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.AddExposeHeaders("X-Request-ID")
	a.Router.Use(cors.New(corsConfig))

	a.Handler.RegisterAPIRoutes(a.Router, a.Auth, a.Limiter)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// RunApp запускает сервер и ждет отмены ctx, после чего корректно его останавливает
func (a *Application) RunApp(ctx context.Context) error {
	logrus.Info("Server start up")
	a.Setup()

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.Infof("Starting server on %s", serverAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				a.Limiter.Cleanup()
			}
		}
	})

	err := g.Wait()
	logrus.Info("Server down")
	return err
}
