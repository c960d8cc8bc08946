package handler

import (
	"licensestore/internal/app/middleware"
	"licensestore/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией.
// limiter ограничивает публичные эндпоинты проверки ключей.
func (h *Handler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware, limiter *middleware.IPRateLimiter) {
	api := router.Group("/api")

	anyRole := authMiddleware.WithAuthCheck(role.Buyer, role.Admin)
	adminOnly := authMiddleware.WithAuthCheck(role.Admin)
	limited := limiter.Middleware()

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)
		auth.POST("/logout", anyRole, h.AuthHandler.LogoutUser)
		auth.POST("/refresh", anyRole, h.AuthHandler.RefreshToken)
	}

	// ============ Пользователи ============
	users := api.Group("/users", adminOnly)
	{
		users.GET("", h.GetUsers)
		users.PATCH("/:id/role", h.UpdateUserRole)
	}

	// ============ Каталог ============
	packages := api.Group("/packages")
	{
		packages.GET("", h.GetPackages)

		packages.POST("", adminOnly, h.CreatePackage)
		packages.PUT("/:id/deprecate", adminOnly, h.DeprecatePackage)
		packages.PUT("/:id/undeprecate", adminOnly, h.UndeprecatePackage)
		packages.POST("/:id/artifact", adminOnly, h.UploadPackageArtifact)
	}

	// ============ Баланс и покупка ============
	api.GET("/balance", anyRole, h.GetBalance)
	api.POST("/balance/increase", anyRole, h.IncreaseBalance)
	api.POST("/store/purchase", anyRole, h.Purchase)
	api.GET("/me/licenses", anyRole, h.GetMyLicenses)

	// ============ Лицензии ============
	// :license - id лицензии для админских операций и ключ для публичных
	licenses := api.Group("/licenses")
	{
		licenses.POST("", adminOnly, h.IssueLicense)
		licenses.GET("", adminOnly, h.GetLicenses)
		licenses.POST("/:license/revoke", adminOnly, h.RevokeLicense)
		licenses.POST("/:license/extend", adminOnly, h.ExtendLicense)

		licenses.POST("/validate", limited, h.ValidateLicense)
		licenses.POST("/packages", limited, h.ResolvePackages)
		licenses.GET("/:license/packages", limited, h.ResolvePackagesByKey)
		licenses.GET("/:license/packages/:name/download", limited, h.DownloadPackage)
	}

	// ============ События скачивания ============
	events := api.Group("/events")
	{
		events.POST("", h.LogDownloadEvent)
		events.GET("", adminOnly, h.GetDownloadEvents)
	}

	router.GET("/ping", h.Ping)
}
