package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"licensestore/internal/app/dto"
	"licensestore/internal/app/licensing"
	"licensestore/internal/app/middleware"
	"licensestore/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ArtifactStore - хранилище дистрибутивов пакетов (storage.ArtifactStore)
type ArtifactStore interface {
	UploadArtifact(ctx context.Context, packageName, originalFilename string, r io.Reader, size int64) (string, error)
	DeleteArtifact(ctx context.Context, object string) error
	PresignedURL(ctx context.Context, object string) (string, time.Time, error)
}

// TokenStore - blacklist JWT (redis.Client)
type TokenStore interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
	IsJWTBlacklisted(ctx context.Context, jwtStr string) (bool, error)
}

// Handler содержит обработчики REST API
type Handler struct {
	Repository  *repository.Repository
	Licensing   *licensing.Service
	Artifacts   ArtifactStore
	AuthHandler *AuthHandler
}

func NewHandler(r *repository.Repository, svc *licensing.Service, artifacts ArtifactStore, authHandler *AuthHandler) *Handler {
	return &Handler{
		Repository:  r,
		Licensing:   svc,
		Artifacts:   artifacts,
		AuthHandler: authHandler,
	}
}

// ============ Вспомогательные функции ============

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// respondError переводит ошибку ядра в HTTP-статус. Внутренние ошибки не раскрываются.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
		errorResponse(c, status, "internal error")
		return
	}
	errorResponse(c, status, err.Error())
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok || id == 0 {
		errorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return 0, false
	}
	return id, true
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

