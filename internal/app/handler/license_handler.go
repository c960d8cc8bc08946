package handler

import (
	"errors"
	"net/http"

	"licensestore/internal/app/dto"
	"licensestore/internal/app/licensing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ЛИЦЕНЗИИ ============

func licenseResponse(rec licensing.LicenseRecord) dto.LicenseResponse {
	return dto.LicenseResponse{
		ID:            rec.ID,
		Key:           rec.Key,
		UserID:        rec.UserID,
		ExpiresAt:     rec.ExpiresAt,
		RevokedAt:     rec.RevokedAt,
		RevokedReason: rec.RevokedReason,
		PackageIDs:    rec.PackageIDs,
	}
}

// IssueLicense выдает лицензию без оплаты
// @Summary Выдача лицензии администратором
// @Description Ровно один базовый пакет, остальные - дополнения. Баланс не списывается.
// @Tags Licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IssueLicenseRequest true "Лицензия"
// @Success 201 {object} dto.IssuedLicenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/licenses [post]
func (h *Handler) IssueLicense(c *gin.Context) {
	var req dto.IssueLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	issued, err := h.Licensing.IssueLicense(c.Request.Context(), req.UserID, req.PackageIDs, req.LicenseDays)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issuedResponse(issued))
}

// GetLicenses список всех лицензий
// @Summary Список лицензий
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LicenseListResponse
// @Router /api/licenses [get]
func (h *Handler) GetLicenses(c *gin.Context) {
	records, err := h.Licensing.ListLicenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.LicenseResponse, len(records))
	for i, rec := range records {
		items[i] = licenseResponse(rec)
	}
	c.JSON(http.StatusOK, dto.LicenseListResponse{Licenses: items, Total: len(items)})
}

// RevokeLicense отзывает лицензию
// @Summary Отзыв лицензии
// @Description Повторный отзыв возвращает лицензию без изменений
// @Tags Licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param license path int true "ID лицензии"
// @Param request body dto.RevokeLicenseRequest false "Причина"
// @Success 200 {object} dto.LicenseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/licenses/{license}/revoke [post]
func (h *Handler) RevokeLicense(c *gin.Context) {
	id, ok := parseID(c, "license")
	if !ok {
		return
	}

	var req dto.RevokeLicenseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	rec, err := h.Licensing.Revoke(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, licenseResponse(rec))
}

// ExtendLicense продлевает лицензию
// @Summary Продление лицензии
// @Tags Licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param license path int true "ID лицензии"
// @Param request body dto.ExtendLicenseRequest true "Дни"
// @Success 200 {object} dto.LicenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/licenses/{license}/extend [post]
func (h *Handler) ExtendLicense(c *gin.Context) {
	id, ok := parseID(c, "license")
	if !ok {
		return
	}

	var req dto.ExtendLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.Licensing.Extend(c.Request.Context(), id, req.ExtraDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, licenseResponse(rec))
}

// GetMyLicenses лицензии текущего пользователя
// @Summary Мои лицензии
// @Tags Licenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MyLicenseResponse
// @Router /api/me/licenses [get]
func (h *Handler) GetMyLicenses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	licenses, err := h.Licensing.UserLicenses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.MyLicenseResponse, len(licenses))
	for i, l := range licenses {
		resp[i] = dto.MyLicenseResponse{
			ID:            l.ID,
			Key:           l.Key,
			ExpiresAt:     l.ExpiresAt,
			RevokedAt:     l.RevokedAt,
			RevokedReason: l.RevokedReason,
			Valid:         l.Valid,
			PackageNames:  l.PackageNames,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateLicense диагностическая проверка ключа
// @Summary Проверка ключа лицензии
// @Description Неизвестный ключ возвращает valid=false, а не ошибку
// @Tags Licenses
// @Accept json
// @Produce json
// @Param request body dto.LicenseKeyRequest true "Ключ"
// @Success 200 {object} dto.ValidateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/licenses/validate [post]
func (h *Handler) ValidateLicense(c *gin.Context) {
	var req dto.LicenseKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.Licensing.Validate(c.Request.Context(), req.Key)
	if err != nil {
		if errors.Is(err, licensing.ErrLicenseNotFound) {
			c.JSON(http.StatusOK, dto.ValidateResponse{Valid: false})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateResponse{
		Valid:     v.Valid,
		ExpiresAt: &v.ExpiresAt,
		RevokedAt: v.RevokedAt,
		Reason:    v.Reason,
	})
}

// ResolvePackages набор пакетов по ключу (тело запроса)
// @Summary Пакеты по ключу лицензии
// @Description Возвращает пакеты, доступные по действующей лицензии сейчас
// @Tags Licenses
// @Accept json
// @Produce json
// @Param request body dto.LicenseKeyRequest true "Ключ"
// @Success 200 {object} dto.EntitlementResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/licenses/packages [post]
func (h *Handler) ResolvePackages(c *gin.Context) {
	var req dto.LicenseKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	h.resolve(c, req.Key)
}

// ResolvePackagesByKey набор пакетов по ключу (путь)
// @Summary Пакеты по ключу лицензии
// @Tags Licenses
// @Produce json
// @Param license path string true "Ключ лицензии"
// @Success 200 {object} dto.EntitlementResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/licenses/{license}/packages [get]
func (h *Handler) ResolvePackagesByKey(c *gin.Context) {
	h.resolve(c, c.Param("license"))
}

func (h *Handler) resolve(c *gin.Context, key string) {
	ent, err := h.Licensing.ResolvePackages(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EntitlementResponse{Key: ent.Key, PackageNames: ent.PackageNames})
}

// DownloadPackage временная ссылка на дистрибутив пакета
// @Summary Ссылка на скачивание пакета
// @Description Пакет должен входить в текущий набор прав по ключу. Скачивание логируется.
// @Tags Licenses
// @Produce json
// @Param license path string true "Ключ лицензии"
// @Param name path string true "Имя пакета"
// @Param version query string false "Версия пакета для журнала"
// @Success 200 {object} dto.DownloadLinkResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/licenses/{license}/packages/{name}/download [get]
func (h *Handler) DownloadPackage(c *gin.Context) {
	if h.Artifacts == nil {
		errorResponse(c, http.StatusServiceUnavailable, "artifact storage is not configured")
		return
	}

	ctx := c.Request.Context()
	key := c.Param("license")
	name := c.Param("name")

	pkg, err := h.Licensing.EntitledArtifact(ctx, key, name)
	if err != nil {
		respondError(c, err)
		return
	}

	url, expiresAt, err := h.Artifacts.PresignedURL(ctx, *pkg.ArtifactObject)
	if err != nil {
		respondError(c, err)
		return
	}

	var version *string
	if v := c.Query("version"); v != "" {
		version = &v
	}
	ip := c.ClientIP()
	if _, err := h.Licensing.LogDownload(ctx, licensing.DownloadLog{
		LicenseKey:     &key,
		PackageName:    pkg.Name,
		PackageVersion: version,
		IPAddress:      &ip,
	}); err != nil {
		logrus.WithError(err).Warn("failed to log download event")
	}

	c.JSON(http.StatusOK, dto.DownloadLinkResponse{
		Package:   pkg.Name,
		URL:       url,
		ExpiresAt: expiresAt,
	})
}
