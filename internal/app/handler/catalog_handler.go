package handler

import (
	"errors"
	"net/http"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/dto"
	"licensestore/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ПАКЕТЫ ============

func packageResponse(p ds.Package) dto.PackageResponse {
	return dto.PackageResponse{
		ID:           p.ID,
		Name:         p.Name,
		IsBase:       p.IsBase,
		Price:        p.Price,
		IsDeprecated: p.IsDeprecated,
		HasArtifact:  p.ArtifactObject != nil && *p.ArtifactObject != "",
		CreatedAt:    p.CreatedAt,
	}
}

// GetPackages получает каталог пакетов
// @Summary Каталог пакетов
// @Description Возвращает все пакеты, включая устаревшие
// @Tags Packages
// @Produce json
// @Success 200 {object} dto.PackageListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/packages [get]
func (h *Handler) GetPackages(c *gin.Context) {
	packages, err := h.Repository.ListPackages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.PackageResponse, len(packages))
	for i, p := range packages {
		items[i] = packageResponse(p)
	}

	c.JSON(http.StatusOK, dto.PackageListResponse{
		Packages: items,
		Total:    len(items),
	})
}

// CreatePackage создает пакет каталога
// @Summary Создание пакета
// @Tags Packages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePackageRequest true "Пакет"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/packages [post]
func (h *Handler) CreatePackage(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	pkg := &ds.Package{
		Name:   req.Name,
		IsBase: req.IsBase,
		Price:  *req.Price,
	}
	if err := h.Repository.CreatePackage(c.Request.Context(), pkg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			errorResponse(c, http.StatusConflict, "package name is already taken")
			return
		}
		respondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"package_id": pkg.ID, "name": pkg.Name}).Info("package created")
	c.JSON(http.StatusCreated, packageResponse(*pkg))
}

// DeprecatePackage помечает пакет устаревшим
// @Summary Депрекация пакета
// @Description Пакет исчезает из наборов прав и больше не продается. Лицензии не отзываются.
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пакета"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/packages/{id}/deprecate [put]
func (h *Handler) DeprecatePackage(c *gin.Context) {
	h.setDeprecated(c, true)
}

// UndeprecatePackage снимает депрекацию
// @Summary Отмена депрекации пакета
// @Tags Packages
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пакета"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/packages/{id}/undeprecate [put]
func (h *Handler) UndeprecatePackage(c *gin.Context) {
	h.setDeprecated(c, false)
}

func (h *Handler) setDeprecated(c *gin.Context, deprecated bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Repository.SetPackageDeprecated(c.Request.Context(), id, deprecated); err != nil {
		respondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"package_id": id, "deprecated": deprecated}).Info("package deprecation changed")
	successResponse(c, http.StatusOK, "package updated", gin.H{"id": id, "is_deprecated": deprecated})
}

// UploadPackageArtifact загружает дистрибутив пакета в MinIO
// @Summary Загрузка дистрибутива пакета
// @Tags Packages
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пакета"
// @Param file formData file true "Архив пакета"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/packages/{id}/artifact [post]
func (h *Handler) UploadPackageArtifact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if h.Artifacts == nil {
		errorResponse(c, http.StatusServiceUnavailable, "artifact storage is not configured")
		return
	}

	ctx := c.Request.Context()
	pkg, err := h.Repository.GetPackageByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "file is missing")
		return
	}

	opened, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer opened.Close()

	object, err := h.Artifacts.UploadArtifact(ctx, pkg.Name, file.Filename, opened, file.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Repository.SetPackageArtifact(ctx, id, object); err != nil {
		respondError(c, err)
		return
	}

	// старый объект удаляем только после записи нового в БД
	if pkg.ArtifactObject != nil && *pkg.ArtifactObject != "" {
		if err := h.Artifacts.DeleteArtifact(ctx, *pkg.ArtifactObject); err != nil {
			logrus.Warnf("Failed to delete old artifact %s: %v", *pkg.ArtifactObject, err)
		}
	}

	successResponse(c, http.StatusOK, "artifact uploaded", gin.H{"id": id, "object": object})
}
