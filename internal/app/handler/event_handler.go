package handler

import (
	"net/http"
	"strconv"

	"licensestore/internal/app/ds"
	"licensestore/internal/app/dto"
	"licensestore/internal/app/licensing"
	"licensestore/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// ============ ДОМЕН СОБЫТИЯ СКАЧИВАНИЯ ============

func eventResponse(e ds.DownloadEvent) dto.DownloadEventResponse {
	return dto.DownloadEventResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		LicenseKey:     e.LicenseKey,
		PackageName:    e.PackageName,
		PackageVersion: e.PackageVersion,
		IPAddress:      e.IPAddress,
		ValidAtLogTime: e.ValidAtLogTime,
		CreatedAt:      e.CreatedAt,
	}
}

// LogDownloadEvent записывает событие скачивания
// @Summary Журнал скачиваний
// @Description Действительность ключа фиксируется на момент записи
// @Tags Events
// @Accept json
// @Produce json
// @Param request body dto.DownloadEventRequest true "Событие"
// @Success 201 {object} dto.DownloadEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/events [post]
func (h *Handler) LogDownloadEvent(c *gin.Context) {
	var req dto.DownloadEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// адрес из тела запроса, иначе адрес клиента
	ip := c.ClientIP()
	if req.IPAddress != nil && *req.IPAddress != "" {
		ip = *req.IPAddress
	}
	evt, err := h.Licensing.LogDownload(c.Request.Context(), licensing.DownloadLog{
		LicenseKey:     req.LicenseKey,
		PackageName:    req.PackageName,
		PackageVersion: req.PackageVersion,
		IPAddress:      &ip,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, eventResponse(*evt))
}

// GetDownloadEvents список событий скачивания
// @Summary Список событий скачивания
// @Description Новые первыми. limit по умолчанию 100, максимум 500.
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param license_key query string false "Ключ лицензии"
// @Param package_name query string false "Имя пакета"
// @Param valid query bool false "Действительность на момент записи"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.DownloadEventListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/events [get]
func (h *Handler) GetDownloadEvents(c *gin.Context) {
	var filter repository.EventFilter

	if v := c.Query("license_key"); v != "" {
		filter.LicenseKey = &v
	}
	if v := c.Query("package_name"); v != "" {
		filter.PackageName = &v
	}
	if v := c.Query("valid"); v != "" {
		valid, err := strconv.ParseBool(v)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid valid")
			return
		}
		filter.Valid = &valid
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid limit")
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid offset")
		return
	}

	events, err := h.Licensing.ListDownloadEvents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.DownloadEventResponse, len(events))
	for i, e := range events {
		items[i] = eventResponse(e)
	}
	c.JSON(http.StatusOK, dto.DownloadEventListResponse{Events: items, Total: len(items)})
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
