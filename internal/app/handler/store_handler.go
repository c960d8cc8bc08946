package handler

import (
	"net/http"

	"licensestore/internal/app/dto"
	"licensestore/internal/app/licensing"

	"github.com/gin-gonic/gin"
)

// ============ ДОМЕН БАЛАНС И ПОКУПКА ============

// GetBalance возвращает баланс текущего пользователя
// @Summary Баланс
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BalanceResponse
// @Router /api/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.Repository.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: user.Balance})
}

// IncreaseBalance пополняет баланс
// @Summary Пополнение баланса
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IncreaseBalanceRequest true "Сумма"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/balance/increase [post]
func (h *Handler) IncreaseBalance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.IncreaseBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.Repository.IncreaseBalance(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// Purchase покупает лицензии за счет баланса
// @Summary Покупка лицензий
// @Description Одна лицензия на каждую позицию. Баланс списывается один раз на всю сумму;
// @Description при любой ошибке ничего не списывается и не выдается.
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PurchaseRequest true "Позиции покупки"
// @Success 201 {array} dto.IssuedLicenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/store/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]licensing.PurchaseItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = licensing.PurchaseItem{
			BasePackageID:   item.BasePackageID,
			AddonPackageIDs: item.AddonPackageIDs,
		}
	}

	issued, err := h.Licensing.Purchase(c.Request.Context(), userID, licensing.PurchaseRequest{
		Items:       items,
		LicenseDays: req.LicenseDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.IssuedLicenseResponse, len(issued))
	for i, lic := range issued {
		resp[i] = issuedResponse(lic)
	}
	c.JSON(http.StatusCreated, resp)
}

func issuedResponse(lic licensing.IssuedLicense) dto.IssuedLicenseResponse {
	return dto.IssuedLicenseResponse{
		Key:        lic.Key,
		PackageIDs: lic.PackageIDs,
		ExpiresAt:  lic.ExpiresAt,
	}
}
