package handler

import (
	"net/http"

	"licensestore/internal/app/dto"
	"licensestore/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetUsers список пользователей
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Repository.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.UserResponse, len(users))
	for i := range users {
		items[i] = userResponse(&users[i])
	}
	c.JSON(http.StatusOK, dto.UserListResponse{Users: items, Total: len(items)})
}

// UpdateUserRole смена роли пользователя
// @Summary Смена роли пользователя
// @Description Новая роль попадает в токен при следующем входе или обновлении токена
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body dto.UpdateUserRoleRequest true "Роль"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/{id}/role [patch]
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	newRole, err := role.Parse(req.Role)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Repository.SetUserRole(c.Request.Context(), id, newRole)
	if err != nil {
		respondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "role": newRole.String()}).Info("user role changed")
	c.JSON(http.StatusOK, userResponse(user))
}
