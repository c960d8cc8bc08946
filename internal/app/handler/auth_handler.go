package handler

import (
	"errors"
	"net/http"
	"time"

	"licensestore/internal/app/config"
	"licensestore/internal/app/ds"
	"licensestore/internal/app/dto"
	"licensestore/internal/app/middleware"
	"licensestore/internal/app/repository"
	"licensestore/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Repository *repository.Repository
	Tokens     TokenStore
	Config     *config.Config
}

func NewAuthHandler(r *repository.Repository, tokens TokenStore, config *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository: r,
		Tokens:     tokens,
		Config:     config,
	}
}

func userResponse(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Login: user.Login,
		Role:  user.Role.String(),
	}
}

func (h *AuthHandler) loginResponse(user *ds.User) (dto.LoginResponse, error) {
	token, _, err := middleware.SignToken(user.ID, user.Role, h.Config.JWT, time.Now())
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.Config.JWT.ExpiresIn.Seconds()),
		User:      userResponse(user),
	}, nil
}

func (h *AuthHandler) issueToken(c *gin.Context, user *ds.User, status int) {
	resp, err := h.loginResponse(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}

// blacklist отзывает токен ровно до истечения его срока
func (h *AuthHandler) blacklist(c *gin.Context, tokenString string, claims *ds.JWTClaims) error {
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	return h.Tokens.WriteJWTToBlacklist(c.Request.Context(), tokenString, ttl)
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создание покупателя и выдача JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	// роль администратора выдаёт другой администратор (PATCH /api/users/:id/role)
	user, err := h.Repository.CreateUser(c.Request.Context(), request.Login, string(hash), role.Buyer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			errorResponse(c, http.StatusConflict, "login is already taken")
			return
		}
		respondError(c, err)
		return
	}

	logrus.WithField("user_id", user.ID).Info("user registered")
	h.issueToken(c, user, http.StatusCreated)
}

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Аутентификация пользователя с возвратом JWT токена
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Repository.GetUserByLogin(c.Request.Context(), request.Login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorResponse(c, http.StatusUnauthorized, "invalid login or password")
			return
		}
		respondError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)) != nil {
		errorResponse(c, http.StatusUnauthorized, "invalid login or password")
		return
	}

	h.issueToken(c, user, http.StatusOK)
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса пользователя с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	tokenString := middleware.BearerToken(c)

	claims, err := middleware.ParseToken(tokenString, h.Config.JWT)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.blacklist(c, tokenString, claims); err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, http.StatusOK, "logged out", nil)
}

// RefreshToken обмен действующего токена на новый
// @Summary Обновление токена
// @Description Выдаёт новый JWT с текущей ролью пользователя, старый токен попадает в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	tokenString := middleware.BearerToken(c)

	claims, err := middleware.ParseToken(tokenString, h.Config.JWT)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "invalid token")
		return
	}

	// роль берётся из БД: смена роли вступает в силу при обновлении токена
	user, err := h.Repository.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			errorResponse(c, http.StatusUnauthorized, "invalid token")
			return
		}
		respondError(c, err)
		return
	}

	resp, err := h.loginResponse(user)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.blacklist(c, tokenString, claims); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
