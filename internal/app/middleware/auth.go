package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"licensestore/internal/app/config"
	"licensestore/internal/app/ds"
	"licensestore/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TokenBlacklist - хранилище токенов, отозванных через logout (redis.Client)
type TokenBlacklist interface {
	IsJWTBlacklisted(ctx context.Context, jwtStr string) (bool, error)
}

type AuthMiddleware struct {
	Blacklist TokenBlacklist
	Config    *config.Config
}

func NewAuthMiddleware(blacklist TokenBlacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// BearerToken извлекает токен из заголовка Authorization
func BearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// WithAuthCheck middleware для проверки авторизации с ролями
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx)
		if jwtStr == "" {
			abort(gCtx, http.StatusUnauthorized, "authorization header missing")
			return
		}

		blacklisted, err := am.Blacklist.IsJWTBlacklisted(gCtx.Request.Context(), jwtStr)
		if err != nil {
			logrus.WithError(err).Error("token blacklist is unavailable")
			abort(gCtx, http.StatusServiceUnavailable, "authorization is temporarily unavailable")
			return
		}
		if blacklisted {
			abort(gCtx, http.StatusUnauthorized, "token revoked")
			return
		}

		claims, err := ParseToken(jwtStr, am.Config.JWT)
		if err != nil {
			abort(gCtx, http.StatusUnauthorized, "invalid token")
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(claims.Role, assignedRoles) {
			abort(gCtx, http.StatusForbidden, "insufficient role")
			return
		}

		setCurrentUser(gCtx, claims.UserID, claims.Role)
		gCtx.Next()
	}
}

// SignToken выпускает токен с id пользователя и ролью
func SignToken(userID uint, userRole role.Role, cfg config.JWTConfig, now time.Time) (string, time.Time, error) {
	method := cfg.SigningMethod
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	expiresAt := now.Add(cfg.ExpiresIn)
	token := jwt.NewWithClaims(method, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			// jti: токены, выпущенные в одну секунду, не совпадают
			Id:        uuid.NewString(),
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "licensestore",
		},
		UserID: userID,
		Role:   userRole,
	})

	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(tokenString string, cfg config.JWTConfig) (*ds.JWTClaims, error) {
	method := cfg.SigningMethod
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != method.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "fail",
		"message": message,
	})
}
