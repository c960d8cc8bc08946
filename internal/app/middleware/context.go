package middleware

import (
	"licensestore/internal/app/role"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "userID"
	userRoleKey  = "userRole"
	requestIDKey = "requestID"
)

func setCurrentUser(c *gin.Context, userID uint, userRole role.Role) {
	c.Set(userIDKey, userID)
	c.Set(userRoleKey, userRole)
}

// CurrentUserID возвращает id пользователя, установленный WithAuthCheck
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func CurrentRole(c *gin.Context) (role.Role, bool) {
	v, ok := c.Get(userRoleKey)
	if !ok {
		return 0, false
	}
	r, ok := v.(role.Role)
	return r, ok
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
