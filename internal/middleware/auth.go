package middleware

import (
	"net/http"
	"strings"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/gin-gonic/gin"
)

// context keys set by Auth
const (
	ContextUserId = "user_id"
	ContextRole   = "role"
)

// Auth validates the bearer token and stores user id and role on the
// request context.
func Auth(authLogic *logic.AuthLogic) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userId, role, err := authLogic.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserId, userId)
		c.Set(ContextRole, string(role))
		c.Next()
	}
}

// AdminOnly requires the admin role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(model.UserRoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserId reads the authenticated user id from the request context.
func UserId(c *gin.Context) int64 {
	return c.GetInt64(ContextUserId)
}
