package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"property-backend/auth"
)

const (
	// AdminIDKey is the context key holding the authenticated admin's ID.
	AdminIDKey = "admin_id"
	// UsernameKey is the context key holding the authenticated username.
	UsernameKey = "username"
)

// RequireAuth validates the Bearer token and stores the admin identity on
// the gin context.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}
