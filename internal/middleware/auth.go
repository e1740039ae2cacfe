package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/danidevdc/calendar-citas-app/internal/service/auth"
)

type AuthMiddleware struct {
	authService *authService.Service
}

func NewAuthMiddleware(authService *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the operator session token on protected routes.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "missing authorization header",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid authorization format",
			})
			return
		}

		if err := m.authService.VerifyToken(parts[1]); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid or expired token",
			})
			return
		}

		c.Next()
	}
}
