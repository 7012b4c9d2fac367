// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/Isann22/NutriTrack-Backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies HS256 bearer tokens issued by the account service.
// It only checks signature and expiry and exposes the subject and email
// claims; users are not looked up locally.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authorization header required"})
			return
		}

		claims, err := utils.ParseJWT(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			return
		}

		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Set("subject", sub)
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Set("email", email)
		}
		c.Next()
	}
}
