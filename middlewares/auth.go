package middlewares

import (
	"net/http"
	"strings"

	"jewellery-service/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the admin route group. Tokens need the admin
// role claim; everything storefront-facing stays unauthenticated.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		subject, role, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set("adminID", subject)
		c.Next()
	}
}
