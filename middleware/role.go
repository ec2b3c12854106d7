package middleware

import (
	"net/http"

	"jenga/models"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts unless the authenticated user holds one of the given
// roles. ADMIN always passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if user.Role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

// RequireProvider guards provider-only endpoints.
func RequireProvider() gin.HandlerFunc {
	return RequireRole(models.RoleProvider)
}

// RequireClient guards client-only endpoints.
func RequireClient() gin.HandlerFunc {
	return RequireRole(models.RoleClient)
}

// RequireAdminOrSelf guards profile endpoints: the :id path parameter must
// match the caller unless the caller is an admin.
func RequireAdminOrSelf() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if user.Role != models.RoleAdmin && user.ID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}
