package middleware

import (
	"net/http"
	"strings"

	userRepo "jenga/database/repository/user"
	"jenga/models"
	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// Context key under which the authenticated user is stored.
const ContextUserKey = "authUser"

// JWTAuthMiddleware authenticates Bearer tokens, resolves the account behind
// the token and stores it in the request context as models.AuthUser.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			// A missing signing secret is a server fault, not a client one.
			if utils.KindOf(err) == utils.KindMisconfiguration {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server misconfiguration: JWT_SECRET not set"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}

		uid, _ := claims["sub"].(string)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
			return
		}

		account, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			return
		}

		c.Set(ContextUserKey, models.AuthUser{ID: account.ID, Name: account.Name, Role: account.Role})
		c.Next()
	}
}

// OptionalJWTAuth resolves the acting user when a valid Bearer token is
// present and continues anonymously otherwise. Public endpoints that widen
// their response for an authenticated owner use this instead of the strict
// middleware.
func OptionalJWTAuth(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		claims, err := utils.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Next()
			return
		}
		uid, _ := claims["sub"].(string)
		if uid == "" {
			c.Next()
			return
		}
		account, err := users.GetByID(c.Request.Context(), uid)
		if err != nil || account == nil {
			c.Next()
			return
		}
		c.Set(ContextUserKey, models.AuthUser{ID: account.ID, Name: account.Name, Role: account.Role})
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user set by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) (models.AuthUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return models.AuthUser{}, false
	}
	user, ok := v.(models.AuthUser)
	return user, ok
}
