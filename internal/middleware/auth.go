package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// RequireAuth guards protected routes. It expects a Bearer token,
// verifies it, and resolves the subject to a stored user before the
// handler runs. A token whose subject no longer exists is rejected the
// same way as an invalid one.
func RequireAuth(db *gorm.DB, tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "Not authorized, no token",
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token_format",
				"message": "Authorization header must use Bearer token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Not authorized, token failed",
			})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "unknown_subject",
					"message": "Not authorized, token failed",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "store_error",
				"message": "failed to resolve user",
			})
			return
		}
		user.Password = ""

		c.Set(ContextUserKey, &user)
		c.Set(ContextUserIDKey, user.ID.String())

		c.Next()
	}
}

// CurrentUser returns the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
