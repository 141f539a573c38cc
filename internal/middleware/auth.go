package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/constants"
	apierrors "github.com/yukikurage/collab-projects-api/internal/errors"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// RequireAuth checks if the user is authenticated via session or Bearer access token
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth records the user when credentials are present and lets anonymous requests through
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := authenticate(c); ok {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context) (uint64, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return 0, false
		}
		claims, err := utils.ParseToken(strings.TrimSpace(token), utils.TokenTypeAccess)
		if err != nil {
			return 0, false
		}
		return claims.UserID, true
	}

	session := sessions.Default(c)
	return toUserID(session.Get(constants.ContextKeyUserID))
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

func toUserID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
