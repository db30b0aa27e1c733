package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trekline/gotours/internal/config"
	"github.com/trekline/gotours/internal/pkg/apperror"
	"github.com/trekline/gotours/internal/pkg/response"
	"github.com/trekline/gotours/internal/pkg/token"
)

const currentUserKey = "currentUser"

// UserLoader re-fetches the token's user; satisfied by *Repository and
// stubbed in tests.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*User, error)
}

// Protect is the route guard: it extracts the bearer token (Authorization
// header, cookie fallback), verifies it, re-fetches the user and rejects
// tokens issued before the user's last password change.
func Protect(users UserLoader, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, apperror.Unauthorized("You are not logged in! Please log in to get access"))
			return
		}

		claims, err := token.Verify(tokenString, cfg.JWTSecret)
		if err != nil {
			response.Error(c, apperror.Wrap(401, "Invalid token. Please log in again", err))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error(c, err)
			return
		}
		if user == nil {
			response.Error(c, apperror.Unauthorized("The user belonging to this token does no longer exist"))
			return
		}

		if user.ChangedPasswordAfter(claims.IssuedAt.Time) {
			response.Error(c, apperror.Unauthorized("User recently changed password! Please log in again"))
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RestrictTo allows only the given roles past; must run after Protect.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Error(c, apperror.Unauthorized("You are not logged in! Please log in to get access"))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.Forbidden("You do not have permission to perform this action"))
	}
}

// CurrentUser returns the authenticated identity set by Protect, or nil.
func CurrentUser(c *gin.Context) *User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*User); ok {
			return user
		}
	}
	return nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if fields := strings.Fields(header); len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	if cookie, err := c.Cookie("jwt"); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
