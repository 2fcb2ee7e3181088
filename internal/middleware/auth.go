package middleware

import (
	"net/http"
	"strings"

	"utsavdarshan/config"
	"utsavdarshan/internal/auth"

	"github.com/gin-gonic/gin"
)

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}

// AuthRequired validates JWT and sets UserID, Email, Role in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "unauthorized", "invalid authorization format")
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole checks that the authenticated user has one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.GetString("role")
		if r == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		for _, a := range allowed {
			if r == a {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "forbidden", "forbidden")
	}
}

// GetUserID returns the authenticated user ID from context (must be used after AuthRequired).
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
