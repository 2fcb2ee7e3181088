package middleware

import (
	"net/http"

	"utsavdarshan/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user has the admin role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != domain.RoleAdmin {
			abort(c, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		c.Next()
	}
}
