package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/policy-pulse/backend/internal/auth"
	"github.com/policy-pulse/backend/pkg/response"
)

// RequireRole returns a middleware that allows only the given roles.
// Role failures respond 401 like missing credentials; 403 is reserved for
// survey-window violations.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleVal, ok := c.Get(auth.ContextUserRole)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		role, _ := roleVal.(string)
		if _, ok := allowed[role]; !ok {
			response.Unauthorized(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
