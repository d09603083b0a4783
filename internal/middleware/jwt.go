package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/policy-pulse/backend/internal/auth"
	"github.com/policy-pulse/backend/pkg/response"
)

// JWT returns a middleware that validates the bearer token and sets admin
// claims in context under the auth package's context keys.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(auth.ContextUserID, claims.UserID)
		c.Set(auth.ContextUserRole, claims.Role)
		c.Set(auth.ContextUsername, claims.Username)
		c.Next()
	}
}
