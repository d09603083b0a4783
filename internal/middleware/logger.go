package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// submitPath is excluded from client-IP logging: submissions are anonymous
// and the address must not be correlatable with a stored response.
const submitPath = "/submit"

// Logger returns a zap-based request logging middleware.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		clientIP := c.ClientIP()
		if path == submitPath {
			clientIP = ""
		}

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("method", method),
			zap.String("path", path),
		}
		if clientIP != "" {
			fields = append(fields, zap.String("client_ip", clientIP))
		}
		logger.Info("request", fields...)
	}
}
