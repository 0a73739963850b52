package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request. When RequireAuth ran earlier in the
// chain the authenticated user id is included, which is what ties a log line
// to a tenant when debugging form or submission issues.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		size := c.Writer.Size()
		requestID := c.GetString("request_id")

		user := "-"
		if id, ok := UserID(c); ok {
			user = id.String()
		}

		log.Printf("[%s] %s %s - %d - %v - %dB - %s - user=%s",
			requestID,
			method,
			path,
			statusCode,
			latency,
			size,
			c.ClientIP(),
			user,
		)
	}
}
