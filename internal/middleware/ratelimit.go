package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/submitin/api/internal/ratelimit"
)

// RateLimit bounds requests per client IP for one action, e.g. login
// attempts. The submission pipeline carries its own per-form check.
func RateLimit(limiter ratelimit.Limiter, action string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := fmt.Sprintf("%s:%s", action, c.ClientIP())

		res, err := limiter.Check(c.Request.Context(), identifier, maxRequests, window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Rate limit check failed",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))

		if !res.Allowed {
			retryAfter := int(res.ResetIn.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please wait a moment.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
