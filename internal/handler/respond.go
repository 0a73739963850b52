package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/submitin/api/internal/service"
)

// respondError maps service errors onto the HTTP surface. Unknown errors
// become a generic 500; details stay in the log.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var rlErr *service.RateLimitError
	var capErr *service.CapacityError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})

	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})

	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})

	case errors.As(err, &rlErr):
		c.Header("Retry-After", fmt.Sprintf("%d", rlErr.RetryAfterSeconds()))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please wait a moment."})

	case errors.As(err, &capErr):
		c.JSON(http.StatusForbidden, gin.H{"error": capErr.Message, "code": capErr.Code})

	default:
		requestID := c.GetString("request_id")
		log.Printf("[%s] unexpected error: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
	}
}
