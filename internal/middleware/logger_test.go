package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestLoggerIncludesUserForAuthenticatedRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	userID := uuid.New()
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/api/forms", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/forms", nil))

	line := buf.String()
	assert.Contains(t, line, "GET /api/forms")
	assert.Contains(t, line, "200")
	assert.Contains(t, line, "user="+userID.String())
}

func TestLoggerAnonymousRequestsHaveNoUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLog(t)

	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), "user=-")
}
