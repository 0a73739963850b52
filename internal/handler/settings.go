package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/submitin/api/internal/middleware"
	"github.com/submitin/api/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Update replaces the settings for one of the caller's forms. Pro-only
// options requested on a free plan are switched off and reported back
// through a "_warning" key rather than an error status.
func (h *SettingsHandler) Update(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	var input service.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	settings, warning, err := h.settings.Update(c.Request.Context(), id, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"settings": settings}
	if warning != "" {
		body["_warning"] = warning
	}
	c.JSON(http.StatusOK, body)
}
