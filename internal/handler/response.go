package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/submitin/api/internal/middleware"
	"github.com/submitin/api/internal/service"
)

type ResponseHandler struct {
	submissions *service.SubmissionService
	forms       *service.FormService
}

func NewResponseHandler(submissions *service.SubmissionService, forms *service.FormService) *ResponseHandler {
	return &ResponseHandler{submissions: submissions, forms: forms}
}

// Submit accepts a public form submission. No authentication; the form
// must be published and the caller is throttled per IP.
func (h *ResponseHandler) Submit(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	var req struct {
		Values map[string]string `json:"values"`
	}
	// The pipeline throttles first and rejects the payload shape later, so
	// a bind failure is not returned here. A malformed body leaves Values
	// nil and comes back as a 400 after the rate-limit and form checks.
	_ = c.ShouldBindJSON(&req)

	response, err := h.submissions.Submit(c.Request.Context(), id, c.ClientIP(), req.Values)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      response.ID,
	})
}

// List returns the responses for one of the caller's forms.
func (h *ResponseHandler) List(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	responses, err := h.forms.ListResponses(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses": responses,
		"count":     len(responses),
	})
}
