package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/submitin/api/internal/middleware"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/service"
)

type FormHandler struct {
	forms *service.FormService
	auth  *service.AuthService
}

func NewFormHandler(forms *service.FormService, auth *service.AuthService) *FormHandler {
	return &FormHandler{forms: forms, auth: auth}
}

// formID parses the :id path parameter; a malformed id reads as "not found"
// rather than revealing anything about id formats.
func formID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *FormHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// The tier comes from the database, not the token; a plan change since
	// login must apply immediately.
	user, err := h.auth.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		respondError(c, service.ErrNotFound)
		return
	}

	form, err := h.forms.Create(ctx, userID, plan.Tier(user.Plan), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ctx := c.Request.Context()
	forms, err := h.forms.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) Get(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	form, err := h.forms.Get(ctx, id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) Update(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Published   *bool  `json:"published"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	form, err := h.forms.Update(ctx, id, userID, req.Name, req.Description, req.Published)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.forms.Delete(ctx, id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PublicBySlug serves a published form definition to the public renderer.
func (h *FormHandler) PublicBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx := c.Request.Context()
	form, err := h.forms.PublicBySlug(ctx, slug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}
