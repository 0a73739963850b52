package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/submitin/api/internal/middleware"
	"github.com/submitin/api/internal/service"
)

type FieldHandler struct {
	fields *service.FieldService
}

func NewFieldHandler(fields *service.FieldService) *FieldHandler {
	return &FieldHandler{fields: fields}
}

func (h *FieldHandler) Create(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	var req service.FieldInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	field, err := h.fields.Create(ctx, id, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, field)
}

func (h *FieldHandler) Update(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var req service.FieldInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	field, err := h.fields.Update(ctx, id, fieldID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

func (h *FieldHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	ctx := c.Request.Context()
	if err := h.fields.Delete(ctx, id, fieldID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reorder applies a bulk field order update in one transaction.
func (h *FieldHandler) Reorder(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := formID(c)
	if !ok {
		return
	}

	var req struct {
		Fields []service.FieldOrder `json:"fields" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	fields, err := h.fields.Reorder(ctx, id, userID, req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fields)
}
