package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/submitin/api/internal/middleware"
	"github.com/submitin/api/internal/service"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
	billingToken  string
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService, billingToken string) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, billingToken: billingToken}
}

// Get returns the caller's plan and subscription state.
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	info, err := h.subscriptions.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// ApplyBillingEvent receives plan changes from the billing collaborator.
// The endpoint is guarded by a shared token, not user auth.
func (h *SubscriptionHandler) ApplyBillingEvent(c *gin.Context) {
	if h.billingToken == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.billingToken)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid billing token"})
		return
	}

	var event service.BillingEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.subscriptions.ApplyEvent(c.Request.Context(), event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
