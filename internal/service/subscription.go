package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/repository"
)

// BillingEvent is a plan change already verified by the billing collaborator.
// Signature checking happens upstream; this service only applies the result.
type BillingEvent struct {
	UserID            uuid.UUID  `json:"user_id" binding:"required"`
	Plan              string     `json:"plan" binding:"required"`
	Status            string     `json:"status" binding:"required"`
	CurrentPeriodEnd  *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
}

type SubscriptionService struct {
	users         *repository.UserRepository
	subscriptions *repository.SubscriptionRepository
}

func NewSubscriptionService(users *repository.UserRepository, subscriptions *repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{users: users, subscriptions: subscriptions}
}

// SubscriptionInfo is what the billing page reads.
type SubscriptionInfo struct {
	Plan         string               `json:"plan"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
}

func (s *SubscriptionService) Get(ctx context.Context, userID uuid.UUID) (*SubscriptionInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	sub, err := s.subscriptions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SubscriptionInfo{Plan: user.Plan, Subscription: sub}, nil
}

// ApplyEvent updates the user's tier and the subscription read model.
func (s *SubscriptionService) ApplyEvent(ctx context.Context, event BillingEvent) error {
	if event.Plan != string(plan.TierFree) && event.Plan != string(plan.TierPro) {
		return validationErr("plan", "unknown plan tier")
	}

	user, err := s.users.FindByID(ctx, event.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.users.UpdatePlan(ctx, event.UserID, event.Plan); err != nil {
		return err
	}

	return s.subscriptions.Upsert(ctx, &models.Subscription{
		UserID:            event.UserID,
		Plan:              event.Plan,
		Status:            event.Status,
		CurrentPeriodEnd:  event.CurrentPeriodEnd,
		CancelAtPeriodEnd: event.CancelAtPeriodEnd,
	})
}
