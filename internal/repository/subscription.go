package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/storage"
)

type SubscriptionRepository struct {
	db *storage.Postgres
}

func NewSubscriptionRepository(db *storage.Postgres) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &sub, err
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	existing, err := r.FindByUser(ctx, sub.UserID)
	if err != nil {
		return err
	}

	if existing == nil {
		return r.db.DB.WithContext(ctx).Create(sub).Error
	}

	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt
	return r.db.DB.WithContext(ctx).Save(sub).Error
}
