package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/storage"
)

type ResponseRepository struct {
	db *storage.Postgres
}

func NewResponseRepository(db *storage.Postgres) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Create persists a response together with its field values in one
// transaction.
func (r *ResponseRepository) Create(ctx context.Context, response *models.Response) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(response).Error
	})
}

func (r *ResponseRepository) CountByForm(ctx context.Context, formID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Response{}).
		Where("form_id = ?", formID).
		Count(&count).Error

	return count, err
}

func (r *ResponseRepository) ListByForm(ctx context.Context, formID uuid.UUID) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.DB.WithContext(ctx).
		Where("form_id = ?", formID).
		Preload("FieldValues").
		Order("submitted_at DESC").
		Find(&responses).Error

	return responses, err
}
