package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/storage"
)

type FieldRepository struct {
	db *storage.Postgres
}

func NewFieldRepository(db *storage.Postgres) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) Create(ctx context.Context, field *models.Field) error {
	return r.db.DB.WithContext(ctx).Create(field).Error
}

func (r *FieldRepository) FindByIDAndForm(ctx context.Context, id, formID uuid.UUID) (*models.Field, error) {
	var field models.Field
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND form_id = ?", id, formID).
		First(&field).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &field, err
}

func (r *FieldRepository) ListByForm(ctx context.Context, formID uuid.UUID) ([]models.Field, error) {
	var fields []models.Field
	err := r.db.DB.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("field_order ASC").
		Find(&fields).Error

	return fields, err
}

func (r *FieldRepository) CountByForm(ctx context.Context, formID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Field{}).
		Where("form_id = ?", formID).
		Count(&count).Error

	return count, err
}

func (r *FieldRepository) MaxOrder(ctx context.Context, formID uuid.UUID) (int, error) {
	var max *int
	err := r.db.DB.WithContext(ctx).
		Model(&models.Field{}).
		Where("form_id = ?", formID).
		Select("MAX(field_order)").
		Scan(&max).Error

	if err != nil || max == nil {
		return -1, err
	}

	return *max, nil
}

func (r *FieldRepository) Update(ctx context.Context, field *models.Field) error {
	return r.db.DB.WithContext(ctx).Save(field).Error
}

func (r *FieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Field{}).Error
}

// Reorder applies a batch of order updates atomically; either every field
// moves or none do.
func (r *FieldRepository) Reorder(ctx context.Context, formID uuid.UUID, orders map[uuid.UUID]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for fieldID, order := range orders {
			res := tx.WithContext(ctx).
				Model(&models.Field{}).
				Where("id = ? AND form_id = ?", fieldID, formID).
				Update("field_order", order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
