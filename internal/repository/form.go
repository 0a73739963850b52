package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/storage"
)

type FormRepository struct {
	db *storage.Postgres
}

func NewFormRepository(db *storage.Postgres) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	return r.db.DB.WithContext(ctx).Create(form).Error
}

// FindByIDAndUser scopes the lookup to the owner. A miss means either the
// form does not exist or belongs to someone else; callers treat both the same.
func (r *FormRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Form, error) {
	var form models.Form
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&form).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &form, err
}

// FindDetailed loads an owned form with fields in display order and settings.
func (r *FormRepository) FindDetailed(ctx context.Context, id, userID uuid.UUID) (*models.Form, error) {
	var form models.Form
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("field_order ASC")
		}).
		Preload("Settings").
		First(&form).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &form, err
}

// FindPublished loads a published form with its fields in display order and
// its settings. Unpublished forms are invisible here.
func (r *FormRepository) FindPublished(ctx context.Context, id uuid.UUID) (*models.Form, error) {
	var form models.Form
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND published = ?", id, true).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("field_order ASC")
		}).
		Preload("Settings").
		First(&form).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &form, err
}

func (r *FormRepository) FindPublishedBySlug(ctx context.Context, slug string) (*models.Form, error) {
	var form models.Form
	err := r.db.DB.WithContext(ctx).
		Where("slug = ? AND published = ?", slug, true).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("field_order ASC")
		}).
		Preload("Settings").
		First(&form).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &form, err
}

func (r *FormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Form, error) {
	var forms []models.Form
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&forms).Error

	return forms, err
}

func (r *FormRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Form{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}

func (r *FormRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.DB.WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *FormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Form{}).Error
}
