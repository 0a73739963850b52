package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/storage"
)

type SettingsRepository struct {
	db *storage.Postgres
}

func NewSettingsRepository(db *storage.Postgres) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) FindByForm(ctx context.Context, formID uuid.UUID) (*models.FormSettings, error) {
	var settings models.FormSettings
	err := r.db.DB.WithContext(ctx).
		Where("form_id = ?", formID).
		First(&settings).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &settings, err
}

// Upsert writes the 1:1 settings record for a form: first write creates,
// later writes update the same row.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.FormSettings) error {
	existing, err := r.FindByForm(ctx, settings.FormID)
	if err != nil {
		return err
	}

	if existing == nil {
		return r.db.DB.WithContext(ctx).Create(settings).Error
	}

	settings.ID = existing.ID
	return r.db.DB.WithContext(ctx).Save(settings).Error
}
