package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/repository"
)

const (
	maxFieldLabelLength       = 100
	maxFieldPlaceholderLength = 100
)

// FieldInput is the payload for creating or updating a field.
type FieldInput struct {
	Type        string   `json:"type" binding:"required"`
	Label       string   `json:"label" binding:"required"`
	Placeholder string   `json:"placeholder"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
}

// FieldOrder is one entry of a bulk reorder request.
type FieldOrder struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Order int       `json:"order"`
}

type FieldService struct {
	forms  *repository.FormRepository
	fields *repository.FieldRepository
}

func NewFieldService(forms *repository.FormRepository, fields *repository.FieldRepository) *FieldService {
	return &FieldService{forms: forms, fields: fields}
}

func (s *FieldService) Create(ctx context.Context, formID, userID uuid.UUID, input FieldInput) (*models.Field, error) {
	form, err := s.forms.FindByIDAndUser(ctx, formID, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	count, err := s.fields.CountByForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if count >= plan.MaxFieldsPerForm {
		return nil, limitReached(fmt.Sprintf("field limit reached: at most %d fields per form", plan.MaxFieldsPerForm))
	}

	options, err := validateFieldInput(&input)
	if err != nil {
		return nil, err
	}

	maxOrder, err := s.fields.MaxOrder(ctx, formID)
	if err != nil {
		return nil, err
	}

	field := &models.Field{
		FormID:      formID,
		Type:        input.Type,
		Label:       input.Label,
		Placeholder: input.Placeholder,
		Required:    input.Required,
		Order:       maxOrder + 1,
		Options:     options,
	}

	if err := s.fields.Create(ctx, field); err != nil {
		return nil, err
	}

	return field, nil
}

func (s *FieldService) Update(ctx context.Context, formID, fieldID, userID uuid.UUID, input FieldInput) (*models.Field, error) {
	form, err := s.forms.FindByIDAndUser(ctx, formID, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	field, err := s.fields.FindByIDAndForm(ctx, fieldID, formID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, ErrNotFound
	}

	options, err := validateFieldInput(&input)
	if err != nil {
		return nil, err
	}

	field.Type = input.Type
	field.Label = input.Label
	field.Placeholder = input.Placeholder
	field.Required = input.Required
	field.Options = options

	if err := s.fields.Update(ctx, field); err != nil {
		return nil, err
	}

	return field, nil
}

func (s *FieldService) Delete(ctx context.Context, formID, fieldID, userID uuid.UUID) error {
	form, err := s.forms.FindByIDAndUser(ctx, formID, userID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrNotFound
	}

	field, err := s.fields.FindByIDAndForm(ctx, fieldID, formID)
	if err != nil {
		return err
	}
	if field == nil {
		return ErrNotFound
	}

	return s.fields.Delete(ctx, fieldID)
}

// Reorder applies a bulk order update; the repository runs it in one
// transaction so a partial reorder never lands.
func (s *FieldService) Reorder(ctx context.Context, formID, userID uuid.UUID, orders []FieldOrder) ([]models.Field, error) {
	form, err := s.forms.FindByIDAndUser(ctx, formID, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	if len(orders) == 0 {
		return nil, validationErr("fields", "no fields to reorder")
	}

	byID := make(map[uuid.UUID]int, len(orders))
	for _, o := range orders {
		byID[o.ID] = o.Order
	}

	if err := s.fields.Reorder(ctx, formID, byID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A field id outside this form rolls the whole batch back.
			return nil, validationErr("fields", "unknown field in reorder request")
		}
		return nil, err
	}

	return s.fields.ListByForm(ctx, formID)
}

// validateFieldInput checks the shared create/update constraints and returns
// the cleaned option list. Select fields need at least one non-blank option.
func validateFieldInput(input *FieldInput) (models.StringList, error) {
	if !models.ValidFieldType(input.Type) {
		return nil, validationErr("type", "unknown field type")
	}
	if input.Label == "" || len(input.Label) > maxFieldLabelLength {
		return nil, validationErr("label", "label is required and must be at most 100 characters")
	}
	if len(input.Placeholder) > maxFieldPlaceholderLength {
		return nil, validationErr("placeholder", "placeholder must be at most 100 characters")
	}

	var options models.StringList
	for _, opt := range input.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			options = append(options, trimmed)
		}
	}

	if input.Type == models.FieldTypeSelect && len(options) == 0 {
		return nil, validationErr("options", "select fields need at least one option")
	}

	return options, nil
}
