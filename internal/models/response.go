package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Response struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FormID      uuid.UUID `gorm:"type:uuid;index;not null" json:"form_id"`
	SubmittedAt time.Time `gorm:"index" json:"submitted_at"`

	FieldValues []FieldValue `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"field_values,omitempty"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now().UTC()
	}
	return nil
}

func (Response) TableName() string {
	return "responses"
}

type FieldValue struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ResponseID uuid.UUID `gorm:"type:uuid;index;not null" json:"response_id"`
	FieldID    uuid.UUID `gorm:"type:uuid;index;not null" json:"field_id"`
	Value      string    `json:"value"`
}

func (v *FieldValue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (FieldValue) TableName() string {
	return "field_values"
}
