package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Field types accepted on a form.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
)

var FieldTypes = []string{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeSelect,
	FieldTypeCheckbox,
}

func ValidFieldType(t string) bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

type Field struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FormID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"form_id"`
	Type        string     `gorm:"not null" json:"type"`
	Label       string     `gorm:"not null" json:"label"`
	Placeholder string     `json:"placeholder"`
	Required    bool       `gorm:"default:false" json:"required"`
	Order       int        `gorm:"column:field_order;not null" json:"order"`
	Options     StringList `gorm:"type:jsonb" json:"options,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (Field) TableName() string {
	return "fields"
}
