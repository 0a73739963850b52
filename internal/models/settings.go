package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CAPTCHA providers supported on pro plans.
const (
	CaptchaTurnstile = "turnstile"
	CaptchaHCaptcha  = "hcaptcha"
)

// Border radius presets for the public form card.
var BorderRadiusValues = []string{"none", "sm", "md", "lg", "xl", "full"}

func ValidBorderRadius(v string) bool {
	for _, r := range BorderRadiusValues {
		if v == r {
			return true
		}
	}
	return false
}

// FormSettings is the 1:1 settings record for a form. Pro-only columns are
// only ever written through the settings reconciler, which zeroes them for
// non-pro owners.
type FormSettings struct {
	ID                     uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	FormID                 uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"form_id"`
	NotifyEmail            *string     `json:"notifyEmail"`
	NotifyEmails           StringList  `gorm:"type:jsonb" json:"notifyEmails"`
	WebhookURL             *string     `json:"webhookUrl"`
	AllowMultipleResponses bool        `gorm:"default:true" json:"allowMultipleResponses"`
	CaptchaEnabled         bool        `gorm:"default:false" json:"captchaEnabled"`
	CaptchaProvider        *string     `json:"captchaProvider"`
	CaptchaSiteKey         *string     `json:"captchaSiteKey"`
	CaptchaSecretKey       *string     `json:"-"`
	HideBranding           bool        `gorm:"default:false" json:"hideBranding"`
	CustomTheme            ThemeColumn `gorm:"type:jsonb" json:"customTheme"`
	BorderRadius           string      `gorm:"default:'lg'" json:"borderRadius"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

func (s *FormSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (FormSettings) TableName() string {
	return "form_settings"
}
