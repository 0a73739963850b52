package service

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/repository"
	"github.com/submitin/api/internal/sanitize"
)

// SettingsInput is the settings payload as requested by the owner. Every
// recognized option is enumerated explicitly; unknown keys never survive
// JSON binding.
type SettingsInput struct {
	NotifyEmail            *string       `json:"notifyEmail"`
	NotifyEmails           []string      `json:"notifyEmails"`
	WebhookURL             *string       `json:"webhookUrl"`
	AllowMultipleResponses *bool         `json:"allowMultipleResponses"`
	CaptchaEnabled         bool          `json:"captchaEnabled"`
	CaptchaProvider        *string       `json:"captchaProvider"`
	CaptchaSiteKey         *string       `json:"captchaSiteKey"`
	CaptchaSecretKey       *string       `json:"captchaSecretKey"`
	HideBranding           bool          `json:"hideBranding"`
	CustomTheme            *models.Theme `json:"customTheme"`
	BorderRadius           string        `json:"borderRadius"`
}

// ProFeatureWarning is returned alongside a 200 when pro-only settings were
// requested on a non-pro plan and silently dropped.
const ProFeatureWarning = "captcha, custom theme and branding removal require the Pro plan and were not saved"

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ReconcileSettings enforces plan gating on a requested settings payload.
// Always-allowed fields pass through; pro-only fields are forced off for
// non-pro tiers regardless of what was requested. The returned warning is
// empty when nothing was dropped.
func ReconcileSettings(input SettingsInput, tier plan.Tier) (SettingsInput, string) {
	if plan.IsPro(tier) {
		return input, ""
	}

	requestedPro := input.CaptchaEnabled ||
		input.CaptchaProvider != nil ||
		input.CaptchaSiteKey != nil ||
		input.CaptchaSecretKey != nil ||
		input.HideBranding ||
		input.CustomTheme != nil

	input.CaptchaEnabled = false
	input.CaptchaProvider = nil
	input.CaptchaSiteKey = nil
	input.CaptchaSecretKey = nil
	input.HideBranding = false
	input.CustomTheme = nil

	if requestedPro {
		return input, ProFeatureWarning
	}
	return input, ""
}

type SettingsService struct {
	forms    *repository.FormRepository
	users    *repository.UserRepository
	settings *repository.SettingsRepository
}

func NewSettingsService(forms *repository.FormRepository, users *repository.UserRepository, settings *repository.SettingsRepository) *SettingsService {
	return &SettingsService{forms: forms, users: users, settings: settings}
}

// Update validates, reconciles against the owner's plan and upserts the 1:1
// settings record. The write succeeds even when pro-only fields are dropped;
// the warning travels back to the client as a non-fatal note.
func (s *SettingsService) Update(ctx context.Context, formID, userID uuid.UUID, input SettingsInput) (*models.FormSettings, string, error) {
	form, err := s.forms.FindByIDAndUser(ctx, formID, userID)
	if err != nil {
		return nil, "", err
	}
	if form == nil {
		return nil, "", ErrNotFound
	}

	if err := validateSettingsInput(&input); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrNotFound
	}

	reconciled, warning := ReconcileSettings(input, plan.Tier(user.Plan))

	settings := &models.FormSettings{
		FormID:                 formID,
		NotifyEmail:            reconciled.NotifyEmail,
		NotifyEmails:           reconciled.NotifyEmails,
		WebhookURL:             reconciled.WebhookURL,
		AllowMultipleResponses: true,
		CaptchaEnabled:         reconciled.CaptchaEnabled,
		CaptchaProvider:        reconciled.CaptchaProvider,
		CaptchaSiteKey:         reconciled.CaptchaSiteKey,
		CaptchaSecretKey:       reconciled.CaptchaSecretKey,
		HideBranding:           reconciled.HideBranding,
		CustomTheme:            models.ThemeColumn{Theme: reconciled.CustomTheme},
		BorderRadius:           reconciled.BorderRadius,
	}
	if reconciled.AllowMultipleResponses != nil {
		settings.AllowMultipleResponses = *reconciled.AllowMultipleResponses
	}
	if settings.BorderRadius == "" {
		settings.BorderRadius = "lg"
	}

	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, "", err
	}

	return settings, warning, nil
}

// validateSettingsInput normalizes and validates the always-allowed fields
// plus the shape of pro fields. Empty strings collapse to nil.
func validateSettingsInput(input *SettingsInput) error {
	input.NotifyEmail = normalizeOptional(input.NotifyEmail)
	input.WebhookURL = normalizeOptional(input.WebhookURL)
	input.CaptchaProvider = normalizeOptional(input.CaptchaProvider)
	input.CaptchaSiteKey = normalizeOptional(input.CaptchaSiteKey)
	input.CaptchaSecretKey = normalizeOptional(input.CaptchaSecretKey)

	if input.NotifyEmail != nil && !sanitize.ValidEmail(*input.NotifyEmail) {
		return validationErr("notifyEmail", "invalid email address")
	}
	if len(input.NotifyEmails) > plan.MaxNotifyEmails {
		return validationErr("notifyEmails", "at most 10 notification emails")
	}
	for _, email := range input.NotifyEmails {
		if !sanitize.ValidEmail(email) {
			return validationErr("notifyEmails", "invalid email address: "+email)
		}
	}
	if input.WebhookURL != nil && !sanitize.ValidURL(*input.WebhookURL) {
		return validationErr("webhookUrl", "webhook must be an http or https URL")
	}
	if input.CaptchaProvider != nil {
		p := *input.CaptchaProvider
		if p != models.CaptchaTurnstile && p != models.CaptchaHCaptcha {
			return validationErr("captchaProvider", "unknown captcha provider")
		}
	}
	if input.BorderRadius != "" && !models.ValidBorderRadius(input.BorderRadius) {
		return validationErr("borderRadius", "unknown border radius")
	}
	if input.CustomTheme != nil {
		colors := []string{
			input.CustomTheme.PrimaryColor,
			input.CustomTheme.BackgroundColor,
			input.CustomTheme.CardBackground,
			input.CustomTheme.TextColor,
			input.CustomTheme.AccentColor,
		}
		for _, color := range colors {
			if !hexColorPattern.MatchString(color) {
				return validationErr("customTheme", "theme colors must be 6-digit hex values")
			}
		}
	}

	return nil
}

func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
