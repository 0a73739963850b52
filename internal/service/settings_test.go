package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/plan"
)

func strPtr(s string) *string { return &s }

func proSettingsRequest() SettingsInput {
	return SettingsInput{
		NotifyEmail:      strPtr("owner@example.com"),
		WebhookURL:       strPtr("https://example.com/hook"),
		CaptchaEnabled:   true,
		CaptchaProvider:  strPtr(models.CaptchaTurnstile),
		CaptchaSiteKey:   strPtr("site-key"),
		CaptchaSecretKey: strPtr("secret-key"),
		HideBranding:     true,
		CustomTheme: &models.Theme{
			PrimaryColor:    "#112233",
			BackgroundColor: "#ffffff",
			CardBackground:  "#fafafa",
			TextColor:       "#000000",
			AccentColor:     "#ff0000",
		},
	}
}

func TestReconcileSettings(t *testing.T) {
	t.Run("free tier drops pro fields and warns", func(t *testing.T) {
		got, warning := ReconcileSettings(proSettingsRequest(), plan.TierFree)

		assert.False(t, got.CaptchaEnabled)
		assert.Nil(t, got.CaptchaProvider)
		assert.Nil(t, got.CaptchaSiteKey)
		assert.Nil(t, got.CaptchaSecretKey)
		assert.False(t, got.HideBranding)
		assert.Nil(t, got.CustomTheme)
		assert.NotEmpty(t, warning)

		// Always-allowed fields survive the downgrade.
		require.NotNil(t, got.NotifyEmail)
		assert.Equal(t, "owner@example.com", *got.NotifyEmail)
		require.NotNil(t, got.WebhookURL)
		assert.Equal(t, "https://example.com/hook", *got.WebhookURL)
	})

	t.Run("pro tier keeps everything with no warning", func(t *testing.T) {
		got, warning := ReconcileSettings(proSettingsRequest(), plan.TierPro)

		assert.True(t, got.CaptchaEnabled)
		assert.True(t, got.HideBranding)
		assert.NotNil(t, got.CustomTheme)
		assert.Empty(t, warning)
	})

	t.Run("free tier without pro fields produces no warning", func(t *testing.T) {
		input := SettingsInput{
			NotifyEmail: strPtr("owner@example.com"),
			WebhookURL:  strPtr("https://example.com/hook"),
		}
		got, warning := ReconcileSettings(input, plan.TierFree)
		assert.Empty(t, warning)
		assert.NotNil(t, got.NotifyEmail)
	})
}

func TestValidateSettingsInput(t *testing.T) {
	t.Run("empty strings collapse to nil", func(t *testing.T) {
		input := SettingsInput{
			NotifyEmail: strPtr(""),
			WebhookURL:  strPtr(""),
		}
		require.NoError(t, validateSettingsInput(&input))
		assert.Nil(t, input.NotifyEmail)
		assert.Nil(t, input.WebhookURL)
	})

	t.Run("invalid notify email", func(t *testing.T) {
		input := SettingsInput{NotifyEmail: strPtr("not-an-email")}
		err := validateSettingsInput(&input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "notifyEmail", verr.Field)
	})

	t.Run("too many notify emails", func(t *testing.T) {
		emails := make([]string, 11)
		for i := range emails {
			emails[i] = "a@b.co"
		}
		input := SettingsInput{NotifyEmails: emails}
		assert.Error(t, validateSettingsInput(&input))
	})

	t.Run("webhook must be http or https", func(t *testing.T) {
		input := SettingsInput{WebhookURL: strPtr("ftp://example.com")}
		assert.Error(t, validateSettingsInput(&input))
	})

	t.Run("unknown captcha provider", func(t *testing.T) {
		input := SettingsInput{CaptchaProvider: strPtr("recaptcha")}
		assert.Error(t, validateSettingsInput(&input))
	})

	t.Run("theme colors must be hex", func(t *testing.T) {
		input := SettingsInput{CustomTheme: &models.Theme{
			PrimaryColor:    "blue",
			BackgroundColor: "#ffffff",
			CardBackground:  "#ffffff",
			TextColor:       "#000000",
			AccentColor:     "#ff0000",
		}}
		assert.Error(t, validateSettingsInput(&input))
	})

	t.Run("unknown border radius", func(t *testing.T) {
		input := SettingsInput{BorderRadius: "huge"}
		assert.Error(t, validateSettingsInput(&input))
	})

	t.Run("valid full payload", func(t *testing.T) {
		input := proSettingsRequest()
		input.BorderRadius = "xl"
		input.NotifyEmails = []string{"a@b.co", "c@d.co"}
		assert.NoError(t, validateSettingsInput(&input))
	})
}
