package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submitin/api/internal/models"
)

func TestPublicFormOmitsOwnerOnlySettings(t *testing.T) {
	notifyEmail := "owner@example.com"
	webhookURL := "https://hooks.example.com/secret-token-abc"
	siteKey := "0x4AAA-site-key"
	secretKey := "0x4AAA-secret-key"
	provider := models.CaptchaTurnstile

	form := &models.Form{
		ID:        uuid.New(),
		Name:      "Contact",
		Slug:      "contact",
		Published: true,
		Fields: []models.Field{
			{ID: uuid.New(), Type: models.FieldTypeText, Label: "Name", Required: true},
		},
		Settings: &models.FormSettings{
			NotifyEmail:      &notifyEmail,
			NotifyEmails:     models.StringList{"second@example.com"},
			WebhookURL:       &webhookURL,
			CaptchaEnabled:   true,
			CaptchaProvider:  &provider,
			CaptchaSiteKey:   &siteKey,
			CaptchaSecretKey: &secretKey,
			HideBranding:     true,
			BorderRadius:     "md",
		},
	}

	data, err := json.Marshal(newPublicForm(form))
	require.NoError(t, err)
	body := string(data)

	assert.NotContains(t, body, "owner@example.com")
	assert.NotContains(t, body, "second@example.com")
	assert.NotContains(t, body, "secret-token-abc")
	assert.NotContains(t, body, secretKey)

	// Render-relevant settings survive the projection.
	assert.Contains(t, body, siteKey)
	assert.Contains(t, body, `"captchaProvider":"turnstile"`)
	assert.Contains(t, body, `"borderRadius":"md"`)
	assert.Contains(t, body, `"hideBranding":true`)
}

func TestPublicFormDefaultsWithoutSettings(t *testing.T) {
	pf := newPublicForm(&models.Form{ID: uuid.New(), Name: "Bare", Slug: "bare", Published: true})

	assert.True(t, pf.Settings.AllowMultipleResponses)
	assert.Equal(t, "lg", pf.Settings.BorderRadius)
	assert.False(t, pf.Settings.CaptchaEnabled)
	assert.Nil(t, pf.Settings.CustomTheme)
	assert.NotNil(t, pf.Fields)
}
