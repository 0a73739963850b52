package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/repository"
	"github.com/submitin/api/internal/storage"
)

const (
	maxFormNameLength        = 100
	maxFormDescriptionLength = 500

	publicFormCacheTTL = time.Minute
)

type FormService struct {
	forms     *repository.FormRepository
	fields    *repository.FieldRepository
	responses *repository.ResponseRepository
	redis     *storage.RedisClient
}

func NewFormService(forms *repository.FormRepository, fields *repository.FieldRepository, responses *repository.ResponseRepository, redis *storage.RedisClient) *FormService {
	return &FormService{
		forms:     forms,
		fields:    fields,
		responses: responses,
		redis:     redis,
	}
}

// FormSummary is a dashboard row: the form plus its child counts.
type FormSummary struct {
	models.Form
	FieldCount    int64 `json:"field_count"`
	ResponseCount int64 `json:"response_count"`
}

func (s *FormService) Create(ctx context.Context, userID uuid.UUID, tier plan.Tier, name, description string) (*models.Form, error) {
	if name == "" || len(name) > maxFormNameLength {
		return nil, validationErr("name", "name is required and must be at most 100 characters")
	}
	if len(description) > maxFormDescriptionLength {
		return nil, validationErr("description", "description must be at most 500 characters")
	}

	count, err := s.forms.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !plan.WithinFormCap(tier, int(count)) {
		return nil, limitReached(fmt.Sprintf("form limit reached: at most %d forms per account", plan.LimitsFor(tier).MaxForms))
	}

	form := &models.Form{
		UserID:      userID,
		Name:        name,
		Description: description,
		Slug:        generateSlug(),
	}

	if err := s.forms.Create(ctx, form); err != nil {
		return nil, err
	}

	return form, nil
}

func (s *FormService) List(ctx context.Context, userID uuid.UUID) ([]FormSummary, error) {
	forms, err := s.forms.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]FormSummary, 0, len(forms))
	for _, form := range forms {
		fieldCount, err := s.fields.CountByForm(ctx, form.ID)
		if err != nil {
			return nil, err
		}
		responseCount, err := s.responses.CountByForm(ctx, form.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, FormSummary{
			Form:          form,
			FieldCount:    fieldCount,
			ResponseCount: responseCount,
		})
	}

	return summaries, nil
}

func (s *FormService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Form, error) {
	form, err := s.forms.FindDetailed(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	return form, nil
}

func (s *FormService) Update(ctx context.Context, id, userID uuid.UUID, name, description string, published *bool) (*models.Form, error) {
	form, err := s.forms.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	if name == "" || len(name) > maxFormNameLength {
		return nil, validationErr("name", "name is required and must be at most 100 characters")
	}
	if len(description) > maxFormDescriptionLength {
		return nil, validationErr("description", "description must be at most 500 characters")
	}

	updates := map[string]interface{}{
		"name":        name,
		"description": description,
	}
	if published != nil {
		updates["published"] = *published
	}

	if err := s.forms.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.invalidatePublicCache(ctx, form.Slug)

	return s.forms.FindByIDAndUser(ctx, id, userID)
}

func (s *FormService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	form, err := s.forms.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrNotFound
	}

	if err := s.forms.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePublicCache(ctx, form.Slug)
	return nil
}

// ListResponses returns every response recorded for one of the caller's
// forms, newest first, with field values preloaded.
func (s *FormService) ListResponses(ctx context.Context, id, userID uuid.UUID) ([]models.Response, error) {
	form, err := s.forms.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	return s.responses.ListByForm(ctx, id)
}

// PublicForm is a published form as served to anonymous visitors. Only the
// settings the public renderer needs appear here; notification targets and
// the webhook stay private to the owner.
type PublicForm struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Slug        string             `json:"slug"`
	Fields      []models.Field     `json:"fields"`
	Settings    PublicFormSettings `json:"settings"`
}

type PublicFormSettings struct {
	AllowMultipleResponses bool          `json:"allowMultipleResponses"`
	CaptchaEnabled         bool          `json:"captchaEnabled"`
	CaptchaProvider        *string       `json:"captchaProvider"`
	CaptchaSiteKey         *string       `json:"captchaSiteKey"`
	HideBranding           bool          `json:"hideBranding"`
	CustomTheme            *models.Theme `json:"customTheme"`
	BorderRadius           string        `json:"borderRadius"`
}

func newPublicForm(form *models.Form) *PublicForm {
	pf := &PublicForm{
		ID:          form.ID,
		Name:        form.Name,
		Description: form.Description,
		Slug:        form.Slug,
		Fields:      form.Fields,
		Settings: PublicFormSettings{
			AllowMultipleResponses: true,
			BorderRadius:           "lg",
		},
	}
	if pf.Fields == nil {
		pf.Fields = []models.Field{}
	}

	if s := form.Settings; s != nil {
		pf.Settings = PublicFormSettings{
			AllowMultipleResponses: s.AllowMultipleResponses,
			CaptchaEnabled:         s.CaptchaEnabled,
			CaptchaProvider:        s.CaptchaProvider,
			CaptchaSiteKey:         s.CaptchaSiteKey,
			HideBranding:           s.HideBranding,
			CustomTheme:            s.CustomTheme.Theme,
			BorderRadius:           s.BorderRadius,
		}
		if pf.Settings.BorderRadius == "" {
			pf.Settings.BorderRadius = "lg"
		}
	}

	return pf
}

// PublicBySlug serves the published form definition for public rendering,
// cached briefly in Redis since the public page is the hot path. Both the
// response and the cache hold the public projection, never the raw model.
func (s *FormService) PublicBySlug(ctx context.Context, slug string) (*PublicForm, error) {
	cacheKey := fmt.Sprintf("form:public:%s", slug)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var pf PublicForm
			if err := json.Unmarshal([]byte(cached), &pf); err == nil {
				return &pf, nil
			}
		}
	}

	form, err := s.forms.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	pf := newPublicForm(form)

	if s.redis != nil {
		if formJSON, err := json.Marshal(pf); err == nil {
			s.redis.Set(ctx, cacheKey, formJSON, publicFormCacheTTL)
		}
	}

	return pf, nil
}

func (s *FormService) invalidatePublicCache(ctx context.Context, slug string) {
	if s.redis != nil {
		s.redis.Del(ctx, fmt.Sprintf("form:public:%s", slug))
	}
}

func generateSlug() string {
	b := make([]byte, 6)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
