package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/notify"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/ratelimit"
	"github.com/submitin/api/internal/sanitize"
)

// Per-form, per-IP submission rate limit.
const (
	submitMaxRequests = 10
	submitWindow      = time.Minute
)

type publishedFormStore interface {
	FindPublished(ctx context.Context, id uuid.UUID) (*models.Form, error)
}

type responseStore interface {
	Create(ctx context.Context, response *models.Response) error
	CountByForm(ctx context.Context, formID uuid.UUID) (int64, error)
}

type emailSender interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, html string) error
}

type webhookSender interface {
	Send(ctx context.Context, url string, payload notify.WebhookPayload) error
}

// SubmissionService runs the public response pipeline: rate limit, form
// lookup, cap check, sanitize, validate, persist, then best-effort fan-out.
type SubmissionService struct {
	forms      publishedFormStore
	responses  responseStore
	limiter    ratelimit.Limiter
	dispatcher *notify.Dispatcher
	email      emailSender
	webhook    webhookSender
	appURL     string
}

func NewSubmissionService(forms publishedFormStore, responses responseStore, limiter ratelimit.Limiter, dispatcher *notify.Dispatcher, email emailSender, webhook webhookSender, appURL string) *SubmissionService {
	return &SubmissionService{
		forms:      forms,
		responses:  responses,
		limiter:    limiter,
		dispatcher: dispatcher,
		email:      email,
		webhook:    webhook,
		appURL:     appURL,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, formID uuid.UUID, clientIP string, rawValues map[string]string) (*models.Response, error) {
	identifier := fmt.Sprintf("submit:%s:%s", formID, clientIP)
	res, err := s.limiter.Check(ctx, identifier, submitMaxRequests, submitWindow)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !res.Allowed {
		return nil, &RateLimitError{RetryAfter: res.ResetIn}
	}

	form, err := s.forms.FindPublished(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}

	// Read-then-act: two concurrent submissions at cap-1 can both land.
	count, err := s.responses.CountByForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if count >= plan.MaxResponsesPerForm {
		return nil, limitReached("this form has reached its maximum number of responses")
	}

	if rawValues == nil {
		return nil, validationErr("values", "request must contain a values object")
	}

	values := sanitize.FormValues(rawValues)

	if err := validateSubmission(form.Fields, values); err != nil {
		return nil, err
	}

	validFieldIDs := make(map[string]uuid.UUID, len(form.Fields))
	for _, field := range form.Fields {
		validFieldIDs[field.ID.String()] = field.ID
	}

	response := &models.Response{FormID: formID}
	for key, value := range values {
		fieldID, ok := validFieldIDs[key]
		if !ok || value == "" {
			// Unknown and empty keys are silently dropped.
			continue
		}
		response.FieldValues = append(response.FieldValues, models.FieldValue{
			FieldID: fieldID,
			Value:   value,
		})
	}

	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}

	s.fanOut(form, response, values, count+1)

	return response, nil
}

// fanOut queues the post-commit side effects. Nothing here can change the
// outcome already owed to the submitter.
func (s *SubmissionService) fanOut(form *models.Form, response *models.Response, values map[string]string, responseCount int64) {
	if form.Settings == nil {
		return
	}

	if s.email != nil && s.email.Enabled() {
		for _, recipient := range notifyRecipients(form.Settings) {
			to := recipient
			subject := fmt.Sprintf("New response on %s", form.Name)
			body := responseEmailBody(s.appURL, form, responseCount)
			s.dispatcher.Enqueue("email:"+to, func(ctx context.Context) error {
				return s.email.Send(ctx, to, subject, body)
			})
		}
	}

	if s.webhook != nil && form.Settings.WebhookURL != nil {
		url := *form.Settings.WebhookURL
		payload := notify.WebhookPayload{
			FormID:      form.ID.String(),
			FormName:    form.Name,
			ResponseID:  response.ID.String(),
			SubmittedAt: response.SubmittedAt,
			Values:      values,
		}
		s.dispatcher.Enqueue("webhook:"+form.ID.String(), func(ctx context.Context) error {
			return s.webhook.Send(ctx, url, payload)
		})
	}
}

// notifyRecipients merges the single and multi recipient settings without
// duplicates, capped at the plan limit.
func notifyRecipients(settings *models.FormSettings) []string {
	seen := make(map[string]bool)
	var recipients []string

	add := func(email string) {
		if email == "" || seen[email] || len(recipients) >= plan.MaxNotifyEmails {
			return
		}
		seen[email] = true
		recipients = append(recipients, email)
	}

	if settings.NotifyEmail != nil {
		add(*settings.NotifyEmail)
	}
	for _, email := range settings.NotifyEmails {
		add(email)
	}

	return recipients
}

func responseEmailBody(appURL string, form *models.Form, responseCount int64) string {
	return fmt.Sprintf(
		"<p>Your form <strong>%s</strong> just received a new response (%d total).</p><p><a href=%q>View responses</a></p>",
		html.EscapeString(form.Name),
		responseCount,
		fmt.Sprintf("%s/dashboard/forms/%s/responses", appURL, form.ID),
	)
}

// validateSubmission walks the form's fields in display order and fails on
// the first violation.
func validateSubmission(fields []models.Field, values map[string]string) error {
	for _, field := range fields {
		value := values[field.ID.String()]

		if field.Required && value == "" {
			return validationErr(field.Label, fmt.Sprintf("field %q is required", field.Label))
		}
		if len(value) > plan.MaxFieldValueLength {
			return validationErr(field.Label, fmt.Sprintf("field %q exceeds the maximum length", field.Label))
		}
		if field.Type == models.FieldTypeEmail && value != "" && !sanitize.ValidEmail(value) {
			return validationErr(field.Label, fmt.Sprintf("field %q must be a valid email", field.Label))
		}
	}
	return nil
}
