package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submitin/api/internal/models"
	"github.com/submitin/api/internal/notify"
	"github.com/submitin/api/internal/plan"
	"github.com/submitin/api/internal/ratelimit"
)

type fakeFormStore struct {
	form *models.Form
}

func (f *fakeFormStore) FindPublished(_ context.Context, id uuid.UUID) (*models.Form, error) {
	if f.form != nil && f.form.ID == id {
		return f.form, nil
	}
	return nil, nil
}

type fakeResponseStore struct {
	mu      sync.Mutex
	count   int64
	created []*models.Response
}

func (f *fakeResponseStore) Create(_ context.Context, response *models.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	response.ID = uuid.New()
	response.SubmittedAt = time.Now().UTC()
	f.created = append(f.created, response)
	return nil
}

func (f *fakeResponseStore) CountByForm(_ context.Context, _ uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, nil
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeEmail) Enabled() bool { return true }

func (f *fakeEmail) Send(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return f.err
}

type fakeWebhook struct {
	mu       sync.Mutex
	payloads []notify.WebhookPayload
	err      error
}

func (f *fakeWebhook) Send(_ context.Context, _ string, payload notify.WebhookPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return f.err
}

type submissionFixture struct {
	svc       *SubmissionService
	form      *models.Form
	responses *fakeResponseStore
	email     *fakeEmail
	webhook   *fakeWebhook
	disp      *notify.Dispatcher
	required  models.Field
	emailFld  models.Field
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	formID := uuid.New()
	required := models.Field{ID: uuid.New(), FormID: formID, Type: models.FieldTypeText, Label: "Name", Required: true, Order: 0}
	emailFld := models.Field{ID: uuid.New(), FormID: formID, Type: models.FieldTypeEmail, Label: "Email", Order: 1}

	webhookURL := "https://example.com/hook"
	ownerEmail := "owner@example.com"
	form := &models.Form{
		ID:        formID,
		Name:      "Contact",
		Published: true,
		Fields:    []models.Field{required, emailFld},
		Settings: &models.FormSettings{
			FormID:      formID,
			NotifyEmail: &ownerEmail,
			WebhookURL:  &webhookURL,
		},
	}

	responses := &fakeResponseStore{}
	email := &fakeEmail{}
	webhook := &fakeWebhook{}
	disp := notify.NewDispatcher(16)

	svc := NewSubmissionService(
		&fakeFormStore{form: form},
		responses,
		ratelimit.NewMemoryLimiter(),
		disp,
		email,
		webhook,
		"https://submitin.dev",
	)

	return &submissionFixture{
		svc:       svc,
		form:      form,
		responses: responses,
		email:     email,
		webhook:   webhook,
		disp:      disp,
		required:  required,
		emailFld:  emailFld,
	}
}

func (f *submissionFixture) values(name, email string) map[string]string {
	v := map[string]string{}
	if name != "" {
		v[f.required.ID.String()] = name
	}
	if email != "" {
		v[f.emailFld.ID.String()] = email
	}
	return v
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Submit(ctx, f.form.ID, "1.2.3.4", f.values("Ada", "a@b.co"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Len(t, resp.FieldValues, 2)

	f.disp.Close()
	assert.Equal(t, []string{"owner@example.com"}, f.email.sent)
	require.Len(t, f.webhook.payloads, 1)
	assert.Equal(t, f.form.ID.String(), f.webhook.payloads[0].FormID)
	assert.Equal(t, "Contact", f.webhook.payloads[0].FormName)
}

func TestSubmit_RateLimited(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	for i := 0; i < submitMaxRequests; i++ {
		_, err := f.svc.Submit(ctx, f.form.ID, "1.2.3.4", f.values("Ada", ""))
		require.NoError(t, err)
	}

	_, err := f.svc.Submit(ctx, f.form.ID, "1.2.3.4", f.values("Ada", ""))
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Greater(t, rlErr.RetryAfterSeconds(), 0)

	// A different IP is unaffected.
	_, err = f.svc.Submit(ctx, f.form.ID, "5.6.7.8", f.values("Ada", ""))
	assert.NoError(t, err)

	f.disp.Close()
}

func TestSubmit_UnknownFormIs404(t *testing.T) {
	f := newSubmissionFixture(t)
	defer f.disp.Close()

	_, err := f.svc.Submit(context.Background(), uuid.New(), "1.2.3.4", map[string]string{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmit_ResponseCapReached(t *testing.T) {
	f := newSubmissionFixture(t)
	defer f.disp.Close()
	f.responses.count = plan.MaxResponsesPerForm

	_, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", f.values("Ada", ""))
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, CodeLimitReached, capErr.Code)
}

func TestSubmit_MissingValuesObject(t *testing.T) {
	f := newSubmissionFixture(t)
	defer f.disp.Close()

	_, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSubmit_FieldValidation(t *testing.T) {
	t.Run("missing required field names the field", func(t *testing.T) {
		f := newSubmissionFixture(t)
		defer f.disp.Close()

		_, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", f.values("", "a@b.co"))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Name", verr.Field)
	})

	t.Run("empty string for required field is rejected", func(t *testing.T) {
		f := newSubmissionFixture(t)
		defer f.disp.Close()

		values := f.values("   ", "") // sanitizer trims to empty
		_, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", values)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Name", verr.Field)
	})

	t.Run("invalid email value is rejected", func(t *testing.T) {
		f := newSubmissionFixture(t)
		defer f.disp.Close()

		_, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", f.values("Ada", "not-an-email"))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Email", verr.Field)
	})

	t.Run("valid email value is accepted", func(t *testing.T) {
		f := newSubmissionFixture(t)
		defer f.disp.Close()

		_, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", f.values("Ada", "a@b.co"))
		assert.NoError(t, err)
	})
}

func TestSubmit_UnknownKeysAreDropped(t *testing.T) {
	f := newSubmissionFixture(t)
	defer f.disp.Close()

	values := f.values("Ada", "")
	values["not-a-field-id"] = "ignored"

	resp, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", values)
	require.NoError(t, err)
	require.Len(t, resp.FieldValues, 1)
	assert.Equal(t, f.required.ID, resp.FieldValues[0].FieldID)
}

func TestSubmit_ValuesAreSanitized(t *testing.T) {
	f := newSubmissionFixture(t)
	defer f.disp.Close()

	values := f.values("<script>alert(1)</script>Ada", "")
	resp, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", values)
	require.NoError(t, err)
	require.Len(t, resp.FieldValues, 1)
	assert.Equal(t, "alert(1)Ada", resp.FieldValues[0].Value)
}

func TestSubmit_SideEffectFailuresDoNotAffectOutcome(t *testing.T) {
	f := newSubmissionFixture(t)
	f.email.err = errors.New("smtp down")
	f.webhook.err = errors.New("connection refused")

	resp, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", f.values("Ada", ""))
	require.NoError(t, err)
	assert.NotNil(t, resp)

	f.disp.Close()
	// Both side effects were attempted and failed; the submission stands.
	assert.Len(t, f.email.sent, 1)
	assert.Len(t, f.webhook.payloads, 1)
	assert.Len(t, f.responses.created, 1)
}

func TestSubmit_CapRaceIsNotAtomic(t *testing.T) {
	// Documents the read-then-act cap check: two concurrent submissions at
	// cap-1 may both land. This asserts current behavior, not correctness.
	f := newSubmissionFixture(t)
	f.responses.count = plan.MaxResponsesPerForm - 1

	var wg sync.WaitGroup
	results := make([]error, 2)
	ips := []string{"1.1.1.1", "2.2.2.2"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Submit(context.Background(), f.form.ID, ips[i], f.values("Ada", ""))
		}(i)
	}
	wg.Wait()
	f.disp.Close()

	// Neither call observed the other's insert; both were admitted.
	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
	assert.Len(t, f.responses.created, 2)
}

func TestSubmit_LongValueRejected(t *testing.T) {
	f := newSubmissionFixture(t)
	defer f.disp.Close()

	// The sanitizer truncates to the cap, so the pipeline accepts it at
	// exactly the limit.
	values := f.values(strings.Repeat("a", plan.MaxFieldValueLength+100), "")
	resp, err := f.svc.Submit(context.Background(), f.form.ID, "1.2.3.4", values)
	require.NoError(t, err)
	assert.Len(t, resp.FieldValues[0].Value, plan.MaxFieldValueLength)
}
