package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/submitin/api/internal/circuitbreaker"
)

// WebhookPayload is the JSON body posted to a form's configured webhook after
// a successful submission. No signature, no retry.
type WebhookPayload struct {
	FormID      string            `json:"formId"`
	FormName    string            `json:"formName"`
	ResponseID  string            `json:"responseId"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Values      map[string]string `json:"values"`
}

// WebhookClient posts submissions to subscriber endpoints. Endpoints that
// keep failing are skipped for a cooldown period via a per-URL breaker.
type WebhookClient struct {
	client   *http.Client
	breakers *circuitbreaker.Registry
}

func NewWebhookClient() *WebhookClient {
	return &WebhookClient{
		client:   &http.Client{Timeout: 5 * time.Second},
		breakers: circuitbreaker.NewRegistry(circuitbreaker.Config{}),
	}
}

func (c *WebhookClient) Send(ctx context.Context, url string, payload WebhookPayload) error {
	return c.breakers.For(url).Call(func() error {
		return c.post(ctx, url, payload)
	})
}

func (c *WebhookClient) post(ctx context.Context, url string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
