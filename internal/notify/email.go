package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// EmailClient sends transactional mail through the Resend HTTP API.
type EmailClient struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

func NewEmailClient(apiKey, from string) *EmailClient {
	return &EmailClient{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the provider is configured. When false, callers
// skip notification attempts entirely.
func (c *EmailClient) Enabled() bool {
	return c.apiKey != "" && c.from != ""
}

func (c *EmailClient) Send(ctx context.Context, to, subject, html string) error {
	if !c.Enabled() {
		return nil
	}

	body, _ := json.Marshal(map[string]interface{}{
		"from":    c.from,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}
