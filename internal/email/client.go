// Package email is the client for the outbound email-send HTTP API.
//
// The provider exposes a single JSON endpoint (POST {base}/mail/send)
// authorized with a bearer token; any non-2xx response or transport error is
// a send failure. Sends are never retried here: the subscription and
// delivery services treat every failure as terminal for the current request.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/newsletter/internal/config"
	"github.com/ignite/newsletter/internal/domain"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it; tests substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends email through the provider's HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	sender     domain.EmailAddress
	httpClient HTTPDoer
}

// NewClient creates an email API client. The sender address appears as the
// From address on every message.
func NewClient(cfg config.EmailConfig, sender domain.EmailAddress) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		sender:     sender,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

// sendPayload is the provider's transmission format: a single recipient per
// call, HTML body only.
type sendPayload struct {
	Personalizations [1]personalization `json:"personalizations"`
	From             address            `json:"from"`
	Subject          string             `json:"subject"`
	Content          [1]content         `json:"content"`
}

type personalization struct {
	To [1]address `json:"to"`
}

type address struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers one message to one recipient. It blocks until the provider
// responds and returns an error on any non-2xx status.
func (c *Client) Send(ctx context.Context, recipient domain.EmailAddress, subject, htmlBody string) error {
	payload := sendPayload{
		Personalizations: [1]personalization{{To: [1]address{{Email: recipient.String()}}}},
		From:             address{Email: c.sender.String()},
		Subject:          subject,
		Content:          [1]content{{Type: "text/html", Value: htmlBody}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling send payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
