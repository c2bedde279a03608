package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

// BrevoClient sends transactional mail through the Brevo API.
type BrevoClient struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	configured bool
}

// NewBrevoClient returns a client. Missing credentials leave it unconfigured
// so local environments can run without an API key.
func NewBrevoClient(apiKey, fromEmail, fromName string) *BrevoClient {
	c := &BrevoClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	if apiKey != "" && fromEmail != "" {
		c.apiKey = apiKey
		c.fromEmail = fromEmail
		c.fromName = fromName
		c.configured = true
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "brevo",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

// IsConfigured reports whether credentials were supplied at startup.
func (c *BrevoClient) IsConfigured() bool {
	return c.configured
}

type sendEmailReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HtmlContent string              `json:"htmlContent"`
}

// Send delivers one message. Transient failures are retried with exponential
// backoff; sustained failure trips the breaker so callers fail fast.
func (c *BrevoClient) Send(ctx context.Context, toEmail, subject, html string) error {
	if !c.configured {
		return fmt.Errorf("brevo client not configured, email to %s skipped", toEmail)
	}
	if toEmail == "" || subject == "" || html == "" {
		return errors.New("toEmail, subject, and html content cannot be empty")
	}

	body, err := json.Marshal(sendEmailReq{
		Sender:      map[string]string{"email": c.fromEmail, "name": c.fromName},
		To:          []map[string]string{{"email": toEmail}},
		Subject:     subject,
		HtmlContent: html,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email request body: %w", err)
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		operation := func() error {
			return c.post(ctx, body)
		}
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = 20 * time.Second
		return nil, backoff.Retry(operation, backoff.WithContext(b, ctx))
	})
	return err
}

func (c *BrevoClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPIURL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("brevo send email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("brevo API error: status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		var errBody map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		// client errors will not succeed on retry
		return backoff.Permanent(fmt.Errorf("brevo API error: status %d, body: %v", resp.StatusCode, errBody))
	}
	return nil
}
