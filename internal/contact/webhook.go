package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"finitefield.org/marketing-web/internal/observability"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

// ErrMissingEndpoint is returned when a webhook submitter has no endpoint.
var ErrMissingEndpoint = errors.New("contact: missing webhook endpoint")

// WebhookSubmitter posts submissions as JSON to a form backend. Transport
// errors and 5xx responses are retried; the submission id is sent as the
// idempotency key so the receiver can drop duplicates.
type WebhookSubmitter struct {
	endpoint string
	http     *http.Client
	attempts uint
	delay    time.Duration
}

// WebhookOption configures a WebhookSubmitter.
type WebhookOption func(*WebhookSubmitter)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookSubmitter) {
		if c != nil {
			w.http = c
		}
	}
}

// WithRetry sets the attempt count and the initial backoff delay.
func WithRetry(attempts uint, delay time.Duration) WebhookOption {
	return func(w *WebhookSubmitter) {
		if attempts > 0 {
			w.attempts = attempts
		}
		if delay >= 0 {
			w.delay = delay
		}
	}
}

// NewWebhookSubmitter constructs a submitter for endpoint.
func NewWebhookSubmitter(endpoint string, opts ...WebhookOption) *WebhookSubmitter {
	w := &WebhookSubmitter{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: defaultTimeout},
		attempts: 3,
		delay:    250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit posts sub, retrying with exponential backoff.
func (w *WebhookSubmitter) Submit(ctx context.Context, sub Submission) error {
	if w == nil || w.endpoint == "" {
		return ErrMissingEndpoint
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	logger := observability.FromContext(ctx)
	return retry.Do(
		func() error { return w.post(ctx, sub.ID, payload) },
		retry.Context(ctx),
		retry.Attempts(w.attempts),
		retry.Delay(w.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("retrying contact webhook",
				zap.Uint("attempt", n+1),
				zap.String("submissionID", sub.ID),
				zap.Error(err),
			)
		}),
	)
}

func (w *WebhookSubmitter) post(ctx context.Context, id string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyHeader, id)

	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("contact: webhook status %d: %s", resp.StatusCode, drainError(resp.Body))
	case resp.StatusCode >= 400:
		return retry.Unrecoverable(fmt.Errorf("contact: webhook status %d: %s", resp.StatusCode, drainError(resp.Body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
