// Package notifier delivers the one-shot webhook call fired after the
// watched process exits.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds the webhook round trip so a hung endpoint cannot
// block exit forever.
const DefaultTimeout = 10 * time.Second

// Webhook POSTs to a fixed URL with an empty body. The HTTP status code of
// the response is deliberately not inspected: reaching the endpoint is what
// counts, and webhook receivers vary in what they answer.
type Webhook struct {
	url    string
	client *http.Client
}

func New(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the webhook target.
func (w *Webhook) URL() string { return w.url }

// Notify performs a single POST with an empty body and no retries. Any
// transport-level failure is returned wrapped; a completed exchange is
// success regardless of status code.
func (w *Webhook) Notify(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, nil)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	return nil
}
