package scraper

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobradar/jobradar/internal/logger"
)

const (
	defaultTimeout = 30 * time.Second
	maxAttempts    = 3
	retryBackoff   = 500 * time.Millisecond
	userAgent      = "jobradar/1.0 (+https://github.com/jobradar/jobradar)"
	maxBodyBytes   = 10 << 20 // 10 MiB cap on upstream responses
)

// Client is the HTTP client shared by all adapters. It retries transient
// upstream failures (429 and 5xx) with a linear backoff so a flaky source
// does not immediately mark its pairs as failed.
type Client struct {
	http *http.Client
}

// NewClient creates a client with the given per-request timeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryBackoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json, application/xml, text/xml")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request to %s failed: %w", url, err)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
			logger.Debugf("retrying %s after status %d (attempt %d/%d)", url, resp.StatusCode, attempt, maxAttempts)
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
		case readErr != nil:
			lastErr = fmt.Errorf("failed to read response from %s: %w", url, readErr)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

// GetJSON fetches url and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// GetXML fetches url and decodes the XML response into out
func (c *Client) GetXML(ctx context.Context, url string, out interface{}) error {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}
