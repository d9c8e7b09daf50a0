package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"world-monitor/internal/resilience/retry"
)

// maxResponseBytes bounds how much of an upstream response is read. The
// largest payloads in practice are OpenSky state dumps at a few megabytes.
const maxResponseBytes = 16 << 20

const userAgent = "world-monitor/1.0"

// Client is the shared HTTP plumbing for one integration: a rate limiter so
// the upstream is never hammered, bounded retry for transient failures, and
// status/parse checking so the operation handed to the circuit breaker fails
// on anything unusable.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	retry   retry.Config
}

// NewClient creates a fetch client around hc. Each integration gets its own
// client so one upstream's rate limit never starves another.
func NewClient(hc *http.Client, requestsPerSecond float64, burst int) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		retry:   retry.FeedFetchConfig(),
	}
}

// GetJSON fetches url and decodes the response body into out. Non-2xx
// statuses, network errors, and malformed payloads all return an error; the
// circuit breaker counts each of them as one failure.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.Get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Get fetches url and returns the raw response body, retrying transient
// failures within this single logical fetch.
func (c *Client) Get(ctx context.Context, url, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body []byte
	err := retry.WithBackoff(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &retry.HTTPError{
				StatusCode: resp.StatusCode,
				Message:    url,
			}
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("read %s: %w", url, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
