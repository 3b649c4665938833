// ABOUTME: HTTP client for the parity API with bounded exponential backoff on 5xx responses
// ABOUTME: 4xx responses, network errors and timeouts are returned to the caller immediately

package httputil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Defaults used when a Client is built without explicit retry options.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// retryState counts the retries made for one logical request. Each retry
// derives a new value; nothing is shared between requests.
type retryState struct {
	attempt int
}

func (s retryState) next() retryState {
	return retryState{attempt: s.attempt + 1}
}

// delay is base × 2^(attempt−1) for attempt ≥ 1.
func (s retryState) delay(base time.Duration) time.Duration {
	if s.attempt < 1 {
		return 0
	}
	return base << (s.attempt - 1)
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Client sends requests to a base URL with default headers and retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	maxRetries int
	baseDelay  time.Duration
	sleep      Sleeper
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets how many times a 5xx response is retried. Zero disables retry.
func WithRetries(n int) Option {
	return func(c *Client) { c.maxRetries = max(0, n) }
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithSleeper overrides how retry delays are waited out.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		headers:    make(map[string]string),
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		sleep:      sleepWithContext,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the base URL configured on this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends method path with body (nil for none). A 5xx response is retried
// up to the retry budget; when the budget is exhausted the last 5xx response
// is returned with a nil error and an open body.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var state retryState
	for {
		req, err := c.buildRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		if !isRetryable(resp.StatusCode) || state.attempt >= c.maxRetries {
			return resp, nil
		}

		resp.Body.Close()
		state = state.next()
		if err := c.sleep(ctx, state.delay(c.baseDelay)); err != nil {
			return nil, fmt.Errorf("retry backoff for %s %s: %w", method, path, err)
		}
	}
}

// buildRequest creates an http.Request with default headers applied.
func (c *Client) buildRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s %s: %w", method, path, err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// isRetryable reports whether a status is a server-side failure.
func isRetryable(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError
}

// sleepWithContext waits for the given duration or until the context is cancelled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
