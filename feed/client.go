package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches raw vehicle position bytes over HTTP. Decoding is left to
// Decode so callers can feed it bytes from anywhere.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a client for the given vehicle positions endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// Fetch issues one GET and returns the response body. Non-2xx responses are
// surfaced as per-request errors; the caller simply shows no data for this
// cycle.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", c.url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.url)
	}
	return io.ReadAll(resp.Body)
}
