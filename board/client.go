package board

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StopPlaceholder is substituted with the stop code in the arrivals URL.
const StopPlaceholder = "{stop}"

// Client fetches the arrival-board page for a stop and runs the extraction
// pipeline over it. Only 2xx responses with a non-empty body reach the
// extractor; anything else is a per-request error and the stop simply shows
// no data.
type Client struct {
	httpClient *http.Client
	urlTmpl    string
}

// NewClient creates a client for an arrivals endpoint. urlTmpl must contain
// the {stop} placeholder.
func NewClient(urlTmpl string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		urlTmpl:    urlTmpl,
	}
}

// Arrivals fetches and extracts the predictions for one stop code, in page
// order. A page that matches no extraction strategy yields an empty list and
// no error.
func (c *Client) Arrivals(ctx context.Context, stopCode string) ([]Prediction, error) {
	url := strings.ReplaceAll(c.urlTmpl, StopPlaceholder, stopCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body from %s", url)
	}
	return ExtractMarkup(string(body)), nil
}
