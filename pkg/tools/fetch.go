package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

// FetchClient performs plain GET requests for the lookup clients.
type FetchClient struct {
	httpClient  *http.Client
	maxBodySize int64
}

func NewFetchClient(timeout time.Duration) *FetchClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FetchClient{
		httpClient:  &http.Client{Timeout: timeout},
		maxBodySize: 20 * 1024 * 1024,
	}
}

// WithHTTPClient swaps the underlying client (tests point it at httptest servers).
func (c *FetchClient) WithHTTPClient(h *http.Client) *FetchClient {
	c.httpClient = h
	return c
}

// Get fetches rawURL and returns at most maxBodySize bytes of the body.
func (c *FetchClient) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
