package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every outbound call so upstream hangs never block a request
const DefaultTimeout = 15 * time.Second

// Client is a thin HTTP client for upstream data providers
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Response carries the status and raw body of an upstream call
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError is returned for non-2xx upstream responses. It keeps the status
// and a body snippet so callers can tell a dead provider from a changed format.
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Snippet)
}

// NewClient creates a client for the given base URL. An optional timeout
// overrides the default.
func NewClient(baseURL string, timeout ...time.Duration) *Client {
	t := DefaultTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		t = timeout[0]
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: t},
	}
}

// Get performs a GET request and returns the response regardless of status
func (c *Client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// GetJSON performs a GET request and decodes a 2xx JSON body into out.
// Non-2xx responses return a StatusError.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, headers map[string]string, out interface{}) error {
	resp, err := c.Get(ctx, path, query, headers)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Snippet: Snippet(resp.Body)}
	}
	return json.Unmarshal(resp.Body, out)
}

// Snippet truncates an upstream body for diagnostics
func Snippet(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max]
	}
	return s
}
