package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
)

// publicAPIPath is where AKTools exposes each akshare function.
const publicAPIPath = "api/public"

// Client calls an AKTools-compatible HTTP service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient returns a client for the service rooted at baseURL.
// Requests carry no client-side timeout; callers bound them with ctx.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("provider url %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("provider url %q is missing a host", baseURL)
	}
	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Fetch requests function with params as the query string and decodes the
// JSON response.
func (c *Client) Fetch(ctx context.Context, function string, params map[string]string) (dataset.Result, error) {
	if strings.TrimSpace(function) == "" {
		return dataset.Result{}, fmt.Errorf("provider function is required")
	}
	endpoint := c.baseURL.JoinPath(publicAPIPath, function)
	query := url.Values{}
	for name, value := range params {
		query.Set(name, value)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return dataset.Result{}, fmt.Errorf("build request for %s: %w", function, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dataset.Result{}, fmt.Errorf("call %s: %w", function, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dataset.Result{}, fmt.Errorf("read %s response: %w", function, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return dataset.Result{}, &Error{
			Function:   function,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
		}
	}
	result, err := Decode(bytes.NewReader(body))
	if err != nil {
		return dataset.Result{}, fmt.Errorf("decode %s response: %w", function, err)
	}
	return result, nil
}

// errorMessage extracts the failure text from a non-2xx response body.
func errorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if text, ok := payload[key].(string); ok && strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return http.StatusText(status)
}
