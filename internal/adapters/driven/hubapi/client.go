// Package hubapi provides the HTTP client for the Globus JupyterLab server extension.
package hubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/ports/driven"
	"github.com/custodia-labs/hublogin/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.HubAPI = (*Client)(nil)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Default request throttle: the panel sends at most one request per user action.
const (
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 2
)

// Client issues requests against a Jupyter server hosting the extension.
type Client struct {
	baseURL    string
	token      string
	xsrfToken  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the Jupyter server token sent as "Authorization: token <t>".
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithXSRFToken sets the value of the X-XSRFToken header.
func WithXSRFToken(token string) Option {
	return func(c *Client) {
		c.xsrfToken = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit throttles outgoing requests. A nil limiter disables throttling.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q: %w", baseURL, ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL: baseURL,
		// No client timeout: requests are bounded by the caller's context only.
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NormalizeURL joins path to the server base URL with exactly one slash between them.
func (c *Client) NormalizeURL(path string) string {
	return joinURL(c.baseURL, path)
}

// Request calls endpoint under the extension namespace.
// Non-2xx responses are returned as *domain.CallbackError.
func (c *Client) Request(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	target := c.NormalizeURL(joinURL(domain.ExtensionNamespace, endpoint))
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	if c.xsrfToken != "" {
		req.Header.Set("X-XSRFToken", c.xsrfToken)
	}

	logger.Debug("GET %s/%s (request %s)", domain.ExtensionNamespace, endpoint, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Debug("request %s rejected with status %d", requestID, resp.StatusCode)
		return nil, domain.NewCallbackError(resp.StatusCode, statusText(resp), errorDetails(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// statusText returns the reason phrase the server sent, falling back to the
// standard text for the code.
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}

// errorDetails extracts human readable text from a JSON error body.
func errorDetails(body []byte) string {
	var errResp struct {
		Details string `json:"details"`
		Message string `json:"message"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	switch {
	case errResp.Details != "":
		return errResp.Details
	case errResp.Message != "":
		return errResp.Message
	default:
		return errResp.Reason
	}
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
