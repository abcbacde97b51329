// Package httpclient is the HTTP collaborator the data services fetch through.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bassista/go_observe/internal/logger"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id; the backend echoes it and logs it.
const RequestIDHeader = "X-Request-Id"

// Getter issues GET requests. Services depend on this instead of *Client so
// tests can substitute canned responses.
type Getter interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client is the default Getter, backed by net/http.
type Client struct {
	http *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a Client whose requests time out after timeout (0 disables it).
func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{http: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs one GET of url. Network failures and non-2xx answers are
// returned as *TransportError.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	log := logger.WithRequest("http-client", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debugf("GET %s failed: %v", url, err)
		return nil, &TransportError{Method: http.MethodGet, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	log.Debugf("GET %s -> %d (%d bytes) in %v", url, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        statusError(resp.StatusCode),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
