// Package fetch is the outbound HTTP layer shared by the upstream API clients.
// Every request is bounded by a timeout and redirects are refused, because the
// API key travels in the query string.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize caps how much of an upstream response is read.
const maxBodySize = 8 << 20

// ErrRedirect is returned when an upstream answers with a redirect.
var ErrRedirect = errors.New("redirect refused")

// KeyProvider supplies the upstream API key at request time.
type KeyProvider interface {
	APIKey() (string, error)
}

// StaticKey is a KeyProvider with a fixed key.
type StaticKey string

func (k StaticKey) APIKey() (string, error) { return string(k), nil }

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client issues bounded requests.
type Client struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a Client whose requests are cancelled after timeout.
func New(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return ErrRedirect
			},
		},
		timeout: timeout,
	}
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do sends a request and reads the whole body before the deadline expires.
// A non-nil body is sent as JSON.
func (c *Client) Do(ctx context.Context, method, url string, body []byte) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}
