// Package api wraps outbound calls to the dompetku REST backend. It attaches
// bearer-token authorization, enforces the request timeout, turns error
// responses into the client's error taxonomy, and clears the stored token
// when the session expires.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 10 * time.Second

// TokenStore supplies the persisted bearer token and clears it when the
// backend reports the session expired.
type TokenStore interface {
	Token() string
	Clear() error
}

// Client talks to the backend REST API.
type Client struct {
	tokens     TokenStore
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the API rooted at baseURL. A zero timeout
// falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL %q: %w", c.baseURL+path, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("API request", "method", method, "path", path, "query", u.RawQuery)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Message: "failed to read response", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Clear(); err != nil {
			slog.Warn("Failed to clear stored token", "error", err)
		}
		return nil, ErrSessionExpired
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractMessage(respBody, fmt.Sprintf("request rejected: %s", resp.Status))
		return nil, &RequestError{Status: resp.StatusCode, Message: msg}
	}

	return respBody, nil
}
