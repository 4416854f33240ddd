// Package api is the single choke point for all QueryDesk network I/O.
// Every call attaches the current bearer token and a JSON content type, and
// every failure is normalized into one display-ready error value. The gateway
// performs exactly one round trip per call: no retries, no caching, and no
// mutation of client state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"querydesk/internal/logger"
	"querydesk/pkg/querytypes"
)

// genericNetworkMessage is used when a failure produced no parseable detail.
const genericNetworkMessage = "Network error"

// defaultTimeout bounds a single round trip at the transport level.
const defaultTimeout = 30 * time.Second

// TokenSource provides the current bearer token, if any. The credential
// store satisfies it.
type TokenSource interface {
	Token() (string, bool)
}

// Error is the single error type the gateway produces. Message is always
// safe to show to the user; the HTTP status code is not otherwise exposed.
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// errorPayload is the backend's structured error body.
type errorPayload struct {
	Detail string `json:"detail"`
}

// Client is the typed API gateway. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *log.Logger
}

// New creates a gateway for the given backend base URL. The token source is
// consulted on every request so credential changes take effect immediately.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		log:        logger.NewStyledLogger("Gateway"),
	}
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*querytypes.HealthStatus, error) {
	var status querytypes.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do performs one round trip: marshal body, attach headers, execute, and
// decode the response into out (when non-nil). Failures of any shape come
// back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.log.Error("Failed to marshal request body", "method", method, "path", path, "error", err)
			return &Error{Message: genericNetworkMessage}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		c.log.Error("Failed to create request", "method", method, "path", path, "error", err)
		return &Error{Message: genericNetworkMessage}
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Request failed", "method", method, "path", path, "error", err)
		return &Error{Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	logger.APIRequest(method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.normalizeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("Failed to decode response body", "method", method, "path", path, "error", err)
		return &Error{Message: genericNetworkMessage}
	}
	return nil
}

// normalizeError turns a non-2xx response into the gateway's single error
// shape: the payload's detail when parseable, an HTTP-status-derived message
// when the detail is absent, and a generic network error otherwise.
func (c *Client) normalizeError(resp *http.Response) error {
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &Error{Message: genericNetworkMessage}
	}
	if payload.Detail == "" {
		return &Error{Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return &Error{Message: payload.Detail}
}
