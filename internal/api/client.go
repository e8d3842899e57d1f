// Package api is the typed call surface for the pixelhive backend. The
// Client normalizes every outcome into a Result so callers never deal with
// raw transport errors, and the facades in auth.go and posts.go map one
// method to one REST operation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is used when no environment override is present.
const DefaultBaseURL = "http://localhost:3000/api/v1"

const contentTypeJSON = "application/json"

// Result is the uniform outcome of one backend call.
//
// Transport failures (connection errors, unreadable or malformed bodies)
// yield Success=false with Status 500 and a human-readable Error. A completed
// HTTP response yields Success=(2xx) with the decoded body in Data. A non-2xx
// response is not a transport error: its body usually carries the server's
// own message and is preserved for the caller to surface.
type Result[T any] struct {
	Success bool
	Status  int
	Data    T
	Error   string
}

// Envelope is the common response shape: {success, message?, ...fields}.
// Signup responses use status:"success" instead of the boolean, so OK
// accepts either.
type Envelope struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the backend marked the operation successful.
func (e Envelope) OK() bool {
	return e.Success || e.Status == "success"
}

// ErrorMessage returns the server-supplied message, or fallback when the
// body carried none.
func (e Envelope) ErrorMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// Client issues requests against the backend with session cookies attached.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client. The jar carries the session cookie; passing
// nil leaves the client cookieless (requests still work, they are just
// anonymous). No client-side timeout is enforced, the transport's own
// behavior governs hang cases.
func NewClient(baseURL string, jar http.CookieJar, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		logger:  logger,
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON sends a request with an optional JSON-encoded payload and decodes
// the response into T.
func doJSON[T any](ctx context.Context, c *Client, method, path string, payload any) Result[T] {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return transportFailure[T]("failed to encode request: " + err.Error())
		}
		body = bytes.NewReader(encoded)
		contentType = contentTypeJSON
	}
	return execute[T](ctx, c, method, path, body, contentType)
}

// doMultipart sends a multipart form body. The content type comes from the
// multipart writer (it includes the boundary); the JSON content type must
// never be attached here or the boundary would be corrupted.
func doMultipart[T any](ctx context.Context, c *Client, method, path string, body io.Reader, contentType string) Result[T] {
	return execute[T](ctx, c, method, path, body, contentType)
}

func execute[T any](ctx context.Context, c *Client, method, path string, body io.Reader, contentType string) Result[T] {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return transportFailure[T]("failed to build request: " + err.Error())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "request_id", reqID, "method", method, "path", path, "error", err)
		return transportFailure[T](err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("response read failed", "request_id", reqID, "method", method, "path", path, "error", err)
		return transportFailure[T]("failed to read response: " + err.Error())
	}

	var data T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			c.logger.Warn("response decode failed", "request_id", reqID, "method", method, "path", path, "status", resp.StatusCode, "error", err)
			return transportFailure[T]("malformed response body")
		}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	c.logger.Debug("request completed", "request_id", reqID, "method", method, "path", path, "status", resp.StatusCode)

	return Result[T]{Success: ok, Status: resp.StatusCode, Data: data}
}

func transportFailure[T any](message string) Result[T] {
	return Result[T]{Success: false, Status: http.StatusInternalServerError, Error: message}
}
