// Package schoolapi is the HTTP client for the external school REST API.
// Every feature panel reads and writes through it; all calls are bound to
// the caller's context and the client's request timeout so an abandoned
// request cannot hang a handler or overwrite fresher state.
package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
)

var (
	// ErrUnauthorized is returned when the backend rejects the token; the
	// HTTP layer turns it into a fresh login.
	ErrUnauthorized = errors.New("school api: token rejected")
)

type (
	// Response is the backend's uniform envelope. Data is kept raw and
	// passed through to the browser untouched.
	Response struct {
		Status  string          `json:"status"`
		Message string          `json:"message,omitempty"`
		Data    json.RawMessage `json:"data,omitempty"`
	}

	// APIError is a backend "error" status or a non-2xx response.
	APIError struct {
		StatusCode int
		Message    string
	}

	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	Client struct {
		baseURL string
		hc      *http.Client
		log     core.Logger
	}
)

func (e *APIError) Error() string {
	return fmt.Sprintf("school api: %s (HTTP %d)", e.Message, e.StatusCode)
}

var _ session.BackendClient = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.SchoolAPI.BaseURL, "/"),
		hc:      &http.Client{Timeout: conf.SchoolAPI.Timeout},
		log:     logger,
	}
}

// Login authenticates against the backend. The whole response body is
// returned as received; role inference happens in the session layer.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.LoginPayload, error) {
	var payload session.LoginPayload
	body, err := c.doRaw(ctx, http.MethodPost, "/login", "", nil, creds)
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, errors.Wrap(err, "decoding login response")
	}
	if payload.Status == "error" {
		return payload, &APIError{StatusCode: http.StatusOK, Message: payload.Message}
	}
	return payload, nil
}

// Logout tells the backend to invalidate the token. Callers treat it as
// best-effort; the response body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.doRaw(ctx, http.MethodPost, "/logout", token, nil, map[string]string{"token": token})
	return err
}

// Get/Post/Put/Delete are the generic verbs; the typed methods in
// endpoints.go delegate to them.

func (c *Client) Get(ctx context.Context, token, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, token, query, nil)
}

func (c *Client) Post(ctx context.Context, token, path string, payload interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, token, nil, payload)
}

func (c *Client) Put(ctx context.Context, token, path string, payload interface{}) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, token, nil, payload)
}

func (c *Client) Delete(ctx context.Context, token, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, payload interface{}) (*Response, error) {
	body, err := c.doRaw(ctx, method, path, token, query, payload)
	if err != nil {
		return nil, err
	}

	resp := new(Response)
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	if resp.Status == "error" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp, nil
}

func (c *Client) doRaw(ctx context.Context, method, path, token string, query url.Values, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s request", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "calling %s %s", method, path)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s %s response", method, path)
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case res.StatusCode >= 400:
		msg := http.StatusText(res.StatusCode)
		var envelope Response
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return nil, &APIError{StatusCode: res.StatusCode, Message: msg}
	}
	return body, nil
}
