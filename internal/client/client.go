package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"userseed/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrDecodeResponse is returned when a 200 response body is not valid JSON.
var ErrDecodeResponse = errors.New("decode response")

// Client posts credentials to the authentication endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets a per-request timeout on a copy of the current HTTP
// client. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		cp := *c.httpClient
		cp.Timeout = d
		c.httpClient = &cp
	}
}

// New builds a Client for the given endpoint URL.
func New(endpoint string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint scheme %q", u.Scheme)
	}

	c := &Client{
		endpoint:   trimmed,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register sends one registration request. It reports ok=false when the
// server answered with anything other than 200, or with a 200 body that has
// no string access token. Transport failures and 200 bodies that are not JSON
// at all are errors.
func (c *Client) Register(ctx context.Context, username, password string) (string, bool, error) {
	payload, err := json.Marshal(models.AuthRequest{Username: username, Password: password})
	if err != nil {
		return "", false, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("read response: %w", err)
	}

	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrDecodeResponse, err)
	}
	return accessToken(out)
}

// accessToken pulls a non-empty string access_token out of a decoded body.
// Any other shape is a declined registration, not a fault.
func accessToken(body any) (string, bool, error) {
	fields, ok := body.(map[string]any)
	if !ok {
		return "", false, nil
	}
	token, ok := fields["access_token"].(string)
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}
