// Package turso is a minimal client for the Turso Platform API, covering the
// four database operations the fork pipeline needs. Calls are one-shot: no
// retries, no client-side timeout beyond the injected http.Client.
package turso

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production Platform API endpoint.
const DefaultBaseURL = "https://api.turso.tech"

// APIError is a non-2xx response from the Platform API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("turso api: HTTP %d", e.Status)
	}
	return fmt.Sprintf("turso api: %s (HTTP %d)", e.Message, e.Status)
}

// IsNotFound reports whether err means the requested resource does not exist.
// A structured 404 decides first; the legacy text match ("404" / "not found",
// case-insensitive) remains as fallback for errors without a status code.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Status == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}

// Client issues authenticated requests against one organization.
type Client struct {
	baseURL string
	org     string
	token   string
	httpc   *http.Client
}

// Option adjusts a Client, mainly for tests.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// NewClient returns a client for the given organization, authenticated with
// the given platform token.
func NewClient(org, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		org:     org,
		token:   token,
		httpc:   http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetDatabase fetches the descriptor of a database by name.
func (c *Client) GetDatabase(ctx context.Context, name string) (*Database, error) {
	var resp databaseResponse
	if err := c.do(ctx, http.MethodGet, c.databasePath(name), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Database == nil {
		return nil, fmt.Errorf("database missing from response")
	}
	return resp.Database, nil
}

// CreateDatabase creates a database, optionally seeded from another one.
func (c *Client) CreateDatabase(ctx context.Context, req CreateDatabaseRequest) (*Database, error) {
	var resp databaseResponse
	if err := c.do(ctx, http.MethodPost, c.databasePath(""), req, &resp); err != nil {
		return nil, err
	}
	if resp.Database == nil {
		return nil, fmt.Errorf("database missing from response")
	}
	return resp.Database, nil
}

// DeleteDatabase removes a database by name.
func (c *Client) DeleteDatabase(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, c.databasePath(name), nil, nil)
}

// CreateToken mints an access token for a database and returns the JWT.
func (c *Client) CreateToken(ctx context.Context, name string) (string, error) {
	var resp tokenResponse
	path := c.databasePath(name) + "/auth/tokens"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.JWT, nil
}

func (c *Client) databasePath(name string) string {
	p := fmt.Sprintf("/v1/organizations/%s/databases", url.PathEscape(c.org))
	if name != "" {
		p += "/" + url.PathEscape(name)
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var er errorResponse
		if jsonErr := json.Unmarshal(data, &er); jsonErr == nil && er.Error != "" {
			apiErr.Message = er.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
