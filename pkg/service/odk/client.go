// Package odk is a client for the ODK Central REST and OData APIs
package odk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/sony/gobreaker"
)

const (
	// DefaultPageSize is the number of submissions requested per OData page
	DefaultPageSize = 500

	maxErrorBody = 512
)

// Client talks to one project of an ODK Central server. It authenticates with
// a session token obtained from the account's email and password.
type Client struct {
	baseURL    *url.URL
	projectID  int
	email      string
	password   string
	httpClient *http.Client
	pageSize   int
	breaker    *gobreaker.CircuitBreaker

	mu    sync.Mutex
	token string
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithPageSize sets the OData page size. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(client *Client) {
		if n > 0 {
			client.pageSize = n
		}
	}
}

// WithToken uses an existing session or app-user token instead of logging in
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// New creates a client for the project on the server at baseURL
func New(baseURL string, projectID int, email, password string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid ODK Central URL",
			goerr.T(model.ErrTagConfig),
			goerr.V("url", baseURL))
	}
	if projectID <= 0 {
		return nil, goerr.New("invalid ODK Central project ID",
			goerr.T(model.ErrTagConfig),
			goerr.V("project_id", projectID))
	}

	c := &Client{
		baseURL:    u,
		projectID:  projectID,
		email:      email,
		password:   password,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.token == "" && (c.email == "" || c.password == "") {
		return nil, goerr.New("ODK Central credentials are required", goerr.T(model.ErrTagConfig))
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "odk-central",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Default().Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c, nil
}

// ProjectID returns the project the client is bound to
func (c *Client) ProjectID() int {
	return c.projectID
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
}

// get performs an authenticated GET on path below the API root. A 401 on a
// cached session token triggers one fresh login.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodGet, path, query, nil, token)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusUnauthorized && c.email != "" {
		c.resetToken(token)
		if token, err = c.sessionToken(ctx); err != nil {
			return nil, err
		}
		if resp, err = c.send(ctx, http.MethodGet, path, query, nil, token); err != nil {
			return nil, err
		}
	}

	if resp.status != http.StatusOK {
		return nil, statusError(resp, http.MethodGet, path)
	}
	return resp.body, nil
}

// send executes one request through the circuit breaker. Server errors and
// network failures count against the breaker; other statuses are returned to
// the caller.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, token string) (*response, error) {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = encodeQuery(query)
	}

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal request body", goerr.V("path", path))
		}
		payload = raw
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), bytes.NewReader(payload))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create request")
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, goerr.Wrap(err, "request failed")
		}
		defer safeClose(ctx, httpResp.Body)

		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read response body")
		}

		resp := &response{status: httpResp.StatusCode, body: data}
		if resp.status >= http.StatusInternalServerError {
			return resp, statusError(resp, method, path)
		}
		return resp, nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "ODK Central request failed",
			goerr.T(model.ErrTagTransport),
			goerr.V("method", method),
			goerr.V("path", path))
	}

	return result.(*response), nil
}

// sessionToken returns the cached token, logging in when there is none
func (c *Client) sessionToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	credentials := map[string]string{"email": c.email, "password": c.password}
	resp, err := c.send(ctx, http.MethodPost, "/v1/sessions", nil, credentials, "")
	if err != nil {
		return "", err
	}
	if resp.status != http.StatusOK {
		return "", statusError(resp, http.MethodPost, "/v1/sessions")
	}

	var session struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	if err := json.Unmarshal(resp.body, &session); err != nil {
		return "", goerr.Wrap(err, "failed to decode session", goerr.T(model.ErrTagTransport))
	}
	if session.Token == "" {
		return "", goerr.New("ODK Central returned an empty session token", goerr.T(model.ErrTagTransport))
	}

	ctxlog.From(ctx).Debug("ODK Central session created", "expires_at", session.ExpiresAt)
	c.token = session.Token
	return c.token, nil
}

func (c *Client) resetToken(stale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == stale {
		c.token = ""
	}
}

func statusError(resp *response, method, path string) error {
	body := resp.body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return goerr.New("unexpected ODK Central response",
		goerr.T(model.ErrTagTransport),
		goerr.V("method", method),
		goerr.V("path", path),
		goerr.V("status", resp.status),
		goerr.V("body", string(body)))
}

// encodeQuery keeps OData system options such as $top readable
func encodeQuery(q url.Values) string {
	return strings.ReplaceAll(q.Encode(), "%24", "$")
}

func safeClose(ctx context.Context, c io.Closer) {
	if err := c.Close(); err != nil {
		ctxlog.From(ctx).Warn("failed to close response body", "error", err)
	}
}
