package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is used when no backend origin is configured.
	DefaultBaseURL = "http://localhost:8000"

	// requestTimeout bounds each backend call.
	requestTimeout = 10 * time.Second
)

// TokenSource provides the bearer token for outbound requests. The token is
// read at call time, never captured, so a replaced token is honored on the
// next request. Invalidate is called when the backend rejects the token.
type TokenSource interface {
	AccessToken() string
	Invalidate()
}

// Client implements service.Service against the Todo HTTP API. Every
// authenticated request carries "Authorization: Bearer <token>"; any 401
// response clears the token and fires the unauthorized hook.
type Client struct {
	base   *url.URL
	httpc  *http.Client
	tokens TokenSource

	// onUnauthorized is invoked after a 401 has torn the token down. The
	// interactive UI uses it to navigate back to the login screen.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	c := &Client{
		base:   u,
		httpc:  &http.Client{},
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// OnUnauthorized registers the hook fired after a 401 clears the token.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Register creates an account and returns the token plus identity.
func (c *Client) Register(ctx context.Context, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, credentials{email, password}, &resp)
	return resp, err
}

// Login authenticates and returns the token plus identity.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, credentials{email, password}, &resp)
	return resp, err
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// CurrentUser fetches the identity behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &u)
	return u, err
}

// FetchTasks issues the list or search call for the query's active mode.
func (c *Client) FetchTasks(ctx context.Context, q Query) (TaskList, error) {
	var resp TaskList
	err := c.do(ctx, http.MethodGet, q.Path(), q.Values(), nil, &resp)
	return resp, err
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var t Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, nil, &t)
	return t, err
}

// CreateTask creates a task and returns the authoritative record.
func (c *Client) CreateTask(ctx context.Context, data TaskCreate) (Task, error) {
	var t Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", nil, data, &t)
	return t, err
}

// UpdateTask replaces a task's fields and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id string, data TaskUpdate) (Task, error) {
	var t Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), nil, data, &t)
	return t, err
}

// PatchTask partially updates a task and returns the updated record.
func (c *Client) PatchTask(ctx context.Context, id string, data TaskUpdate) (Task, error) {
	var t Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), nil, data, &t)
	return t, err
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil, nil)
}

// ToggleComplete flips a task between pending and completed.
func (c *Client) ToggleComplete(ctx context.Context, id string) (Task, error) {
	var t Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/complete", nil, nil, &t)
	return t, err
}

// ListNotifications fetches notifications, optionally unread only.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) (NotificationList, error) {
	v := url.Values{}
	v.Set("unread_only", strconv.FormatBool(unreadOnly))
	var resp NotificationList
	err := c.do(ctx, http.MethodGet, "/api/notifications", v, nil, &resp)
	return resp, err
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/"+url.PathEscape(id)+"/mark_read", nil, nil, nil)
}

// ChatHistory fetches the stored conversation. limit <= 0 means no limit.
func (c *Client) ChatHistory(ctx context.Context, limit int) (ChatHistory, error) {
	var v url.Values
	if limit > 0 {
		v = url.Values{}
		v.Set("limit", strconv.Itoa(limit))
	}
	var resp ChatHistory
	err := c.do(ctx, http.MethodGet, "/api/chat/history", v, nil, &resp)
	return resp, err
}

// ClearChatHistory deletes the stored conversation.
func (c *Client) ClearChatHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/history", nil, nil, nil)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// do performs one backend call: encodes body, attaches the bearer token when
// present, maps non-2xx responses to *Error, and decodes into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := *c.base
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("request timed out")
		}
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		apiErr := parseError(resp.StatusCode, data)
		if apiErr.Detail == "" {
			apiErr.Detail = "not authenticated"
		}
		return apiErr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
