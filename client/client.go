// Package client is the Go consumer of the task tracker API. A Client
// holds the current session (identity plus bearer token): login and
// register are the only writers, every protected call reads it, and a
// rejected request clears it so the caller can redirect to login.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/services"
)

var (
	ErrUnauthenticated = errors.New("client: not authenticated")
	ErrNotLoggedIn     = errors.New("client: no active session")
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Session is the authenticated identity held by the client.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	mu      sync.RWMutex
	session *Session
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.store = store }
}

// New builds a client for the given API base URL. Any token persisted
// by the configured TokenStore is picked up so a previous session
// resumes without a fresh login; identity details are refilled on the
// next successful login.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}

	token, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("client: load persisted token: %w", err)
	}
	c.token = token

	return c, nil
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Authenticated reports whether the client holds a token.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.token = s.Token
	c.mu.Unlock()
	c.store.Save(s.Token)
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.token = ""
	c.mu.Unlock()
	c.store.Clear()
}

// Logout discards the session. The token itself stays valid until
// expiry; discarding it is the only client-side invalidation.
func (c *Client) Logout() {
	c.clearSession()
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &session, false)
	if err != nil {
		return nil, err
	}
	c.setSession(&session)
	return c.Session(), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session, false)
	if err != nil {
		return nil, err
	}
	c.setSession(&session)
	return c.Session(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, update services.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/auth/profile", update, nil, true)
}

// DeleteAccount removes the account and all of its tasks, then clears
// the local session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/auth/profile", nil, nil, true); err != nil {
		return err
	}
	c.clearSession()
	return nil
}

func (c *Client) Tasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksDueBetween returns the tasks due inside [from, to). Tasks with
// no due date never appear; fetch the unfiltered list for those.
func (c *Client) TasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks?"+q.Encode(), nil, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksForMonth is the calendar view: tasks due in the given month.
func (c *Client) TasksForMonth(ctx context.Context, year int, month time.Month) ([]models.Task, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return c.TasksDueBetween(ctx, from, from.AddDate(0, 1, 0))
}

func (c *Client) CreateTask(ctx context.Context, input services.TaskInput) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", input, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, update services.TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+taskID, update, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+taskID, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}, protected bool) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if protected {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && protected {
		// The session is stale; surface the failure without retrying.
		c.clearSession()
		return ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if dest != nil {
		return json.NewDecoder(resp.Body).Decode(dest)
	}
	return nil
}
