// Package api implements the typed HTTP client for the remote task/auth
// service. It owns the wire encoding only; state lives in the session and
// task stores.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskManager/internal/logger"
	"taskManager/internal/models/task"
)

// TokenSource yields the current bearer credential, or "" when none is
// stored. Requests without a credential are still sent; the remote service
// is the authority on rejecting them.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// User returns the identity part of the auth response.
func (r AuthResponse) User() task.User {
	return task.User{ID: r.ID, Name: r.Name, Email: r.Email}
}

type deleteResponse struct {
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, data RegisterData) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", data, &resp)
	return resp, err
}

func (c *Client) Login(ctx context.Context, data LoginData) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", data, &resp)
	return resp, err
}

func (c *Client) CurrentUser(ctx context.Context) (task.User, error) {
	var user task.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}

func (c *Client) Tasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks)
	return tasks, err
}

func (c *Client) Task(ctx context.Context, id string) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &t)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, draft task.Draft) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodPost, "/tasks", draft, &t)
	return t, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+id, patch, &t)
	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	var resp deleteResponse
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, &resp)
}

// do sends one request and decodes the response into out. Non-2xx responses
// become a structured *Error; anything that prevents getting a decodable
// response at all becomes the synthetic status-500 transport error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, &payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("api: request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Message: "Something went wrong", Status: resp.StatusCode}
		var decoded struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Message != "" {
			apiErr.Message = decoded.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportError(err)
	}
	return nil
}
