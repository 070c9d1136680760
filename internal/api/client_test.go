package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskManager/internal/api"
	"taskManager/internal/api/apitest"
	"taskManager/internal/models/task"
)

// staticToken is a TokenSource with a fixed credential.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(srv *apitest.Server, token string) *api.Client {
	return api.NewClient(srv.URL(), 5*time.Second, staticToken(token))
}

func TestClient_RegisterAndLogin(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	ctx := context.Background()

	client := newClient(srv, "")

	reg, err := client.Register(ctx, api.RegisterData{Name: "Alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Alice", reg.Name)

	login, err := client.Login(ctx, api.LoginData{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, login.ID)

	// The identity part of the auth response round-trips via /auth/me.
	authed := newClient(srv, login.Token)
	me, err := authed.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, task.User{ID: reg.ID, Name: "Alice", Email: "alice@example.com"}, me)
}

func TestClient_LoginRejected(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedUser("Alice", "alice@example.com", "secret")

	client := newClient(srv, "")

	_, err := client.Login(context.Background(), api.LoginData{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, apiErr.Transport())
}

func TestClient_Unauthorized(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := newClient(srv, "")

	_, err := client.Tasks(context.Background())
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))
}

func TestClient_TaskCRUD(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	ctx := context.Background()

	token := srv.SeedUser("Alice", "alice@example.com", "secret")
	client := newClient(srv, token)

	created, err := client.CreateTask(ctx, task.NewDraft("Buy milk"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.CreatedAt.IsZero())

	second, err := client.CreateTask(ctx, task.NewDraft("Walk dog"))
	require.NoError(t, err)

	// Listing is newest first.
	tasks, err := client.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, created.ID, tasks[1].ID)

	got, err := client.Task(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := client.UpdateTask(ctx, created.ID, task.NewPatch(task.WithStatus(task.StatusCompleted)))
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)

	require.NoError(t, client.DeleteTask(ctx, created.ID))

	tasks, err = client.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, second.ID, tasks[0].ID)
}

func TestClient_NotFound(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	token := srv.SeedUser("Alice", "alice@example.com", "secret")
	client := newClient(srv, token)

	_, err := client.UpdateTask(context.Background(), "missing", task.NewPatch(task.WithTitle("x")))
	assert.True(t, api.IsStatus(err, http.StatusNotFound))

	err = client.DeleteTask(context.Background(), "missing")
	assert.True(t, api.IsStatus(err, http.StatusNotFound))
}

// A transport-level failure is normalized to the synthetic status-500 error.
func TestClient_TransportFailure(t *testing.T) {
	srv := apitest.New()
	token := srv.SeedUser("Alice", "alice@example.com", "secret")
	srv.Close()

	client := newClient(srv, token)

	_, err := client.Tasks(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "network error occurred", apiErr.Message)
	assert.True(t, apiErr.Transport())
}

// An error body without a message keeps the generic fallback.
func TestClient_ErrorFallbackMessage(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	token := srv.SeedUser("Alice", "alice@example.com", "secret")
	srv.FailNext(http.StatusConflict, "")

	client := newClient(srv, token)
	_, err := client.Tasks(context.Background())

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Something went wrong", apiErr.Message)
}

// Every outbound request carries a request id.
func TestClient_RequestID(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	token := srv.SeedUser("Alice", "alice@example.com", "secret")
	client := newClient(srv, token)

	_, err := client.Tasks(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, srv.LastRequestID())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "boom", api.Message(&api.Error{Message: "boom", Status: 400}, "fallback"))
	assert.Equal(t, "fallback", api.Message(assert.AnError, "fallback"))
}
