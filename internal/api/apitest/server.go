// Package apitest runs an in-process double of the remote task/auth service
// so client, session and store tests can exercise the real wire path.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"taskManager/internal/models/task"
)

type userRecord struct {
	task.User
	password string
}

type Server struct {
	mu     sync.Mutex
	users  map[string]userRecord // keyed by email
	tokens map[string]task.User  // token -> identity
	tasks  map[string]task.Task
	ids    []string // newest first

	failStatus  int
	failMessage string

	requests      int
	lastRequestID string

	srv *httptest.Server
}

func New() *Server {
	s := &Server{
		users:  make(map[string]userRecord),
		tokens: make(map[string]task.User),
		tasks:  make(map[string]task.Task),
	}

	r := chi.NewRouter()
	r.Use(s.observe)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Get("/auth/me", s.handleMe)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.handleListTasks)
		r.Post("/", s.handleCreateTask)
		r.Get("/{id}", s.handleGetTask)
		r.Put("/{id}", s.handleUpdateTask)
		r.Delete("/{id}", s.handleDeleteTask)
	})

	s.srv = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string { return s.srv.URL }
func (s *Server) Close()      { s.srv.Close() }

// FailNext makes the next request fail with the given status and message,
// regardless of route.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// Requests returns how many requests the server has seen.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// LastRequestID returns the X-Request-ID header of the most recent request.
func (s *Server) LastRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequestID
}

// SeedUser registers an account directly and returns a valid token for it.
func (s *Server) SeedUser(name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := task.User{ID: uuid.New().String(), Name: name, Email: email}
	s.users[email] = userRecord{User: u, password: password}

	token := uuid.New().String()
	s.tokens[token] = u
	return token
}

// SeedTask stores a task owned by the holder of token and returns it.
func (s *Server) SeedTask(token string, draft task.Draft) task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.tokens[token]
	t := s.newTask(owner.ID, draft)
	return t
}

// newTask inserts newest-first; the caller must hold the lock.
func (s *Server) newTask(ownerID string, draft task.Draft) task.Task {
	now := time.Now().UTC()
	t := task.Task{
		ID:          uuid.New().String(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Status:      draft.Status,
		DueDate:     draft.DueDate,
		Owner:       ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[t.ID] = t
	s.ids = append([]string{t.ID}, s.ids...)
	return t
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.lastRequestID = r.Header.Get("X-Request-ID")
		failStatus, failMessage := s.failStatus, s.failMessage
		s.failStatus, s.failMessage = 0, ""
		s.mu.Unlock()

		if failStatus != 0 {
			respondError(w, failStatus, failMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(r *http.Request) (task.User, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return task.User{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.tokens[token]
	return u, ok
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please add all fields")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		respondError(w, http.StatusBadRequest, "User already exists")
		return
	}

	u := task.User{ID: uuid.New().String(), Name: req.Name, Email: req.Email}
	s.users[req.Email] = userRecord{User: u, password: req.Password}

	token := uuid.New().String()
	s.tokens[token] = u

	respondJSON(w, http.StatusCreated, authResponse(u, token))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[req.Email]
	if !ok || rec.password != req.Password {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token := uuid.New().String()
	s.tokens[token] = rec.User

	respondJSON(w, http.StatusOK, authResponse(rec.User, token))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		if t := s.tasks[id]; t.Owner == u.ID {
			owned = append(owned, t)
		}
	}
	respondJSON(w, http.StatusOK, owned)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var draft task.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.Title == "" {
		respondError(w, http.StatusBadRequest, "Please add a title")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusCreated, s.newTask(u.ID, draft))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[chi.URLParam(r, "id")]
	if !ok || t.Owner != u.ID {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var patch task.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[chi.URLParam(r, "id")]
	if !ok || t.Owner != u.ID {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	t.UpdatedAt = time.Now().UTC()
	s.tasks[t.ID] = t

	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	t, ok := s.tasks[id]
	if !ok || t.Owner != u.ID {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	delete(s.tasks, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Task removed"})
}

func authResponse(u task.User, token string) map[string]string {
	return map[string]string{
		"_id":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"token": token,
	}
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]any{"message": message, "status": code})
}
