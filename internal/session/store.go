// Package session owns the client-local authentication state: a small state
// machine fed by the remote auth endpoints, with the credential pair
// persisted across runs.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"taskManager/internal/api"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/notify"
)

type State string

const (
	StateUnknown         State = "unknown"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// AuthAPI is the slice of the remote client the session store depends on.
type AuthAPI interface {
	Register(ctx context.Context, data api.RegisterData) (api.AuthResponse, error)
	Login(ctx context.Context, data api.LoginData) (api.AuthResponse, error)
	CurrentUser(ctx context.Context) (task.User, error)
}

// Observer is invoked synchronously after every state transition. Observers
// must not call back into the store.
type Observer func(State)

// Store holds the session exclusively. All operations serialize behind one
// mutex, held across the remote call, so overlapping intents cannot
// interleave.
type Store struct {
	mu        sync.Mutex
	api       AuthAPI
	creds     *Credentials
	notifier  notify.Notifier
	state     State
	user      task.User
	observers []Observer
}

func NewStore(authAPI AuthAPI, creds *Credentials, notifier notify.Notifier) *Store {
	return &Store{
		api:      authAPI,
		creds:    creds,
		notifier: notifier,
		state:    StateUnknown,
	}
}

// Subscribe registers an observer for state transitions.
func (s *Store) Subscribe(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Current returns the state and identity without blocking or touching the
// network.
func (s *Store) Current() (State, task.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.user
}

// setState must be called with the lock held.
func (s *Store) setState(state State, user task.User) {
	s.state = state
	s.user = user
	for _, obs := range s.observers {
		obs(state)
	}
}

// Restore resolves the startup state: with no persisted credential it settles
// on unauthenticated without a remote call; otherwise the credential is
// validated against /auth/me and cleared if the service rejects it.
func (s *Store) Restore(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds.Token() == "" {
		s.setState(StateUnauthenticated, task.User{})
		return s.state
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		logger.Warn("session: stored credential rejected", zap.Error(err))
		s.creds.Clear()
		s.setState(StateUnauthenticated, task.User{})
		return s.state
	}

	s.setState(StateAuthenticated, user)
	return s.state
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setState(StateAuthenticating, task.User{})

	resp, err := s.api.Login(ctx, api.LoginData{Email: email, Password: password})
	if err != nil {
		s.setState(StateUnauthenticated, task.User{})
		s.notifier.Error(api.Message(err, "Login failed. Please try again."))
		return err
	}

	return s.finishAuth(resp, "Welcome back! Login successful.")
}

func (s *Store) Register(ctx context.Context, name, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setState(StateAuthenticating, task.User{})

	resp, err := s.api.Register(ctx, api.RegisterData{Name: name, Email: email, Password: password})
	if err != nil {
		s.setState(StateUnauthenticated, task.User{})
		s.notifier.Error(api.Message(err, "Registration failed. Please try again."))
		return err
	}

	return s.finishAuth(resp, "Account created successfully! Welcome!")
}

// finishAuth persists the credential pair and completes the transition; the
// caller holds the lock.
func (s *Store) finishAuth(resp api.AuthResponse, successMsg string) error {
	user := resp.User()
	if err := s.creds.Store(resp.Token, user); err != nil {
		logger.Error("session: persisting credentials failed", err)
		s.setState(StateUnauthenticated, task.User{})
		s.notifier.Error("Could not save your session.")
		return err
	}

	s.setState(StateAuthenticated, user)
	s.notifier.Success(successMsg)
	return nil
}

// Logout always succeeds locally; it removes the persisted credential pair
// and never calls the remote service.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.Clear()
	s.setState(StateUnauthenticated, task.User{})
	s.notifier.Info("You have been logged out.")
}
