// Package service wires the domain types to the backend client and the
// credential store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/brieflyhq/briefly/internal/adapter/outbound/api"
	"github.com/brieflyhq/briefly/internal/domain/session"
)

// User-facing notice wording. One set for both auth paths.
const (
	loginSuccessNotice    = "Login successful!"
	loginInvalidNotice    = "Invalid username or password"
	loginNetworkNotice    = "Network error during login"
	registerSuccessNotice = "Registration successful! Please log in."
	registerNetworkNotice = "Network error during registration"
	logoutNotice          = "You have been logged out successfully"
)

// AuthAPI is the slice of the backend client the session machine needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Register(ctx context.Context, username, password, role string) error
}

// SessionService is the authentication state machine. It owns the in-memory
// Session, keeps it synchronized with the credential store, and is the single
// mutation path for both: no other component writes session state.
//
// States are ANONYMOUS (no token) and AUTHENTICATED (token present, with
// role). The initial state is read from the store once at construction, with
// no network call; there is no terminal state, the machine reactivates from
// storage every process start.
type SessionService struct {
	mu       sync.RWMutex
	current  session.Session
	store    session.Store
	client   AuthAPI
	notifier Notifier
	logger   *slog.Logger
}

// NewSessionService creates the state machine, rehydrating the session from
// the store. A store read failure degrades to an anonymous session.
func NewSessionService(store session.Store, client AuthAPI, notifier Notifier, logger *slog.Logger) *SessionService {
	current, err := store.Load()
	if err != nil {
		logger.Warn("failed to load stored credentials, starting anonymous", "error", err)
		current = session.Session{}
	}
	return &SessionService{
		current:  current,
		store:    store,
		client:   client,
		notifier: notifier,
		logger:   logger,
	}
}

// Login exchanges credentials for a token and, on success, transitions to
// AUTHENTICATED and persists the session. On any failure the state is left
// unchanged: a failed login while authenticated keeps the existing session.
// Calling Login while authenticated is permitted and re-authenticates.
func (s *SessionService) Login(ctx context.Context, username, password string) bool {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.notifyLoginFailure(err)
		return false
	}

	next := session.Session{
		Token:    result.Token,
		Role:     session.Role(result.Role),
		Username: result.Username,
	}
	if !next.IsComplete() {
		// A 2xx that does not carry all three fields cannot establish
		// identity; refuse it rather than store a partial record.
		s.logger.Warn("login response missing token, role, or username")
		s.notifier.Error(loginInvalidNotice)
		return false
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if err := s.store.Save(next); err != nil {
		s.logger.Warn("failed to persist credentials", "error", err)
	}

	s.notifier.Success(loginSuccessNotice)
	s.logger.Info("logged in", "username", next.Username, "role", next.Role)
	return true
}

func (s *SessionService) notifyLoginFailure(err error) {
	var se *api.ServerError
	switch {
	case errors.As(err, &se):
		if se.FromServer {
			s.notifier.Error(se.Message)
		} else {
			s.notifier.Error(loginInvalidNotice)
		}
	case errors.Is(err, api.ErrNetwork):
		s.notifier.Error(loginNetworkNotice)
	default:
		s.notifier.Error(loginInvalidNotice)
	}
}

// Register creates an account. It never mutates the session: a successful
// registration leaves the caller anonymous and a separate Login is required.
func (s *SessionService) Register(ctx context.Context, username, password string, role session.Role) bool {
	if err := s.client.Register(ctx, username, password, string(role)); err != nil {
		var se *api.ServerError
		switch {
		case errors.As(err, &se):
			s.notifier.Error(se.Message)
		case errors.Is(err, api.ErrNetwork):
			s.notifier.Error(registerNetworkNotice)
		default:
			s.notifier.Error(err.Error())
		}
		return false
	}

	s.notifier.Success(registerSuccessNotice)
	return true
}

// Logout unconditionally transitions to ANONYMOUS and clears the store.
// It never fails; a store error is logged and the in-memory state is cleared
// regardless.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = session.Session{}
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear stored credentials", "error", err)
	}

	s.notifier.Info(logoutNotice)
	s.logger.Info("logged out")
}

// Invalidate drops the session without a notice. It backs the optional
// policy of treating an authorization rejection as a forced logout.
func (s *SessionService) Invalidate() {
	s.mu.Lock()
	s.current = session.Session{}
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to clear stored credentials", "error", err)
	}
}

// Current returns a copy of the session.
func (s *SessionService) Current() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsAuthenticated reports whether a token is present.
func (s *SessionService) IsAuthenticated() bool {
	return s.Current().IsAuthenticated()
}

// Role returns the current authorization level, empty when anonymous.
func (s *SessionService) Role() session.Role {
	return s.Current().Role
}

// Username returns the current display identity, empty when anonymous.
func (s *SessionService) Username() string {
	return s.Current().Username
}

// Token implements api.TokenSource. The request builder only ever reads the
// token through this; it never mutates session state.
func (s *SessionService) Token() (string, bool) {
	cur := s.Current()
	return cur.Token, cur.Token != ""
}
