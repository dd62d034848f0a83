package store

import (
	"context"
	"time"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/auth"
	"github.com/shashiranjanraj/dokon/pkg/event"
	"github.com/shashiranjanraj/dokon/pkg/logger"
	"github.com/shashiranjanraj/dokon/pkg/validate"
)

// Session holds the authenticated identity, or none.
type Session struct {
	base
	api  *api.Client
	user *models.User
}

func NewSession(c *api.Client) *Session {
	return &Session{api: c}
}

// Register creates an account and signs in. Input is validated locally
// first, so obviously bad input never costs a round trip; remote conflict
// (duplicate email) and validation failures are surfaced as-is.
func (s *Session) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	user, err := s.api.Register(ctx, in)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.setUser(&user)
	s.finish()
	event.Fire(event.SessionChanged, &user)
	return &user, nil
}

// Login authenticates with email and password.
func (s *Session) Login(ctx context.Context, in models.LoginInput) (*models.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	user, err := s.api.Login(ctx, in)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.setUser(&user)
	s.finish()
	event.Fire(event.SessionChanged, &user)
	return &user, nil
}

// Refresh attempts to recover a session, e.g. on app start. This is a
// recovery path, not a failure path: any error — network, 401, anything —
// clears the session and returns nil instead of surfacing.
func (s *Session) Refresh(ctx context.Context) *models.User {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	user, err := s.api.Me(ctx)
	if err != nil {
		logger.Debug("session: refresh failed, clearing", "error", err)
		s.clearUser()
		s.finish()
		event.Fire(event.SessionChanged, (*models.User)(nil))
		return nil
	}

	s.setUser(&user)
	s.finish()
	event.Fire(event.SessionChanged, &user)
	return &user
}

// Logout invalidates the remote session best-effort: a remote failure is
// logged, never surfaced, and the local session is cleared regardless.
func (s *Session) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.start()
	if err := s.api.Logout(ctx); err != nil {
		logger.Warn("session: remote logout failed", "error", err)
	}

	s.clearUser()
	s.finish()
	event.Fire(event.SessionChanged, (*models.User)(nil))
}

// UpdateProfile applies a partial profile update to the current user.
func (s *Session) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	s.start()
	user, err := s.api.UpdateMe(ctx, in)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.setUser(&user)
	s.finish()
	event.Fire(event.SessionChanged, &user)
	return &user, nil
}

// RestoreToken installs a previously persisted bearer token (CLI restarts)
// without contacting the backend. Follow with Refresh to validate it.
func (s *Session) RestoreToken(token string) {
	s.api.SetToken(token)
}

// Token returns the current bearer token, "" when signed out.
func (s *Session) Token() string { return s.api.Token() }

// User returns the current user, nil when signed out.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool { return s.User() != nil }

// Role returns the current role, "" when signed out.
func (s *Session) Role() models.Role {
	if u := s.User(); u != nil {
		return u.Role
	}
	return ""
}

// IsAdmin reports whether the current user holds the admin role.
func (s *Session) IsAdmin() bool { return s.Role() == models.RoleAdmin }

// TokenExpiresAt returns the bearer token's expiry claim, zero when there is
// no token or it carries no expiry.
func (s *Session) TokenExpiresAt() time.Time {
	return auth.ExpiresAt(s.api.Token())
}

func (s *Session) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func (s *Session) clearUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.api.ClearToken()
}

// validateInput runs struct-tag validation and folds failures into a single
// local validation error.
func validateInput(v interface{}) error {
	errs := validate.Struct(v)
	if !validate.HasErrors(errs) {
		return nil
	}
	msg := ""
	for _, m := range errs {
		if msg != "" {
			msg += " "
		}
		msg += m
	}
	return api.NewValidation(msg)
}
