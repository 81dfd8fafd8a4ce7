package stores

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sam-eff/car-rental-site/internal/models"
	"github.com/Sam-eff/car-rental-site/internal/services"
	"github.com/Sam-eff/car-rental-site/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

// Observer is notified after login (with the profile) and logout (with nil).
type Observer func(ctx context.Context, profile *models.Profile)

// Session holds the access token and the profile it resolves to.
//
// The token is persisted under [TokenKey]; the profile only lives in memory.
type Session struct {
	mu        sync.RWMutex
	slot      Slot
	remote    AuthRemote
	logger    *log.Logger
	token     string
	profile   *models.Profile
	observers []Observer
	now       func() time.Time
}

// NewSession creates a logged-out session. Call [Session.Restore] to pick up a persisted token.
func NewSession(slot Slot, remote AuthRemote, logger *log.Logger) *Session {
	return &Session{slot: slot, remote: remote, logger: orDiscard(logger), now: time.Now}
}

// OnChange registers fn to run after every login and logout.
func (s *Session) OnChange(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Restore resumes the persisted token, if any.
//
// An expired token is dropped without a network call. A token the backend rejects is dropped too.
// Having no token is not an error.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.slot.Get(TokenKey)
	if errors.Is(err, shared.ErrKeyNotFound) || (err == nil && token == "") {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	if exp, ok := tokenExpiry(token); ok && !exp.After(s.now()) {
		s.logger.Info("stored token expired", "expired_at", exp)
		s.clear(ctx)
		return fmt.Errorf("%w: expired at %s", shared.ErrTokenExpired, exp.Format(time.RFC3339))
	}

	s.remote.SetToken(token)
	profile, err := s.remote.Profile(ctx)
	if err != nil {
		s.logger.Warn("stored token rejected", "error", err)
		s.clear(ctx)
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s.set(ctx, token, profile)
	return nil
}

// Login exchanges credentials for a token and loads the profile.
func (s *Session) Login(ctx context.Context, username, password string) models.Result {
	token, err := s.remote.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		s.logger.Debug("login rejected", "username", username, "error", err)

		msg := services.ErrorMessage(err)
		if msg == "" {
			msg = "Login failed"
		}
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrAuthFailed, err), msg)
	}

	s.remote.SetToken(token)
	profile, err := s.remote.Profile(ctx)
	if err != nil {
		s.remote.SetToken(s.Token())
		s.logger.Warn("failed to load profile after login", "error", err)
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrAuthFailed, err), "Login failed")
	}

	if err := s.slot.Set(TokenKey, token); err != nil {
		s.logger.Error("failed to save token", "error", err)
	}

	s.set(ctx, token, profile)
	return models.Ok(fmt.Sprintf("Logged in as %s", profile.Username))
}

// Register creates the account, then logs in with the same credentials.
func (s *Session) Register(ctx context.Context, req models.RegisterRequest) models.Result {
	if err := s.remote.Register(ctx, req); err != nil {
		s.logger.Debug("registration rejected", "username", req.Username, "error", err)

		msg := services.ErrorMessage(err)
		if msg == "" {
			msg = "Registration failed"
		}
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrAuthFailed, err), msg)
	}
	return s.Login(ctx, req.Username, req.Password)
}

// UpdateProfile edits the account on the server and replaces the cached profile.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) models.Result {
	if !s.Authenticated() {
		return models.Fail(shared.ErrUnauthenticated, "Please login to update your profile")
	}
	if update.Empty() {
		return models.Fail(shared.ErrInvalidInput, "Nothing to update")
	}

	profile, err := s.remote.UpdateProfile(ctx, update)
	if err != nil {
		s.logger.Warn("failed to update profile", "error", err)

		msg := services.ErrorMessage(err)
		if msg == "" {
			msg = "Failed to update profile"
		}
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrRemoteFailure, err), msg)
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return models.Ok("Profile updated successfully")
}

// ChangePassword replaces the account password. The session stays logged in.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) models.Result {
	if !s.Authenticated() {
		return models.Fail(shared.ErrUnauthenticated, "Please login to change your password")
	}
	if oldPassword == "" || newPassword == "" {
		return models.Fail(shared.ErrInvalidInput, "Both old and new passwords are required")
	}
	if len(newPassword) < 8 {
		return models.Fail(shared.ErrInvalidInput, "New password must be at least 8 characters")
	}

	err := s.remote.ChangePassword(ctx, models.PasswordChange{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		s.logger.Debug("password change rejected", "error", err)

		msg := services.ErrorMessage(err)
		if msg == "" {
			msg = "Failed to change password"
		}
		return models.Fail(fmt.Errorf("%w: %v", shared.ErrRemoteFailure, err), msg)
	}
	return models.Ok("Password changed successfully")
}

// Logout forgets the token and profile.
func (s *Session) Logout() {
	s.clear(context.Background())
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil
}

// Profile returns a copy of the current profile, or nil when logged out.
func (s *Session) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the token's exp claim when the token is a JWT carrying one.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

func (s *Session) set(ctx context.Context, token string, profile *models.Profile) {
	s.mu.Lock()
	s.token = token
	s.profile = profile
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(ctx, profile)
	}
}

func (s *Session) clear(ctx context.Context) {
	if err := s.slot.Delete(TokenKey); err != nil {
		s.logger.Error("failed to delete token", "error", err)
	}
	s.remote.SetToken("")

	s.mu.Lock()
	wasSet := s.token != "" || s.profile != nil
	s.token = ""
	s.profile = nil
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	if !wasSet {
		return
	}
	for _, fn := range observers {
		fn(ctx, nil)
	}
}

// tokenExpiry reads exp from token without verifying the signature; the backend does that.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
