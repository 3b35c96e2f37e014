package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifewood/adminhub/config"
	domainauth "github.com/lifewood/adminhub/internal/domain/auth"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/ports"
)

// Fixed sign-in failure messages shown to the user. Wrong email and wrong
// password produce the same message so the form does not leak which part
// was wrong.
const (
	msgInvalidEmail       = "Please enter a valid email address."
	msgInvalidCredentials = "Invalid email or password."
	msgTooManyAttempts    = "Too many failed attempts. Please try again later."
)

var errSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Sessions ports.SessionStore
	Limiter  ports.RateLimiter
	Config   config.AuthConfig
}

// AuthService authenticates the single admin account and manages sessions.
type AuthService struct {
	sessions ports.SessionStore
	limiter  ports.RateLimiter
	config   config.AuthConfig
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		sessions: opts.Sessions,
		limiter:  opts.Limiter,
		config:   opts.Config,
		now:      time.Now,
	}
}

// SignInInput groups the sign-in form fields.
type SignInInput struct {
	Email    string
	Password string
}

// SignIn verifies the admin credentials and creates a session. Attempts are
// rate limited per email; a successful sign-in resets the counter.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (domainauth.Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return domainauth.Session{}, apperrors.Authentication(msgInvalidEmail)
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("check rate limit: %w", err)
	}
	if !allowed {
		return domainauth.Session{}, apperrors.Authentication(msgTooManyAttempts)
	}

	if email != s.config.AdminEmail {
		return domainauth.Session{}, apperrors.Authentication(msgInvalidCredentials)
	}
	if bcryptErr := bcrypt.CompareHashAndPassword(
		[]byte(s.config.AdminPasswordHash), []byte(input.Password),
	); bcryptErr != nil {
		return domainauth.Session{}, apperrors.Authentication(msgInvalidCredentials)
	}

	if resetErr := s.limiter.Reset(ctx, email); resetErr != nil {
		return domainauth.Session{}, fmt.Errorf("reset rate limit: %w", resetErr)
	}

	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    "admin",
		Email:     email,
		Role:      domainauth.RoleAdmin,
		ExpiresAt: s.now().Add(s.config.SessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}
	return session, nil
}

// GetSession retrieves and re-validates a session by ID. A client-side hint
// that a session exists is never trusted; expired sessions are removed.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsExpired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}
	if !session.IsAuthorized(s.config.AdminEmail) {
		return nil, apperrors.Authorization("session is not authorized for admin access")
	}
	return &session, nil
}

// Logout removes a session. Logging out without a session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
