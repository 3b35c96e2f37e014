package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity represents the authenticated principal returned by the identity
// provider: an opaque id plus the email the authorization decision hangs on.
type Identity struct {
	UserID string
	Email  string
}

// Session is the trust snapshot persisted between page loads. It is a
// flicker-avoidance hint, never an authority: every protected request
// re-validates expiry and the admin email before honoring it.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired at the given instant.
func (s Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsAuthorized reports whether the session identity is the single configured
// administrator. The match is exact on the lowercased email.
func (s Session) IsAuthorized(adminEmail string) bool {
	if s.Email == "" || adminEmail == "" {
		return false
	}
	return s.Role == RoleAdmin && strings.EqualFold(s.Email, adminEmail)
}
