package config

import (
	"strings"
	"time"
)

// AuthConfig groups administrator account and session configuration.
//
// The application has exactly one privileged account. A signed-in identity
// is authorized iff its email matches AdminEmail exactly; everything else is
// denied regardless of credential validity.
type AuthConfig struct {
	// AdminEmail is the email address of the single administrator account.
	AdminEmail string `env:"ADMIN_EMAIL,required"`

	// AdminPasswordHash is the bcrypt hash of the administrator password.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`

	// SessionTTL is how long an admin session remains valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// LoginMaxAttempts is the number of failed sign-in attempts allowed
	// within LoginAttemptWindow before further attempts are rejected.
	LoginMaxAttempts int `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`

	// LoginAttemptWindow is the sliding window for rate limiting sign-ins.
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW" envDefault:"10m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.AdminEmail = strings.ToLower(strings.TrimSpace(a.AdminEmail))
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	if a.LoginMaxAttempts <= 0 {
		a.LoginMaxAttempts = 5
	}
	if a.LoginAttemptWindow <= 0 {
		a.LoginAttemptWindow = 10 * time.Minute
	}
}
