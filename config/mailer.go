package config

import "strings"

// MailerConfig contains configuration for the transactional email relay.
type MailerConfig struct {
	// APIKey is the Resend API key. When empty, outgoing email is disabled
	// and messages are logged instead of delivered.
	APIKey string `env:"API_KEY"`

	// From is the sender address for all outgoing mail.
	From string `env:"FROM" envDefault:"Lifewood Admin <no-reply@lifewood.com>"`

	// ReplyTo is the reply-to address set on outgoing mail.
	ReplyTo string `env:"REPLY_TO" envDefault:"info@lifewood.com"`
}

// Enabled reports whether outgoing email is configured.
func (m MailerConfig) Enabled() bool {
	return strings.TrimSpace(m.APIKey) != ""
}
