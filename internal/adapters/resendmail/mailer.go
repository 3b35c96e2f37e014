// Package resendmail delivers notification email through the Resend API.
package resendmail

import (
	"context"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/lifewood/adminhub/config"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/ports"
)

// Mailer implements ports.Notifier on top of the Resend API.
type Mailer struct {
	client  *resend.Client
	from    string
	replyTo string
	logger  *slog.Logger
}

// Options groups parameters for NewMailer.
type Options struct {
	Config config.MailerConfig
	Logger *slog.Logger
}

// NewMailer creates a Resend-backed mailer.
func NewMailer(opts Options) *Mailer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		client:  resend.NewClient(opts.Config.APIKey),
		from:    opts.Config.From,
		replyTo: opts.Config.ReplyTo,
		logger:  logger.With("component", "mailer"),
	}
}

// Send delivers a single email. The caller has already persisted whatever
// state change triggered the notification; a failure here is reported as a
// notification error and never undoes that change.
func (m *Mailer) Send(ctx context.Context, mail ports.Mail) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{mail.To},
		Subject: mail.Subject,
		Html:    mail.HTML,
	}
	if m.replyTo != "" {
		params.ReplyTo = m.replyTo
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.logger.ErrorContext(ctx, "email send failed", "to", mail.To, "subject", mail.Subject, "err", err)
		return apperrors.Notification(err, "send email")
	}

	m.logger.InfoContext(ctx, "email sent", "message_id", sent.Id, "to", mail.To, "subject", mail.Subject)
	return nil
}

// NopNotifier drops all mail. Used when no Resend API key is configured, so
// development environments run the full workflow without sending anything.
type NopNotifier struct {
	Logger *slog.Logger
}

// Send logs the suppressed mail and succeeds.
func (n NopNotifier) Send(ctx context.Context, mail ports.Mail) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "email suppressed: mailer disabled", "to", mail.To, "subject", mail.Subject)
	return nil
}
