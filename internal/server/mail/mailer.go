// Package mail sends transactional email for the server. The production
// implementation uses Mailgun; a console fallback is used when no Mailgun
// credentials are configured.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v3"

	"github.com/TayeEmmanu/Habitly/internal/logging"
)

// Mailer delivers transactional email.
type Mailer interface {
	// SendPasswordReset sends a password reset link to the given address.
	SendPasswordReset(ctx context.Context, to string, name string, resetURL string) error
}

const sendTimeout = 10 * time.Second

// MailgunMailer sends mail through the Mailgun HTTP API.
type MailgunMailer struct {
	mg   mailgun.Mailgun
	from string
}

// NewMailgunMailer constructs a Mailer backed by the given Mailgun domain
// and private API key.
func NewMailgunMailer(domain string, apiKey string, from string) *MailgunMailer {
	return &MailgunMailer{mg: mailgun.NewMailgun(domain, apiKey), from: from}
}

func (m *MailgunMailer) SendPasswordReset(ctx context.Context, to string, name string, resetURL string) error {
	subject := "Reset your Habitly password"
	text := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. "+
			"Open the link below to choose a new one:\n\n%s\n\n"+
			"The link is valid for 1 hour. If you did not request a reset, you can ignore this email.\n",
		name, resetURL)

	message := m.mg.NewMessage(m.from, subject, text, to)
	message.SetHtml(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="%s">Reset your password</a></p>
<p>The link is valid for 1 hour. If you did not request a reset, you can ignore this email.</p>`,
		name, resetURL))

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, _, err := m.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

// ConsoleMailer logs outgoing mail instead of delivering it. Used in
// development when Mailgun is not configured.
type ConsoleMailer struct {
	logger logging.Logger
}

// NewConsoleMailer constructs a Mailer that only logs.
func NewConsoleMailer(logger logging.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) SendPasswordReset(ctx context.Context, to string, name string, resetURL string) error {
	m.logger.Info(ctx, "password reset email (console delivery)", "to", to, "url", resetURL)
	return nil
}
