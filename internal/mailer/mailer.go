// Package mailer is the email dispatch collaborator. The core invokes it
// once per registration to deliver the activation link.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	from string
}

// NewSMTPMailer returns a mailer that relays through host:port.
func NewSMTPMailer(host, port, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from}
}

// Send delivers the message through the configured relay.
func (m *SMTPMailer) Send(_ context.Context, recipient, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, recipient, subject, body)
	return smtp.SendMail(m.host+":"+m.port, nil, m.from, []string{recipient}, []byte(msg))
}

// LogMailer logs messages instead of delivering them. Used in development
// and tests where no relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a mailer that only logs.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(ctx context.Context, recipient, subject, body string) error {
	if m.logger != nil {
		m.logger.InfoContext(ctx, "mail dispatched",
			slog.String("to", recipient),
			slog.String("subject", subject),
			slog.Int("body_bytes", len(body)),
		)
	}
	return nil
}
