package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain-text mail over SMTP. Order confirmation delivery is
// best-effort: callers log failures and move on, they never roll anything
// back because of one.
type Mailer struct {
	addr     string // host:port of the SMTP server
	host     string
	from     string
	password string
}

// Config holds SMTP connection details.
type Config struct {
	Addr     string
	Host     string
	From     string
	Password string
}

// New creates a Mailer from config.
func New(cfg Config) *Mailer {
	return &Mailer{
		addr:     cfg.Addr,
		host:     cfg.Host,
		from:     cfg.From,
		password: cfg.Password,
	}
}

// Send delivers one message to one recipient.
func (m *Mailer) Send(to, subject, body string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, to, subject, body,
	)

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
