// Package mail dispatches transactional email over SMTP.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/trekline/gotours/internal/config"
)

// Sender is what handlers depend on; tests swap in a stub.
type Sender interface {
	Send(to, subject, body string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// PasswordResetBody renders the plaintext reset instructions around the
// one-time reset URL.
func PasswordResetBody(resetURL string) string {
	return fmt.Sprintf(
		"Forgot your password?\n\nSubmit a PATCH request with your new password and passwordConfirm to:\n\n%s\n\nIf you didn't forget your password, please ignore this email!",
		resetURL,
	)
}
