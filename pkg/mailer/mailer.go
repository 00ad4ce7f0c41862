// Package mailer sends transactional email over SMTP. Sends are
// fire-and-forget: callers log failures and move on.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func New(host string, port int, user, password, from string, log *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		log:    log.With(zap.String("gateway", "mailer")),
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	m.log.Debug("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
