// Package notification sends transactional emails over smtp. Sending is
// best-effort: callers run it off the request path and only log failures.
package notification

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send dispatches a single html email. Attachment paths, if any, are
// attached as application/pdf.
func (m *Mailer) Send(to, subject, htmlBody string, attachments ...string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	for _, attachment := range attachments {
		msg.Attach(attachment)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
