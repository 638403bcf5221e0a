package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer implements usecase.Notifier over SMTP.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewMailer creates a new Mailer.
func NewMailer(host, port, user, pass, from string) *Mailer {
	return &Mailer{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}
}

// Send delivers a plain-text email. The context deadline bounds the dial,
// not the SMTP conversation itself.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
