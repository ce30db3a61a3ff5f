package tasks

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP endpoint (Mailpit in development).
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer constructs a mailer for host:port.
func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{addr: fmt.Sprintf("%s:%d", host, port), from: from}
}

// Send delivers the message without authentication.
func (m *SMTPMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)
	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg.String()))
}
