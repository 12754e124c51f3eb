package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Sender dispatches a single email. Implementations must not be relied on for
// delivery guarantees; callers treat every send as best effort.
type Sender interface {
	Send(subject, body, from string, to []string) error
}

// SMTPSender talks to a plain SMTP endpoint. With an empty address it drops
// mail silently, which keeps local development free of an SMTP dependency.
type SMTPSender struct {
	Addr     string // host:port
	Host     string
	User     string
	Password string
}

func NewSMTP(addr, host, user, password string) *SMTPSender {
	return &SMTPSender{Addr: addr, Host: host, User: user, Password: password}
}

func (s *SMTPSender) Send(subject, body, from string, to []string) error {
	if s.Addr == "" {
		log.Printf("📭 SMTP not configured, dropping mail %q to %v", subject, to)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		from, strings.Join(to, ", "), subject, body)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}
	return smtp.SendMail(s.Addr, auth, from, to, []byte(msg))
}

// BestEffort sends and swallows any failure; the error is logged and never
// surfaced to the caller.
func BestEffort(sender Sender, subject, body, from string, to []string) {
	if len(to) == 0 || (len(to) == 1 && to[0] == "") {
		return
	}
	if err := sender.Send(subject, body, from, to); err != nil {
		log.Printf("❌ Failed to send mail %q to %v: %v", subject, to, err)
	}
}
