// Package mail sends multipart notification emails over SMTP.
package mail

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Message is one outbound email with plain text and HTML bodies.
type Message struct {
	Subject    string
	Sender     string
	Recipients []string
	TextBody   string
	HTMLBody   string
}

// Sender delivers messages.
type Sender interface {
	Send(msg Message) error
}

// Config describes the SMTP relay.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	SSL      bool
}

type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg Config) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	return &SMTPSender{dialer: d}
}

func (s *SMTPSender) Send(msg Message) error {
	m, err := build(msg)
	if err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

func build(msg Message) (*gomail.Message, error) {
	if len(msg.Recipients) == 0 {
		return nil, errors.New("mail: no recipients")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", msg.Sender)
	m.SetHeader("To", msg.Recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	return m, nil
}

// Discard drops every message; used when SMTP is not configured.
type Discard struct{}

func (Discard) Send(Message) error { return nil }
