package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/electronicart/marketing-agent/internal/usecase"
)

// SMTPSender delivers drafts over plain SMTP. Used when no SendGrid key is
// configured but SMTP credentials are.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Compile-time check that SMTPSender satisfies usecase.MailDispatcher.
var _ usecase.MailDispatcher = (*SMTPSender)(nil)

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *SMTPSender) Send(_ context.Context, to, subject, body string) (*usecase.DispatchResult, error) {
	if s.From == "" {
		return nil, fmt.Errorf("EMAIL_FROM is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("smtp send: %w", err)
	}

	return &usecase.DispatchResult{
		Provider:  "smtp",
		MessageID: uuid.New().String(),
	}, nil
}
