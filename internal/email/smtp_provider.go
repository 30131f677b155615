package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider для SMTP
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	p := &SMTPProvider{config: config}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.dialer = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return p, nil
}

func (p *SMTPProvider) Name() string {
	return "smtp"
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.Text != "" {
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTMLBody)
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}

	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}

	return nil
}
