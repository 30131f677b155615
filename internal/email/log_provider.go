package email

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogProvider не отправляет письма, а пишет их в лог.
// Используется в development, когда SMTP не настроен, и в тестах.
type LogProvider struct {
	logger *slog.Logger

	mu   sync.Mutex
	sent []Email
}

func NewLogProvider(logger *slog.Logger) *LogProvider {
	return &LogProvider{logger: logger}
}

func (p *LogProvider) Name() string {
	return "log"
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	if p.logger != nil {
		p.logger.InfoContext(ctx, "[dev] email not sent, provider is not configured",
			"to", strings.Join(email.To, ","),
			"subject", email.Subject,
			"text", email.Text,
		)
	}
	return nil
}

// Sent возвращает копию отправленных писем
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

// Last - последнее письмо на адрес
func (p *LogProvider) Last(to string) (Email, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.sent) - 1; i >= 0; i-- {
		for _, rcpt := range p.sent[i].To {
			if strings.EqualFold(rcpt, to) {
				return p.sent[i], true
			}
		}
	}
	return Email{}, false
}
