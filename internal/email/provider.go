package email

import "context"

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет сообщение
	Send(ctx context.Context, email *Email) error

	// Name - имя провайдера для логов
	Name() string
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
