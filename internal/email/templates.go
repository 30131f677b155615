package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateVerifyEmail    = "verify_email"
	TemplatePasswordReset  = "password_reset"
	TemplateEmailChangeOTP = "email_change_otp"
)

var defaultTemplates = map[string]string{
	TemplateVerifyEmail: `<p>Hi,</p>
<p>Click the link below to verify your email:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>This link expires in 24 hours. If you didn't request this, you can ignore this email.</p>
<p>SortOut Jobs</p>`,
	TemplatePasswordReset: `<p>Hi,</p>
<p>Click the link below to reset your password:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>This link expires in 1 hour. If you didn't request this, you can ignore this email.</p>
<p>SortOut Jobs</p>`,
	TemplateEmailChangeOTP: `<p>Hi,</p>
<p>Your verification code to update your email is:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px;">{{.Code}}</p>
<p>This code expires in 10 minutes. If you didn't request this, you can ignore this email.</p>
<p>SortOut Jobs</p>`,
}

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет (или заменяет) шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
