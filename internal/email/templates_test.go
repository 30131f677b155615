package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersBuiltins(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateVerifyEmail, TemplateData{"Link": "http://localhost:3000/verify-email?token=abc"})
	require.NoError(t, err)
	assert.Contains(t, html, `href="http://localhost:3000/verify-email?token=abc"`)
	assert.Contains(t, html, "24 hours")

	html, err = tm.Render(TemplateEmailChangeOTP, TemplateData{"Code": "123456"})
	require.NoError(t, err)
	assert.Contains(t, html, "123456")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestLogProvider_RecordsMessages(t *testing.T) {
	p := NewLogProvider(nil)
	require.NoError(t, p.Send(context.Background(), &Email{To: []string{"A@x.com"}, Subject: "s1", Text: "t1"}))
	require.NoError(t, p.Send(context.Background(), &Email{To: []string{"b@x.com"}, Subject: "s2"}))

	last, ok := p.Last("a@x.com")
	require.True(t, ok)
	assert.Equal(t, "s1", last.Subject)
	assert.Len(t, p.Sent(), 2)

	_, ok = p.Last("nobody@x.com")
	assert.False(t, ok)
}

func TestSMTPProvider_Validate(t *testing.T) {
	_, err := NewSMTPProvider(&SMTPConfig{Port: 587, FromEmail: "a@b.c"})
	assert.Error(t, err)

	_, err = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 0, FromEmail: "a@b.c"})
	assert.Error(t, err)

	p, err := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "smtp", p.Name())
}
