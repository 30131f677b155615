package sms

import (
	"context"
	"fmt"
	"sync"

	"jobboard_backend/internal/breaker"
	"jobboard_backend/internal/logger"

	"github.com/sony/gobreaker"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender отправляет SMS
type Sender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// OTPMessage - текст SMS с кодом входа
func OTPMessage(code string) string {
	return fmt.Sprintf("Your SortOut verification code is: %s", code)
}

// ============================================
// Twilio
// ============================================

type TwilioSender struct {
	client *twilio.RestClient
	from   string
	cb     *gobreaker.CircuitBreaker
}

func NewTwilioSender(accountSID, authToken, fromNumber string) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil, fmt.Errorf("twilio is not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client: client,
		from:   fromNumber,
		cb:     breaker.New("twilio", breaker.DefaultSettings()),
	}, nil
}

func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.Api.CreateMessage(params)
	})
	if err != nil {
		logger.CtxWarn(ctx, "twilio send failed", "to", to, "error", err)
		return fmt.Errorf("failed to send sms: %w", err)
	}
	return nil
}

// ============================================
// In-memory (development / tests)
// ============================================

type Message struct {
	To   string
	Body string
}

type MemorySender struct {
	mu       sync.Mutex
	messages []Message
}

func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

func (s *MemorySender) SendSMS(ctx context.Context, to, body string) error {
	s.mu.Lock()
	s.messages = append(s.messages, Message{To: to, Body: body})
	s.mu.Unlock()
	logger.CtxDebug(ctx, "[dev] sms not sent", "to", to, "body", body)
	return nil
}

// Last - последнее сообщение на номер
func (s *MemorySender) Last(to string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].To == to {
			return s.messages[i], true
		}
	}
	return Message{}, false
}
