package sms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPMessage(t *testing.T) {
	assert.Equal(t, "Your SortOut verification code is: 123456", OTPMessage("123456"))
}

func TestNewTwilioSender_RequiresCredentials(t *testing.T) {
	_, err := NewTwilioSender("", "token", "+100")
	assert.Error(t, err)
	_, err = NewTwilioSender("sid", "token", "")
	assert.Error(t, err)
}

func TestMemorySender(t *testing.T) {
	s := NewMemorySender()
	require.NoError(t, s.SendSMS(context.Background(), "+15550001111", "one"))
	require.NoError(t, s.SendSMS(context.Background(), "+15550001111", "two"))

	msg, ok := s.Last("+15550001111")
	require.True(t, ok)
	assert.Equal(t, "two", msg.Body)

	_, ok = s.Last("+1")
	assert.False(t, ok)
}
