package integration_test

import (
	"net/http"
	"testing"

	"jobboard_backend/internal/ratelimit"
	"jobboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_OTPCooldownPerPhone(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, helpers.WithLimiter(ratelimit.NewMemoryLimiter()))

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/request-otp", "", map[string]string{"phone": "+919000000001"})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)

	res = ts.SendRequest(t, http.MethodPost, "/api/auth/request-otp", "", map[string]string{"phone": "+919000000001"})
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.False(t, res.Envelope.Success)
	assert.Equal(t, ratelimit.OTPCooldown.Message, res.Envelope.Message)

	// Другой номер не затронут
	res = ts.SendRequest(t, http.MethodPost, "/api/auth/request-otp", "", map[string]string{"phone": "+919000000002"})
	assert.Equal(t, http.StatusOK, res.StatusCode, res.Body)
}

func TestRateLimit_Register(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, helpers.WithLimiter(ratelimit.NewMemoryLimiter()))

	for i := 0; i < ratelimit.Register.Limit; i++ {
		res := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bad"})
		require.Equal(t, http.StatusBadRequest, res.StatusCode, "attempt %d: %s", i, res.Body)
	}

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, ratelimit.Register.Message, res.Envelope.Message)

	// Login считается отдельно
	res = ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@test.com",
		"password": helpers.TestPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
