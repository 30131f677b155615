package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenInfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "good-token", r.URL.Query().Get("id_token"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleVerifier_NotConfigured(t *testing.T) {
	v := NewGoogleVerifier("", "")
	_, err := v.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGoogleNotConfigured)
}

func TestGoogleVerifier_Valid(t *testing.T) {
	srv := tokenInfoServer(t, http.StatusOK, `{"aud":"client-1","email":" jane@example.com ","name":"","picture":"https://pic"}`)
	v := NewGoogleVerifier("client-1", srv.URL)

	p, err := v.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", p.Email)
	assert.Equal(t, "jane", p.Name)
	require.NotNil(t, p.Picture)
	assert.Equal(t, "https://pic", *p.Picture)
}

func TestGoogleVerifier_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{"expired", http.StatusBadRequest, `{"error":"invalid_token"}`, "Invalid or expired Google token"},
		{"audience", http.StatusOK, `{"aud":"other","email":"a@b.c"}`, "Invalid Google token audience"},
		{"no email", http.StatusOK, `{"aud":"client-1"}`, "Google token missing email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := tokenInfoServer(t, tc.status, tc.body)
			v := NewGoogleVerifier("client-1", srv.URL)

			_, err := v.Verify(context.Background(), "good-token")
			var invalid *InvalidTokenError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tc.reason, invalid.Reason)
		})
	}
}
