package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/ratelimit"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier map[string]string

func (s stubVerifier) VerifyAccessToken(token string) (*auth.Claims, error) {
	userID, ok := s[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &auth.Claims{
		Email:            userID + "@test.com",
		Type:             "access",
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}, nil
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me/:userId", AuthMiddleware(stubVerifier{"good": "u1"}), OwnerMiddleware("userId"), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	tests := []struct {
		name   string
		header string
		path   string
		status int
		body   string
	}{
		{"bearer", "Bearer good", "/me/u1", http.StatusOK, "u1"},
		{"raw token", "good", "/me/u1", http.StatusOK, "u1"},
		{"missing", "", "/me/u1", http.StatusUnauthorized, "Missing or invalid token"},
		{"invalid", "Bearer nope", "/me/u1", http.StatusUnauthorized, "Invalid or expired token"},
		{"other owner", "Bearer good", "/me/u2", http.StatusForbidden, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = serve(r, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w = serve(r, req)
	assert.NotEqual(t, strings.Repeat("x", 200), w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	for _, production := range []bool{false, true} {
		r := gin.New()
		r.Use(SecurityHeadersMiddleware(production))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, production, w.Header().Get("Strict-Transport-Security") != "")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, ratelimit.Rule, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitMiddleware(t *testing.T) {
	rule := ratelimit.Rule{Name: "test", Limit: 1, Window: time.Minute, Message: "slow down"}

	t.Run("limits by identifier and keeps body", func(t *testing.T) {
		r := gin.New()
		r.POST("/otp", RateLimitMiddleware(ratelimit.NewMemoryLimiter(), ByOTPIdentifier, rule), func(c *gin.Context) {
			body, _ := io.ReadAll(c.Request.Body)
			c.String(http.StatusOK, string(body))
		})

		send := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/otp", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			return serve(r, req)
		}

		w := send(`{"phone":"+911234567890"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"phone":"+911234567890"}`, w.Body.String())

		w = send(`{"phone":"+911234567890"}`)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "slow down")

		// Email нормализуется к нижнему регистру
		assert.Equal(t, http.StatusOK, send(`{"email":"A@B.C"}`).Code)
		assert.Equal(t, http.StatusTooManyRequests, send(`{"email":"a@b.c"}`).Code)
	})

	t.Run("redis store returns 429 past the limit", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		r := gin.New()
		r.GET("/", RateLimitMiddleware(ratelimit.NewRedisLimiter(client, "mw"), ByIP, rule), func(c *gin.Context) { c.Status(http.StatusOK) })

		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "slow down")

		mr.FastForward(rule.Window)
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})

	t.Run("store failure lets request through", func(t *testing.T) {
		r := gin.New()
		r.GET("/", RateLimitMiddleware(failingLimiter{}, ByIP, rule), func(c *gin.Context) { c.Status(http.StatusOK) })
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})
}
