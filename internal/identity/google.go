package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobboard_backend/internal/breaker"

	"github.com/sony/gobreaker"
)

const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrGoogleNotConfigured = errors.New("google sign-in is not configured")

// InvalidTokenError - токен отклонен (истек, чужая аудитория, нет email)
type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return e.Reason
}

// GooglePayload - данные пользователя из проверенного id_token
type GooglePayload struct {
	Email   string
	Name    string
	Picture *string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GooglePayload, error)
}

type googleVerifier struct {
	clientID     string
	tokenInfoURL string
	httpClient   *http.Client
	cb           *gobreaker.CircuitBreaker
}

// NewGoogleVerifier проверяет id_token через tokeninfo endpoint Google
func NewGoogleVerifier(clientID, tokenInfoURL string) GoogleVerifier {
	if tokenInfoURL == "" {
		tokenInfoURL = DefaultTokenInfoURL
	}

	settings := breaker.DefaultSettings()
	settings.IsSuccessful = func(err error) bool {
		var invalid *InvalidTokenError
		return err == nil || errors.As(err, &invalid)
	}

	return &googleVerifier{
		clientID:     clientID,
		tokenInfoURL: tokenInfoURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		cb:           breaker.New("google-tokeninfo", settings),
	}
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Sub           string `json:"sub"`
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GooglePayload, error) {
	if v.clientID == "" {
		return nil, ErrGoogleNotConfigured
	}

	res, err := v.cb.Execute(func() (interface{}, error) {
		return v.fetch(ctx, idToken)
	})
	if err != nil {
		var invalid *InvalidTokenError
		if errors.As(err, &invalid) {
			return nil, invalid
		}
		return nil, fmt.Errorf("google tokeninfo: %w", err)
	}
	info := res.(*tokenInfo)

	if info.Aud != v.clientID {
		return nil, &InvalidTokenError{Reason: "Invalid Google token audience"}
	}

	email := strings.TrimSpace(info.Email)
	if email == "" {
		return nil, &InvalidTokenError{Reason: "Google token missing email"}
	}

	payload := &GooglePayload{
		Email: email,
		Name:  displayName(info.Name, email),
	}
	if pic := strings.TrimSpace(info.Picture); pic != "" {
		payload.Picture = &pic
	}
	return payload, nil
}

// fetch - 4xx от Google означает плохой токен и не считается сбоем для breaker
func (v *googleVerifier) fetch(ctx context.Context, idToken string) (*tokenInfo, error) {
	endpoint := v.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	info := &tokenInfo{}
	if resp.StatusCode != http.StatusOK {
		return info, &InvalidTokenError{Reason: "Invalid or expired Google token"}
	}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return info, &InvalidTokenError{Reason: "Invalid or expired Google token"}
	}
	return info, nil
}

func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "User"
}
