package integration_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/identity"
	"jobboard_backend/internal/models"
	"jobboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"password": helpers.TestPassword,
		"name":     "Name",
	}
}

// tokenFromLink вытаскивает сырой токен из текста письма (...?token=<hex>)
func tokenFromLink(t *testing.T, text string) string {
	t.Helper()
	idx := strings.Index(text, "token=")
	require.NotEqual(t, -1, idx, "в письме нет ссылки: %s", text)
	return text[idx+len("token="):]
}

// codeFromText - последние 6 символов сообщения с кодом
func codeFromText(t *testing.T, text string) string {
	t.Helper()
	require.GreaterOrEqual(t, len(text), 6)
	return text[len(text)-6:]
}

// TestAuthFlow - регистрация, неверный пароль, успешный логин
func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	regRes := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", registerBody("A@Test.com"))
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regRes.Body)
	assert.Equal(t, "Registered", regRes.Envelope.Message)

	var reg helpers.AuthResult
	regRes.DecodeData(t, &reg)
	assert.NotEmpty(t, reg.AccessToken)
	assert.Equal(t, "15m", reg.ExpiresIn)
	require.NotNil(t, reg.User.Email)
	assert.Equal(t, "a@test.com", *reg.User.Email)
	assert.Equal(t, string(models.UserRoleUser), reg.User.Role)
	assert.NotContains(t, regRes.Body, "refreshToken\":", "refresh-токен не должен попадать в тело")

	cookie := regRes.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, handlers.RefreshCookiePath, cookie.Path)

	// Письмо с подтверждением ушло
	_, ok := ts.Email.Last("a@test.com")
	assert.True(t, ok)

	badRes := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@test.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, badRes.StatusCode)
	assert.False(t, badRes.Envelope.Success)
	assert.Equal(t, "Invalid email or password", badRes.Envelope.Message)

	unknownRes := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@test.com",
		"password": helpers.TestPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, unknownRes.StatusCode)
	assert.Equal(t, "Invalid email or password", unknownRes.Envelope.Message)

	loginRes := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "a@test.com",
		"password": helpers.TestPassword,
	})
	require.Equal(t, http.StatusOK, loginRes.StatusCode, loginRes.Body)
	assert.Equal(t, "Logged in", loginRes.Envelope.Message)

	var login helpers.AuthResult
	loginRes.DecodeData(t, &login)
	assert.NotEmpty(t, login.AccessToken)
	loginCookie := loginRes.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, loginCookie)
	assert.NotEqual(t, cookie.Value, loginCookie.Value)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", registerBody("dup@test.com"))
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)

	res = ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", registerBody("DUP@test.com"))
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Email already registered", res.Envelope.Message)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, res.Envelope.Success)
	assert.Len(t, res.Envelope.Errors, 3, res.Body)
}

func TestRefresh_RotatesCookie(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	regRes := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", registerBody("r@test.com"))
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regRes.Body)
	first := regRes.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, first)

	refreshRes := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", "", nil, first)
	require.Equal(t, http.StatusOK, refreshRes.StatusCode, refreshRes.Body)
	assert.Equal(t, "Token refreshed", refreshRes.Envelope.Message)
	second := refreshRes.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)

	// Старый токен одноразовый
	replay := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", "", nil, first)
	assert.Equal(t, http.StatusUnauthorized, replay.StatusCode)
	assert.Equal(t, "Invalid or expired refresh token", replay.Envelope.Message)

	// Токен из тела, если cookie нет
	bodyRes := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": second.Value})
	assert.Equal(t, http.StatusOK, bodyRes.StatusCode, bodyRes.Body)

	missing := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.StatusCode)
	assert.Equal(t, "Refresh token required", missing.Envelope.Message)
}

func TestLogout_RevokesAndClearsCookie(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	regRes := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", registerBody("out@test.com"))
	require.Equal(t, http.StatusCreated, regRes.StatusCode, regRes.Body)
	cookie := regRes.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, cookie)

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/logout", "", nil, cookie)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	assert.Equal(t, "Logged out", res.Envelope.Message)
	cleared := res.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// Повторный logout идемпотентен
	again := ts.SendRequest(t, http.MethodPost, "/api/auth/logout", "", nil, cookie)
	assert.Equal(t, http.StatusOK, again.StatusCode)

	refreshRes := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", "", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, refreshRes.StatusCode)
}

func TestMe(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	token, user := ts.CreateAndLoginUser(t, "Me", "me@test.com", models.UserRoleUser)

	res := ts.SendRequest(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)

	var me struct {
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	res.DecodeData(t, &me)
	assert.Equal(t, user.ID, me.User.ID)
	assert.Equal(t, "Me", me.User.Name)

	noToken := ts.SendRequest(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, noToken.StatusCode)
	assert.Equal(t, "Unauthorized", noToken.Envelope.Message)

	badToken := ts.SendRequest(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, badToken.StatusCode)
	assert.Contains(t, badToken.Envelope.Errors, "Invalid or expired token")

	require.NoError(t, ts.DB.Delete(&models.User{}, "id = ?", user.ID).Error)
	gone := ts.SendRequest(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
	assert.Equal(t, "User not found", gone.Envelope.Message)
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", registerBody("v@test.com"))
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)

	mail, ok := ts.Email.Last("v@test.com")
	require.True(t, ok)
	token := tokenFromLink(t, mail.Text)

	verifyRes := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email", "", map[string]string{"token": token})
	require.Equal(t, http.StatusOK, verifyRes.StatusCode, verifyRes.Body)
	assert.Equal(t, "Email verified", verifyRes.Envelope.Message)

	var user models.User
	require.NoError(t, ts.DB.Where("email = ?", "v@test.com").First(&user).Error)
	assert.NotNil(t, user.EmailVerifiedAt)

	// Токен удален после использования
	replay := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-email", "", map[string]string{"token": token})
	assert.Equal(t, http.StatusBadRequest, replay.StatusCode)
	assert.Equal(t, "Invalid or expired verification link", replay.Envelope.Message)

	resend := ts.SendRequest(t, http.MethodPost, "/api/auth/resend-verify-email", "", map[string]string{"email": "v@test.com"})
	assert.Equal(t, http.StatusOK, resend.StatusCode)
	assert.Equal(t, "Email is already verified.", resend.Envelope.Message)

	unknown := ts.SendRequest(t, http.MethodPost, "/api/auth/resend-verify-email", "", map[string]string{"email": "ghost@test.com"})
	assert.Equal(t, http.StatusOK, unknown.StatusCode)
	assert.Equal(t, "If an account exists, a verification link was sent.", unknown.Envelope.Message)
	_, sent := ts.Email.Last("ghost@test.com")
	assert.False(t, sent)
}

func TestForgotAndResetPassword(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	helpers.CreateUser(t, ts.DB, "Reset", "reset@test.com", helpers.TestPassword, models.UserRoleUser)

	loginRes := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "reset@test.com",
		"password": helpers.TestPassword,
	})
	require.Equal(t, http.StatusOK, loginRes.StatusCode)
	oldCookie := loginRes.Cookie(handlers.RefreshCookieName)
	require.NotNil(t, oldCookie)

	unknown := ts.SendRequest(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "ghost@test.com"})
	assert.Equal(t, http.StatusOK, unknown.StatusCode)
	assert.Equal(t, "If an account exists, a password reset link was sent.", unknown.Envelope.Message)

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "reset@test.com"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, unknown.Envelope.Message, res.Envelope.Message)

	mail, ok := ts.Email.Last("reset@test.com")
	require.True(t, ok)
	token := tokenFromLink(t, mail.Text)

	resetRes := ts.SendRequest(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       token,
		"newPassword": "brand-new-password",
	})
	require.Equal(t, http.StatusOK, resetRes.StatusCode, resetRes.Body)
	assert.Equal(t, "Password has been reset. You can now log in.", resetRes.Envelope.Message)

	replay := ts.SendRequest(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":       token,
		"newPassword": "another-password",
	})
	assert.Equal(t, http.StatusBadRequest, replay.StatusCode)
	assert.Equal(t, "Invalid or expired password reset link", replay.Envelope.Message)

	// Все сессии отозваны
	refreshRes := ts.SendRequest(t, http.MethodPost, "/api/auth/refresh", "", nil, oldCookie)
	assert.Equal(t, http.StatusUnauthorized, refreshRes.StatusCode)

	oldLogin := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "reset@test.com",
		"password": helpers.TestPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, oldLogin.StatusCode)

	newLogin := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "reset@test.com",
		"password": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, newLogin.StatusCode)
}

func TestGoogleAuth(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	picture := "https://example.com/avatar.png"
	ts.Google.Add("good-token", &identity.GooglePayload{Email: "G@Test.com", Name: "Google User", Picture: &picture})

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/google", "", map[string]string{"idToken": "good-token"})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	assert.Equal(t, "Logged in", res.Envelope.Message)
	assert.NotNil(t, res.Cookie(handlers.RefreshCookieName))

	var first helpers.AuthResult
	res.DecodeData(t, &first)
	require.NotNil(t, first.User.Email)
	assert.Equal(t, "g@test.com", *first.User.Email)

	var user models.User
	require.NoError(t, ts.DB.First(&user, "id = ?", first.User.ID).Error)
	assert.Equal(t, models.ProviderGoogle, user.Provider)
	assert.NotNil(t, user.EmailVerifiedAt)

	// Повторный вход находит того же пользователя
	again := ts.SendRequest(t, http.MethodPost, "/api/auth/google", "", map[string]string{"idToken": "good-token"})
	require.Equal(t, http.StatusOK, again.StatusCode)
	var second helpers.AuthResult
	again.DecodeData(t, &second)
	assert.Equal(t, first.User.ID, second.User.ID)

	bad := ts.SendRequest(t, http.MethodPost, "/api/auth/google", "", map[string]string{"idToken": "forged"})
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
}

func TestGoogleAuth_NotConfigured(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, helpers.WithoutGoogle())

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/google", "", map[string]string{"idToken": "any"})
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, "Google sign-in is not configured", res.Envelope.Message)
}

func TestPhoneOTP(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	const phone = "+919876543210"

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/request-otp", "", map[string]string{"phone": phone})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	assert.Equal(t, "If this number is valid, an OTP was sent.", res.Envelope.Message)

	msg, ok := ts.SMS.Last(phone)
	require.True(t, ok)
	code := codeFromText(t, msg.Body)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	bad := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": phone, "code": wrong})
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Equal(t, "Invalid or expired code", bad.Envelope.Message)

	malformed := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": phone, "code": "12ab"})
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)

	okRes := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": phone, "code": code})
	require.Equal(t, http.StatusOK, okRes.StatusCode, okRes.Body)
	assert.NotNil(t, okRes.Cookie(handlers.RefreshCookieName))

	var result helpers.AuthResult
	okRes.DecodeData(t, &result)
	assert.NotEmpty(t, result.AccessToken)

	var user models.User
	require.NoError(t, ts.DB.First(&user, "id = ?", result.User.ID).Error)
	require.NotNil(t, user.Phone)
	assert.Equal(t, phone, *user.Phone)
	assert.NotNil(t, user.PhoneVerifiedAt)

	// Код одноразовый
	replay := ts.SendRequest(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]string{"phone": phone, "code": code})
	assert.Equal(t, http.StatusBadRequest, replay.StatusCode)
}

func TestPhoneOTP_NotConfigured(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, helpers.WithoutSMS())

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/request-otp", "", map[string]string{"phone": "+919876543210"})
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, "SMS is not configured", res.Envelope.Message)
}

type failingSMS struct{}

func (failingSMS) SendSMS(context.Context, string, string) error {
	return errors.New("twilio: account 42 suspended")
}

func TestPhoneOTP_ProviderFailureIsHidden(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, helpers.WithSMSSender(failingSMS{}))

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/request-otp", "", map[string]string{"phone": "+919876543210"})
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.False(t, res.Envelope.Success)
	assert.Equal(t, "Failed to send OTP. Please try again later.", res.Envelope.Message)
	assert.NotContains(t, res.Body, "suspended")
	assert.NotContains(t, res.Body, "twilio")
}
