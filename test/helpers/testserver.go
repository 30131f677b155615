package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard_backend/internal/app"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/identity"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/ratelimit"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/sms"
	"jobboard_backend/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// TestServer - httptest-сервер поверх SQLite и подменных внешних сервисов
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Config   *config.Config
	Services *services.ServiceContainer
	Email    *email.LogProvider
	SMS      *sms.MemorySender
	Google   *FakeGoogle
}

// ServerOption меняет конфигурацию или зависимости до сборки роутера
type ServerOption func(cfg *config.Config, deps *app.Dependencies)

// WithLimiter включает ограничение частоты запросов
func WithLimiter(l ratelimit.Limiter) ServerOption {
	return func(_ *config.Config, deps *app.Dependencies) { deps.Limiter = l }
}

// WithoutSMS - SMS не настроены
func WithoutSMS() ServerOption {
	return func(_ *config.Config, deps *app.Dependencies) { deps.SMS = nil }
}

// WithSMSSender подменяет отправителя SMS
func WithSMSSender(sender sms.Sender) ServerOption {
	return func(_ *config.Config, deps *app.Dependencies) { deps.SMS = sender }
}

// WithSwagger включает /swagger
func WithSwagger() ServerOption {
	return func(cfg *config.Config, _ *app.Dependencies) { cfg.Server.EnableSwagger = true }
}

// WithoutGoogle - Google sign-in не настроен
func WithoutGoogle() ServerOption {
	return func(_ *config.Config, deps *app.Dependencies) { deps.Google = nil }
}

// TestConfig - конфигурация тестового окружения
func TestConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.ShutdownTimeout = "1s"
	cfg.Database.ConnMaxLifetime = "30m"
	cfg.Database.SlowQuery = "200ms"
	cfg.JWT.AccessSecret = "test-access-secret-with-enough-length"
	cfg.JWT.RefreshSecret = "test-refresh-secret-with-enough-length"
	cfg.JWT.AccessTTL = "15m"
	cfg.JWT.RefreshTTL = "7d"
	cfg.CORS.Origins = []string{"http://localhost:3000"}
	cfg.FrontendURL = "http://localhost:3000"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/uploads"
	cfg.Upload.MaxResumeSize = 5 * 1024 * 1024
	cfg.RateLimit.Disabled = true
	cfg.Workers.TokenCleanupInterval = "1h"
	return cfg
}

func NewTestServer(t *testing.T, opts ...ServerOption) *TestServer {
	t.Helper()

	cfg := TestConfig(t)
	db := NewTestDB(t)

	fileStorage, err := storage.NewStorage(context.Background(), storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	require.NoError(t, err)

	mail := email.NewLogProvider(nil)
	smsSender := sms.NewMemorySender()
	google := NewFakeGoogle()

	deps := &app.Dependencies{
		Storage: fileStorage,
		Email:   mail,
		SMS:     smsSender,
		Google:  google,
		Limiter: ratelimit.Noop{},
	}
	for _, opt := range opts {
		opt(cfg, deps)
	}

	router, container := app.SetupRouter(cfg, db, deps)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       db,
		Config:   cfg,
		Services: container,
		Email:    mail,
		SMS:      smsSender,
		Google:   google,
	}
}

// Response - ответ с разобранным конвертом
type Response struct {
	StatusCode int
	Header     http.Header
	Cookies    []*http.Cookie
	Body       string
	Envelope   Envelope
}

// Envelope - общий конверт успешных и ошибочных ответов
type Envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []string        `json:"errors"`
}

// DecodeData разбирает поле data в out
func (r *Response) DecodeData(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Envelope.Data, out), "data: %s", r.Body)
}

// Cookie - cookie из Set-Cookie ответа
func (r *Response) Cookie(name string) *http.Cookie {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SendRequest отправляет JSON-запрос; token добавляется как Bearer
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}, cookies ...*http.Cookie) *Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, token, cookies)
}

// SendMultipart отправляет файл в поле field
func (ts *TestServer) SendMultipart(t *testing.T, path, token, field, fileName, contentType string, content []byte) *Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + fileName + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return ts.do(t, req, token, nil)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string, cookies []*http.Cookie) *Response {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	out := &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Cookies:    res.Cookies(),
		Body:       string(raw),
	}
	_ = json.Unmarshal(raw, &out.Envelope)
	return out
}

// AuthResult - данные ответа register/login
type AuthResult struct {
	User struct {
		ID    string  `json:"id"`
		Email *string `json:"email"`
		Role  string  `json:"role"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   string `json:"expiresIn"`
}

// CreateAndLoginUser создает пользователя в БД и логинит его через API
func (ts *TestServer) CreateAndLoginUser(t *testing.T, name, emailAddr string, role models.UserRole) (string, *models.User) {
	t.Helper()

	user := CreateUser(t, ts.DB, name, emailAddr, TestPassword, role)

	res := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    emailAddr,
		"password": TestPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+res.Body)

	var auth AuthResult
	res.DecodeData(t, &auth)
	require.NotEmpty(t, auth.AccessToken)
	return auth.AccessToken, user
}

// ============================================
// Google
// ============================================

// FakeGoogle принимает id_token из заранее заданного набора
type FakeGoogle struct {
	tokens map[string]*identity.GooglePayload
}

func NewFakeGoogle() *FakeGoogle {
	return &FakeGoogle{tokens: make(map[string]*identity.GooglePayload)}
}

func (g *FakeGoogle) Add(idToken string, payload *identity.GooglePayload) {
	g.tokens[idToken] = payload
}

func (g *FakeGoogle) Verify(_ context.Context, idToken string) (*identity.GooglePayload, error) {
	if p, ok := g.tokens[idToken]; ok {
		return p, nil
	}
	return nil, &identity.InvalidTokenError{Reason: "Invalid Google token"}
}
