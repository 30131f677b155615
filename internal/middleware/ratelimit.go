package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/ratelimit"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxIdentifierBody - для поиска phone/email тело читается не больше этого размера
const maxIdentifierBody = 64 << 10

// KeyFunc возвращает ключ лимита для запроса
type KeyFunc func(c *gin.Context) string

// ByIP - ключ по IP клиента
func ByIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByOTPIdentifier - телефон/email из тела запроса; без него используется IP
func ByOTPIdentifier(c *gin.Context) string {
	if id := bodyIdentifier(c); id != "" {
		return id
	}
	return c.ClientIP()
}

// RateLimitMiddleware проверяет правила по порядку; первое сработавшее отдает 429.
// Ошибка хранилища лимитов не блокирует запрос.
func RateLimitMiddleware(limiter ratelimit.Limiter, key KeyFunc, rules ...ratelimit.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		for _, rule := range rules {
			allowed, err := limiter.Allow(c.Request.Context(), rule, k)
			if err != nil {
				logger.CtxWithError(c.Request.Context(), "Rate limiter failed", err, "rule", rule.Name)
				continue
			}
			if !allowed {
				logger.CtxWarn(c.Request.Context(), "Rate limit exceeded", "rule", rule.Name, "client_ip", c.ClientIP())
				apperrors.HandleError(c, apperrors.NewRateLimitedError(rule.Message))
				return
			}
		}
		c.Next()
	}
}

// bodyIdentifier читает phone/email/identifier и возвращает тело обратно в запрос
func bodyIdentifier(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdentifierBody))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		Identifier string `json:"identifier"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, v := range []string{body.Phone, body.Email, body.Identifier} {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			return v
		}
	}
	return ""
}
