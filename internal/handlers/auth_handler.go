package handlers

import (
	"net/http"
	"strings"
	"time"

	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/ratelimit"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const (
	RefreshCookieName = "refreshToken"
	RefreshCookiePath = "/api/auth"
)

// CookieConfig - параметры cookie с refresh-токеном
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

// RegisterRoutes регистрирует маршруты /auth; вся группа под лимитом по IP
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, guards Guards) {
	auth := rg.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(guards.Limiter, middleware.ByIP, ratelimit.AuthGroup))
	{
		auth.POST("/register", middleware.RateLimitMiddleware(guards.Limiter, middleware.ByIP, ratelimit.Register), h.Register)
		auth.POST("/login", middleware.RateLimitMiddleware(guards.Limiter, middleware.ByIP, ratelimit.Login), h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/me", guards.Auth, h.Me)

		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verify-email", h.ResendVerifyEmail)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)

		auth.POST("/google", h.GoogleAuth)
		auth.POST("/request-otp",
			middleware.RateLimitMiddleware(guards.Limiter, middleware.ByIP, ratelimit.OTPPerIP),
			middleware.RateLimitMiddleware(guards.Limiter, middleware.ByOTPIdentifier, ratelimit.OTPCooldown, ratelimit.OTPBurst, ratelimit.OTPDaily),
			h.RequestOTP,
		)
		auth.POST("/verify-otp", middleware.RateLimitMiddleware(guards.Limiter, middleware.ByIP, ratelimit.OTPVerify), h.VerifyOTP)
	}
}

// Register godoc
// @Summary Регистрация по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req, h.meta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	Created(c, "Registered", resp)
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учетные данные"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req, h.meta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	OK(c, "Logged in", resp)
}

// Logout - отзыв идемпотентен, cookie очищается всегда
// @Summary Выход: отзыв refresh-токена и очистка cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(h.GetDB(c), refreshTokenFromRequest(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	OK(c, "Logged out", nil)
}

// Refresh godoc
// @Summary Ротация refresh-токена
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	resp, err := h.authService.Refresh(h.GetDB(c), refreshTokenFromRequest(c), h.meta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	OK(c, "Token refreshed", resp)
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "OK", resp)
}

// ============================================
// Одноразовые токены
// ============================================

// VerifyEmail godoc
// @Summary Подтвердить email по ссылке
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmail(h.GetDB(c), req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Email verified", nil)
}

// ResendVerifyEmail godoc
// @Summary Повторно отправить письмо подтверждения
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.EmailRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/auth/resend-verify-email [post]
func (h *AuthHandler) ResendVerifyEmail(c *gin.Context) {
	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	msg, err := h.authService.ResendVerifyEmail(c.Request.Context(), h.GetDB(c), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, msg, nil)
}

// ForgotPassword godoc
// @Summary Запросить сброс пароля
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.EmailRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, services.MsgPasswordResetSent, nil)
}

// ResetPassword godoc
// @Summary Сбросить пароль по токену
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, services.MsgPasswordResetDone, nil)
}

// ============================================
// Google и SMS
// ============================================

// GoogleAuth godoc
// @Summary Вход через Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleAuthRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 503 {object} apperrors.ErrorResponse
// @Router /api/auth/google [post]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.GoogleAuth(c.Request.Context(), h.GetDB(c), req.IDToken, h.meta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	OK(c, "Logged in", resp)
}

// RequestOTP godoc
// @Summary Отправить SMS-код на телефон
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Failure 503 {object} apperrors.ErrorResponse
// @Router /api/auth/request-otp [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.RequestOTP(c.Request.Context(), h.GetDB(c), req.Phone); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, services.MsgOTPSent, nil)
}

// VerifyOTP godoc
// @Summary Вход по SMS-коду
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.VerifyOTP(h.GetDB(c), &req, h.meta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, resp.RefreshToken)
	OK(c, "Logged in", resp)
}

// ============================================
// Cookie
// ============================================

func (h *AuthHandler) meta(c *gin.Context) dto.AuthMeta {
	return dto.AuthMeta{DeviceInfo: c.Request.UserAgent()}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, token, int(h.cookie.MaxAge.Seconds()), RefreshCookiePath, "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookieName, "", -1, RefreshCookiePath, "", h.cookie.Secure, true)
}

// refreshTokenFromRequest - cookie, затем body.refreshToken; тело необязательно
func refreshTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(RefreshCookieName); err == nil && token != "" {
		return token
	}
	var body dto.RefreshTokenRequest
	if c.Request.ContentLength != 0 {
		_ = c.ShouldBindJSON(&body)
	}
	return strings.TrimSpace(body.RefreshToken)
}
