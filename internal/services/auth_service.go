package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/identity"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Ответы без раскрытия существования аккаунта
const (
	MsgVerificationSent   = "If an account exists, a verification link was sent."
	MsgAlreadyVerified    = "Email is already verified."
	MsgPasswordResetSent  = "If an account exists, a password reset link was sent."
	MsgPasswordResetDone  = "Password has been reset. You can now log in."
	MsgOTPSent            = "If this number is valid, an OTP was sent."
	defaultDisplayName    = "User"
	googleUnavailableText = "Google sign-in is temporarily unavailable"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest, meta dto.AuthMeta) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest, meta dto.AuthMeta) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	Refresh(db *gorm.DB, refreshToken string, meta dto.AuthMeta) (*dto.AuthResponse, error)
	Me(db *gorm.DB, userID string) (*dto.MeResponse, error)

	VerifyEmail(db *gorm.DB, token string) error
	ResendVerifyEmail(ctx context.Context, db *gorm.DB, email string) (string, error)
	ForgotPassword(ctx context.Context, db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error

	GoogleAuth(ctx context.Context, db *gorm.DB, idToken string, meta dto.AuthMeta) (*dto.AuthResponse, error)
	RequestOTP(ctx context.Context, db *gorm.DB, phone string) error
	VerifyOTP(db *gorm.DB, req *dto.VerifyOTPRequest, meta dto.AuthMeta) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        TokenService
	notifications NotificationService
	google        identity.GoogleVerifier // nil, если GOOGLE_CLIENT_ID не задан
	expiresIn     string
	now           func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens TokenService,
	notifications NotificationService,
	google identity.GoogleVerifier,
	expiresIn string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		notifications: notifications,
		google:        google,
		expiresIn:     expiresIn,
		now:           time.Now,
	}
}

// ============================================
// Email + пароль
// ============================================

func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest, meta dto.AuthMeta) (*dto.AuthResponse, error) {
	email := NormalizeEmail(req.Email)

	_, err := s.userRepo.FindByEmail(db, email)
	if err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        &email,
		PasswordHash: &hash,
		Name:         strings.TrimSpace(req.Name),
		Provider:     models.ProviderEmail,
		Role:         models.UserRoleUser,
	}

	var resp *dto.AuthResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		var err error
		resp, err = s.issueSession(tx, user, meta)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Письмо не блокирует регистрацию
	s.sendVerification(ctx, db, email)

	return resp, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest, meta dto.AuthMeta) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	// Аккаунты Google/телефона без пароля отвечают так же, как неверный пароль
	if user.PasswordHash == nil || !auth.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(db, user, meta)
}

// Logout идемпотентен: неизвестный токен не ошибка
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	_, err := s.tokens.RevokeRefreshToken(db, refreshToken)
	return err
}

func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string, meta dto.AuthMeta) (*dto.AuthResponse, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrRefreshTokenRequired
	}

	session, err := s.tokens.VerifyAndRotateRefreshToken(db, refreshToken, meta.DeviceInfo)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(db, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  accessToken,
		ExpiresIn:    s.expiresIn,
		RefreshToken: session.NewRefreshToken,
	}, nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.MeResponse{User: dto.NewUserResponse(user)}, nil
}

// ============================================
// Подтверждение email и сброс пароля
// ============================================

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	email, ok, err := s.tokens.ConsumeEmailVerifyToken(db, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidVerifyLink
	}

	if err := s.userRepo.MarkEmailVerified(db, email, s.now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ResendVerifyEmail возвращает сообщение для ответа: неизвестный email неотличим от существующего
func (s *AuthServiceImpl) ResendVerifyEmail(ctx context.Context, db *gorm.DB, email string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return MsgVerificationSent, nil
		}
		return "", apperrors.InternalError(err)
	}
	if user.EmailVerifiedAt != nil {
		return MsgAlreadyVerified, nil
	}

	s.sendVerification(ctx, db, email)
	return MsgVerificationSent, nil
}

func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, email string) error {
	email = NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	// Вход только через Google/телефон: сбрасывать нечего
	if user.PasswordHash == nil {
		return nil
	}

	raw, err := s.tokens.CreatePasswordResetToken(db, email)
	if err != nil {
		return err
	}
	if err := s.notifications.SendPasswordResetEmail(ctx, email, raw); err != nil {
		logger.CtxWithError(ctx, "Failed to send password reset email", err, "email", email)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		email, ok, err := s.tokens.ConsumePasswordResetToken(tx, strings.TrimSpace(req.Token))
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidResetLink
		}

		user, err := s.userRepo.FindByEmail(tx, email)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrInvalidResetLink
			}
			return apperrors.InternalError(err)
		}

		if err := s.userRepo.UpdatePassword(tx, user.ID, hash); err != nil {
			return apperrors.InternalError(err)
		}
		// Все сессии завершаются после смены пароля
		return s.tokens.RevokeAllRefreshTokens(tx, user.ID)
	})
}

// ============================================
// Google и телефон
// ============================================

func (s *AuthServiceImpl) GoogleAuth(ctx context.Context, db *gorm.DB, idToken string, meta dto.AuthMeta) (*dto.AuthResponse, error) {
	if s.google == nil {
		return nil, apperrors.ErrGoogleNotConfigured
	}

	payload, err := s.google.Verify(ctx, idToken)
	if err != nil {
		var invalid *identity.InvalidTokenError
		switch {
		case errors.As(err, &invalid):
			return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", invalid.Reason, apperrors.ErrInvalidGoogleToken.HTTPCode)
		case errors.Is(err, identity.ErrGoogleNotConfigured):
			return nil, apperrors.ErrGoogleNotConfigured
		default:
			return nil, apperrors.ErrExternalService(err, "auth", googleUnavailableText)
		}
	}

	user, err := s.findOrCreateGoogleUser(db, payload)
	if err != nil {
		return nil, err
	}
	return s.issueSession(db, user, meta)
}

func (s *AuthServiceImpl) findOrCreateGoogleUser(db *gorm.DB, payload *identity.GooglePayload) (*models.User, error) {
	email := NormalizeEmail(payload.Email)
	now := s.now()

	user, err := s.userRepo.FindByEmail(db, email)
	if err == nil {
		if err := s.userRepo.LinkGoogle(db, user.ID, payload.Picture, now); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return s.reload(db, user.ID)
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		name = defaultDisplayName
	}
	user = &models.User{
		Email:           &email,
		Name:            name,
		AvatarURL:       payload.Picture,
		Provider:        models.ProviderGoogle,
		Role:            models.UserRoleUser,
		EmailVerifiedAt: &now,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		// Параллельный вход тем же аккаунтом уже создал пользователя
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return s.findByEmail(db, email)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) RequestOTP(ctx context.Context, db *gorm.DB, phone string) error {
	if !s.notifications.SMSConfigured() {
		return apperrors.ErrSMSNotConfigured
	}

	phone = NormalizePhone(phone)
	code, err := s.tokens.CreatePhoneOTP(db, phone)
	if err != nil {
		return err
	}
	if err := s.notifications.SendPhoneOTP(ctx, phone, code); err != nil {
		if errors.Is(err, apperrors.ErrSMSNotConfigured) {
			return err
		}
		// Ошибку провайдера только в лог, клиенту - общий ответ
		logger.CtxWithError(ctx, "Failed to send phone OTP", err, "phone", phone)
		return apperrors.ErrOTPDeliveryFailed
	}
	return nil
}

func (s *AuthServiceImpl) VerifyOTP(db *gorm.DB, req *dto.VerifyOTPRequest, meta dto.AuthMeta) (*dto.AuthResponse, error) {
	phone := NormalizePhone(req.Phone)

	ok, err := s.tokens.ConsumePhoneOTP(db, phone, req.Code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidOTP
	}

	user, err := s.findOrCreatePhoneUser(db, phone)
	if err != nil {
		return nil, err
	}
	return s.issueSession(db, user, meta)
}

func (s *AuthServiceImpl) findOrCreatePhoneUser(db *gorm.DB, phone string) (*models.User, error) {
	now := s.now()

	user, err := s.userRepo.FindByPhone(db, phone)
	if err == nil {
		if user.PhoneVerifiedAt == nil {
			if err := s.userRepo.MarkPhoneVerified(db, user.ID, now); err != nil {
				return nil, apperrors.InternalError(err)
			}
			user.PhoneVerifiedAt = &now
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user = &models.User{
		Phone:           &phone,
		Name:            defaultDisplayName,
		Provider:        models.ProviderPhone,
		Role:            models.UserRoleUser,
		PhoneVerifiedAt: &now,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			existing, findErr := s.userRepo.FindByPhone(db, phone)
			if findErr != nil {
				return nil, apperrors.InternalError(findErr)
			}
			return existing, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// ============================================
// Вспомогательные
// ============================================

// issueSession выпускает пару access/refresh для пользователя
func (s *AuthServiceImpl) issueSession(db *gorm.DB, user *models.User, meta dto.AuthMeta) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(db, user.ID, meta.DeviceInfo)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  accessToken,
		ExpiresIn:    s.expiresIn,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthServiceImpl) sendVerification(ctx context.Context, db *gorm.DB, email string) {
	raw, err := s.tokens.CreateEmailVerifyToken(db, email)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to create verification token", err, "email", email)
		return
	}
	if err := s.notifications.SendVerificationEmail(ctx, email, raw); err != nil {
		logger.CtxWithError(ctx, "Failed to send verification email", err, "email", email)
	}
}

func (s *AuthServiceImpl) reload(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) findByEmail(db *gorm.DB, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
