package services

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Время жизни одноразовых токенов
const (
	EmailVerifyTTL    = 24 * time.Hour
	PasswordResetTTL  = time.Hour
	PhoneOTPTTL       = 5 * time.Minute
	EmailChangeOTPTTL = 10 * time.Minute
)

var errRefreshRejected = errors.New("refresh token rejected")

// RotatedSession - результат ротации refresh-токена
type RotatedSession struct {
	UserID          string
	NewRefreshToken string
}

// TokenService выпускает и проверяет access/refresh токены и одноразовые коды.
// В БД хранятся только SHA-256 хеши.
type TokenService interface {
	IssueAccessToken(userID string, email *string) (string, error)
	VerifyAccessToken(token string) (*auth.Claims, error)
	AccessTTL() time.Duration

	IssueRefreshToken(db *gorm.DB, userID, deviceInfo string) (string, error)
	// VerifyAndRotateRefreshToken возвращает nil, если токен отсутствует, истек или уже использован
	VerifyAndRotateRefreshToken(db *gorm.DB, rawToken, deviceInfo string) (*RotatedSession, error)
	RevokeRefreshToken(db *gorm.DB, rawToken string) (bool, error)
	RevokeAllRefreshTokens(db *gorm.DB, userID string) error

	CreateEmailVerifyToken(db *gorm.DB, email string) (string, error)
	ConsumeEmailVerifyToken(db *gorm.DB, rawToken string) (string, bool, error)
	CreatePasswordResetToken(db *gorm.DB, email string) (string, error)
	ConsumePasswordResetToken(db *gorm.DB, rawToken string) (string, bool, error)
	CreatePhoneOTP(db *gorm.DB, phone string) (string, error)
	ConsumePhoneOTP(db *gorm.DB, phone, code string) (bool, error)
	CreateEmailChangeOTP(db *gorm.DB, userID, newEmail string) (string, error)
	ConsumeEmailChangeOTP(db *gorm.DB, userID, newEmail, code string) (bool, error)

	// CleanupExpired удаляет истекшие refresh и одноразовые токены
	CleanupExpired(db *gorm.DB) (int64, error)
}

type TokenServiceImpl struct {
	jwt              *auth.JWTManager
	refreshTTL       time.Duration
	refreshTokenRepo repositories.RefreshTokenRepository
	authTokenRepo    repositories.AuthTokenRepository
	now              func() time.Time
}

func NewTokenService(
	jwt *auth.JWTManager,
	refreshTTL time.Duration,
	refreshTokenRepo repositories.RefreshTokenRepository,
	authTokenRepo repositories.AuthTokenRepository,
) TokenService {
	return &TokenServiceImpl{
		jwt:              jwt,
		refreshTTL:       refreshTTL,
		refreshTokenRepo: refreshTokenRepo,
		authTokenRepo:    authTokenRepo,
		now:              time.Now,
	}
}

// NormalizeEmail - идентификатор email во всех таблицах
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone - телефон хранится как есть, без пробелов по краям
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

func emailChangeIdentifier(userID, newEmail string) string {
	return userID + ":" + NormalizeEmail(newEmail)
}

// ============================================
// Access token
// ============================================

func (s *TokenServiceImpl) IssueAccessToken(userID string, email *string) (string, error) {
	e := ""
	if email != nil {
		e = *email
	}
	token, err := s.jwt.Issue(userID, e)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return token, nil
}

func (s *TokenServiceImpl) VerifyAccessToken(token string) (*auth.Claims, error) {
	claims, err := s.jwt.Verify(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.WithError(err)
	}
	return claims, nil
}

func (s *TokenServiceImpl) AccessTTL() time.Duration {
	return s.jwt.TTL()
}

// ============================================
// Refresh token
// ============================================

func (s *TokenServiceImpl) IssueRefreshToken(db *gorm.DB, userID, deviceInfo string) (string, error) {
	raw, err := auth.GenerateSecureToken()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: auth.HashToken(raw),
		ExpiresAt: s.now().Add(s.refreshTTL),
	}
	if deviceInfo != "" {
		token.DeviceInfo = &deviceInfo
	}

	if err := s.refreshTokenRepo.Create(db, token); err != nil {
		return "", apperrors.InternalError(err)
	}
	return raw, nil
}

// VerifyAndRotateRefreshToken - удаление старой строки и выпуск новой в одной транзакции.
// Удаление, затронувшее 0 строк, значит токен уже забрал параллельный запрос.
func (s *TokenServiceImpl) VerifyAndRotateRefreshToken(db *gorm.DB, rawToken, deviceInfo string) (*RotatedSession, error) {
	if rawToken == "" {
		return nil, nil
	}
	hash := auth.HashToken(rawToken)

	var rotated *RotatedSession
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := s.refreshTokenRepo.FindByHash(tx, hash)
		if err != nil {
			if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return errRefreshRejected
			}
			return err
		}

		deleted, err := s.refreshTokenRepo.DeleteByHash(tx, hash)
		if err != nil {
			return err
		}
		if !deleted || !current.ExpiresAt.After(s.now()) {
			return errRefreshRejected
		}

		newToken, err := s.IssueRefreshToken(tx, current.UserID, deviceInfo)
		if err != nil {
			return err
		}
		rotated = &RotatedSession{UserID: current.UserID, NewRefreshToken: newToken}
		return nil
	})

	if errors.Is(err, errRefreshRejected) {
		return nil, nil
	}
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}
	return rotated, nil
}

func (s *TokenServiceImpl) RevokeRefreshToken(db *gorm.DB, rawToken string) (bool, error) {
	if rawToken == "" {
		return false, nil
	}
	deleted, err := s.refreshTokenRepo.DeleteByHash(db, auth.HashToken(rawToken))
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return deleted, nil
}

func (s *TokenServiceImpl) RevokeAllRefreshTokens(db *gorm.DB, userID string) error {
	if err := s.refreshTokenRepo.DeleteByUserID(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ============================================
// Одноразовые токены
// ============================================

func (s *TokenServiceImpl) CreateEmailVerifyToken(db *gorm.DB, email string) (string, error) {
	return s.createLinkToken(db, models.TokenTypeEmailVerify, NormalizeEmail(email), EmailVerifyTTL)
}

func (s *TokenServiceImpl) ConsumeEmailVerifyToken(db *gorm.DB, rawToken string) (string, bool, error) {
	return s.consume(db, models.TokenTypeEmailVerify, rawToken, "")
}

func (s *TokenServiceImpl) CreatePasswordResetToken(db *gorm.DB, email string) (string, error) {
	return s.createLinkToken(db, models.TokenTypePasswordReset, NormalizeEmail(email), PasswordResetTTL)
}

func (s *TokenServiceImpl) ConsumePasswordResetToken(db *gorm.DB, rawToken string) (string, bool, error) {
	return s.consume(db, models.TokenTypePasswordReset, rawToken, "")
}

func (s *TokenServiceImpl) CreatePhoneOTP(db *gorm.DB, phone string) (string, error) {
	return s.createOTP(db, models.TokenTypePhoneOTP, NormalizePhone(phone), PhoneOTPTTL)
}

func (s *TokenServiceImpl) ConsumePhoneOTP(db *gorm.DB, phone, code string) (bool, error) {
	_, ok, err := s.consume(db, models.TokenTypePhoneOTP, strings.TrimSpace(code), NormalizePhone(phone))
	return ok, err
}

func (s *TokenServiceImpl) CreateEmailChangeOTP(db *gorm.DB, userID, newEmail string) (string, error) {
	return s.createOTP(db, models.TokenTypeEmailChangeOTP, emailChangeIdentifier(userID, newEmail), EmailChangeOTPTTL)
}

func (s *TokenServiceImpl) ConsumeEmailChangeOTP(db *gorm.DB, userID, newEmail, code string) (bool, error) {
	_, ok, err := s.consume(db, models.TokenTypeEmailChangeOTP, strings.TrimSpace(code), emailChangeIdentifier(userID, newEmail))
	return ok, err
}

func (s *TokenServiceImpl) createLinkToken(db *gorm.DB, tokenType models.AuthTokenType, identifier string, ttl time.Duration) (string, error) {
	raw, err := auth.GenerateSecureToken()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return raw, s.store(db, tokenType, identifier, raw, ttl)
}

func (s *TokenServiceImpl) createOTP(db *gorm.DB, tokenType models.AuthTokenType, identifier string, ttl time.Duration) (string, error) {
	code, err := auth.GenerateOTP()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return code, s.store(db, tokenType, identifier, code, ttl)
}

func (s *TokenServiceImpl) store(db *gorm.DB, tokenType models.AuthTokenType, identifier, secret string, ttl time.Duration) error {
	token := &models.AuthToken{
		Type:       tokenType,
		Identifier: identifier,
		TokenHash:  auth.HashToken(secret),
		ExpiresAt:  s.now().Add(ttl),
	}
	if err := s.authTokenRepo.Create(db, token); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// consume - точный поиск по хешу и типу (и идентификатору), удаление при успехе
func (s *TokenServiceImpl) consume(db *gorm.DB, tokenType models.AuthTokenType, secret, identifier string) (string, bool, error) {
	if secret == "" {
		return "", false, nil
	}

	token, err := s.authTokenRepo.FindActive(db, tokenType, auth.HashToken(secret), identifier, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrAuthTokenNotFound) {
			return "", false, nil
		}
		return "", false, apperrors.InternalError(err)
	}

	consumed, err := s.authTokenRepo.Consume(db, token.ID)
	if err != nil {
		return "", false, apperrors.InternalError(err)
	}
	if !consumed {
		return "", false, nil
	}
	return token.Identifier, true, nil
}

func (s *TokenServiceImpl) CleanupExpired(db *gorm.DB) (int64, error) {
	now := s.now()

	refreshed, err := s.refreshTokenRepo.DeleteExpired(db, now)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	oneTime, err := s.authTokenRepo.DeleteExpired(db, now)
	if err != nil {
		return refreshed, apperrors.InternalError(err)
	}
	return refreshed + oneTime, nil
}
