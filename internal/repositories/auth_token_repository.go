package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAuthTokenNotFound = errors.New("auth token not found")

// AuthTokenRepository - одноразовые токены (email verify, reset, OTP)
type AuthTokenRepository interface {
	Create(db *gorm.DB, token *models.AuthToken) error
	// FindActive ищет неистекший токен; identifier == "" означает поиск только по хешу
	FindActive(db *gorm.DB, tokenType models.AuthTokenType, tokenHash, identifier string, now time.Time) (*models.AuthToken, error)
	// Consume удаляет строку; false означает, что ее уже забрал другой запрос
	Consume(db *gorm.DB, id uint) (bool, error)
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type authTokenRepository struct{}

func NewAuthTokenRepository() AuthTokenRepository {
	return &authTokenRepository{}
}

func (r *authTokenRepository) Create(db *gorm.DB, token *models.AuthToken) error {
	return db.Create(token).Error
}

func (r *authTokenRepository) FindActive(db *gorm.DB, tokenType models.AuthTokenType, tokenHash, identifier string, now time.Time) (*models.AuthToken, error) {
	q := db.Where("type = ? AND token_hash = ? AND expires_at > ?", tokenType, tokenHash, now)
	if identifier != "" {
		q = q.Where("identifier = ?", identifier)
	}

	var token models.AuthToken
	if err := q.Order("id DESC").First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) Consume(db *gorm.DB, id uint) (bool, error) {
	result := db.Delete(&models.AuthToken{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *authTokenRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.AuthToken{})
	return result.RowsAffected, result.Error
}
