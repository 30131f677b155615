package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

// ErrRefreshTokenNotFound - токен не найден или уже использован
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	FindByHash(db *gorm.DB, tokenHash string) (*models.RefreshToken, error)
	// DeleteByHash возвращает false, если строки уже нет
	DeleteByHash(db *gorm.DB, tokenHash string) (bool, error)
	DeleteByUserID(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByHash(db *gorm.DB, tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByHash(db *gorm.DB, tokenHash string) (bool, error) {
	result := db.Where("token_hash = ?", tokenHash).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *refreshTokenRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
