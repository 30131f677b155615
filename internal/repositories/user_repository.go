package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByPhone(db *gorm.DB, phone string) (*models.User, error)
	EmailTaken(db *gorm.DB, email, exceptUserID string) (bool, error)
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error
	MarkEmailVerified(db *gorm.DB, email string, at time.Time) error
	MarkPhoneVerified(db *gorm.DB, userID string, at time.Time) error
	ChangeEmail(db *gorm.DB, userID, email string, verifiedAt time.Time) error
	LinkGoogle(db *gorm.DB, userID string, avatarURL *string, verifiedAt time.Time) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

// Create - уникальность email/phone обеспечивает индекс БД
func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db, "email = ?", email)
}

func (r *userRepository) FindByPhone(db *gorm.DB, phone string) (*models.User, error) {
	return r.findOne(db, "phone = ?", phone)
}

func (r *userRepository) findOne(db *gorm.DB, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailTaken(db *gorm.DB, email, exceptUserID string) (bool, error) {
	var count int64
	q := db.Model(&models.User{}).Where("email = ?", email)
	if exceptUserID != "" {
		q = q.Where("id <> ?", exceptUserID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	return r.update(db, userID, map[string]interface{}{"password_hash": passwordHash})
}

// MarkEmailVerified - без ошибки, если пользователь уже удален
func (r *userRepository) MarkEmailVerified(db *gorm.DB, email string, at time.Time) error {
	return db.Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"email_verified_at": at, "updated_at": time.Now()}).Error
}

func (r *userRepository) MarkPhoneVerified(db *gorm.DB, userID string, at time.Time) error {
	return r.update(db, userID, map[string]interface{}{"phone_verified_at": at})
}

func (r *userRepository) ChangeEmail(db *gorm.DB, userID, email string, verifiedAt time.Time) error {
	err := r.update(db, userID, map[string]interface{}{"email": email, "email_verified_at": verifiedAt})
	if isUniqueViolation(err) {
		return ErrUserAlreadyExists
	}
	return err
}

// LinkGoogle помечает существующий аккаунт как подтвержденный через Google
func (r *userRepository) LinkGoogle(db *gorm.DB, userID string, avatarURL *string, verifiedAt time.Time) error {
	fields := map[string]interface{}{"email_verified_at": gorm.Expr("COALESCE(email_verified_at, ?)", verifiedAt)}
	if avatarURL != nil {
		fields["avatar_url"] = gorm.Expr("COALESCE(avatar_url, ?)", *avatarURL)
	}
	return r.update(db, userID, fields)
}

func (r *userRepository) update(db *gorm.DB, userID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
