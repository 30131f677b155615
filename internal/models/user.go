package models

import (
	"time"
)

type User struct {
	UUIDModel
	Email           *string      `gorm:"size:255;uniqueIndex" json:"email"`
	Phone           *string      `gorm:"size:20;uniqueIndex" json:"phone"`
	PasswordHash    *string      `gorm:"size:255" json:"-"`
	Name            string       `gorm:"size:255;not null" json:"name"`
	AvatarURL       *string      `gorm:"size:512" json:"avatarUrl"`
	EmailVerifiedAt *time.Time   `json:"emailVerifiedAt"`
	PhoneVerifiedAt *time.Time   `json:"phoneVerifiedAt"`
	Provider        AuthProvider `gorm:"type:varchar(20);not null;default:'email'" json:"provider"`
	Role            UserRole     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	Profile       *Profile       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// EmailValue возвращает email или пустую строку
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// RefreshToken хранит только SHA-256 хеш, сырое значение отдается клиенту один раз
type RefreshToken struct {
	SerialModel
	UserID     string    `gorm:"type:uuid;not null;index"`
	TokenHash  string    `gorm:"size:64;not null;uniqueIndex"`
	DeviceInfo *string   `gorm:"size:512"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// AuthToken - одноразовый токен (верификация email, сброс пароля, OTP)
type AuthToken struct {
	SerialModel
	Type       AuthTokenType `gorm:"type:varchar(30);not null;index:idx_auth_tokens_lookup"`
	Identifier string        `gorm:"size:320;not null;index:idx_auth_tokens_lookup"`
	TokenHash  string        `gorm:"size:64;not null;index"`
	ExpiresAt  time.Time     `gorm:"not null;index"`
}
