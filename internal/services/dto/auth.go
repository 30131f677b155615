package dto

import (
	"time"

	"jobboard_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest - токен из тела, если cookie нет
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// EmailRequest - resend-verify-email и forgot-password
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=20"`
	Code  string `json:"code" validate:"required,otp-code"`
}

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID              string              `json:"id"`
	Email           *string             `json:"email"`
	Phone           *string             `json:"phone"`
	Name            string              `json:"name"`
	AvatarURL       *string             `json:"avatarUrl"`
	Role            models.UserRole     `json:"role"`
	Provider        models.AuthProvider `json:"provider"`
	EmailVerifiedAt *time.Time          `json:"emailVerifiedAt"`
	PhoneVerifiedAt *time.Time          `json:"phoneVerifiedAt"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Phone:           u.Phone,
		Name:            u.Name,
		AvatarURL:       u.AvatarURL,
		Role:            u.Role,
		Provider:        u.Provider,
		EmailVerifiedAt: u.EmailVerifiedAt,
		PhoneVerifiedAt: u.PhoneVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// AuthResponse - тело ответа; refresh-токен уходит только в cookie
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	ExpiresIn    string       `json:"expiresIn"`
	RefreshToken string       `json:"-"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

// AuthMeta - данные запроса, которые пишутся в сессию
type AuthMeta struct {
	DeviceInfo string
}
