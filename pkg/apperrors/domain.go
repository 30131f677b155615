package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrAlreadyExists - уникальный индекс отклонил запись (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrExternalService - сбой внешнего провайдера (Google, SMS, почта)
func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusBadGateway)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth ---

var ErrEmailAlreadyExists = New(CodeConflict, "auth", "Email already registered", http.StatusConflict)

var ErrEmailTaken = New(CodeConflict, "profile", "This email is already registered", http.StatusConflict)

// ErrInvalidCredentials - одинаковый ответ для неизвестного email и неверного пароля
var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

var ErrAuthRequired = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)

var ErrRefreshTokenRequired = New(CodeUnauthorized, "auth", "Refresh token required", http.StatusUnauthorized)

var ErrInvalidRefreshToken = New(CodeInvalidToken, "auth", "Invalid or expired refresh token", http.StatusUnauthorized)

var ErrUserNotFound = New(CodeNotFound, "auth", "User not found", http.StatusNotFound)

var ErrInvalidVerifyLink = New(CodeInvalidToken, "auth", "Invalid or expired verification link", http.StatusBadRequest)

var ErrInvalidResetLink = New(CodeInvalidToken, "auth", "Invalid or expired password reset link", http.StatusBadRequest)

var ErrInvalidOTP = New(CodeInvalidToken, "auth", "Invalid or expired code", http.StatusBadRequest)

var ErrInvalidEmailOTP = New(CodeInvalidToken, "profile", "Invalid or expired OTP", http.StatusBadRequest)

var ErrInvalidGoogleToken = New(CodeInvalidToken, "auth", "Invalid Google token", http.StatusUnauthorized)

var ErrGoogleNotConfigured = New(CodeUnavailable, "auth", "Google sign-in is not configured", http.StatusServiceUnavailable)

var ErrSMSNotConfigured = New(CodeUnavailable, "auth", "SMS is not configured", http.StatusServiceUnavailable)

var ErrOTPDeliveryFailed = New(CodeExternalServiceError, "auth", "Failed to send OTP. Please try again later.", http.StatusBadGateway)

// --- Access ---

var ErrForbidden = New(CodeForbidden, "auth", "Forbidden", http.StatusForbidden)

var ErrAdminRequired = New(CodeForbidden, "admin", "Admin access required", http.StatusForbidden)

var ErrTooManyRequests = New(CodeRateLimited, "rate_limit", "Too many requests, please try again later.", http.StatusTooManyRequests)

// --- Profile ---

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found. Complete onboarding first.", http.StatusNotFound)

var ErrEmploymentNotFound = New(CodeNotFound, "profile", "Employment not found", http.StatusNotFound)

var ErrEducationNotFound = New(CodeNotFound, "profile", "Education not found", http.StatusNotFound)

var ErrProjectNotFound = New(CodeNotFound, "profile", "Project not found", http.StatusNotFound)

var ErrItSkillNotFound = New(CodeNotFound, "profile", "IT skill not found", http.StatusNotFound)

var ErrResumeNotFound = New(CodeNotFound, "profile", "No resume found", http.StatusNotFound)

var ErrResumeRequired = New(CodeValidationFailed, "profile", "Resume file is required", http.StatusBadRequest)

var ErrInvalidResumeType = New(CodeValidationFailed, "profile", "Only PDF, DOC, DOCX files are allowed", http.StatusBadRequest)

var ErrResumeTooLarge = New(CodeValidationFailed, "profile", "File size exceeds the 5MB limit", http.StatusBadRequest)

// --- Jobs ---

var ErrJobNotFound = New(CodeNotFound, "jobs", "Job not found", http.StatusNotFound)

var ErrSavedJobNotFound = New(CodeNotFound, "jobs", "Saved job not found", http.StatusNotFound)

var ErrAlreadyApplied = New(CodeConflict, "jobs", "Already applied to this job", http.StatusConflict)

var ErrApplicationNotFound = New(CodeNotFound, "jobs", "Application not found", http.StatusNotFound)
