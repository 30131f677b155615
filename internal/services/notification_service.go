package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/sms"
	"jobboard_backend/pkg/apperrors"
)

// NotificationService отправляет письма и SMS пользователям
type NotificationService interface {
	SendVerificationEmail(ctx context.Context, to, rawToken string) error
	SendPasswordResetEmail(ctx context.Context, to, rawToken string) error
	SendEmailChangeOTP(ctx context.Context, to, code string) error
	SendPhoneOTP(ctx context.Context, phone, code string) error
	SMSConfigured() bool
}

type NotificationServiceImpl struct {
	provider    email.Provider
	renderer    email.TemplateRenderer
	smsSender   sms.Sender
	frontendURL string
}

// NewNotificationService - smsSender == nil означает, что SMS не настроены
func NewNotificationService(provider email.Provider, renderer email.TemplateRenderer, smsSender sms.Sender, frontendURL string) NotificationService {
	return &NotificationServiceImpl{
		provider:    provider,
		renderer:    renderer,
		smsSender:   smsSender,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

func (s *NotificationServiceImpl) SMSConfigured() bool {
	return s.smsSender != nil
}

func (s *NotificationServiceImpl) link(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", s.frontendURL, path, url.QueryEscape(token))
}

func (s *NotificationServiceImpl) SendVerificationEmail(ctx context.Context, to, rawToken string) error {
	link := s.link("/verify-email", rawToken)
	return s.send(ctx, to, "Verify your email - SortOut Jobs", email.TemplateVerifyEmail,
		email.TemplateData{"Link": link}, "Verify email link: "+link)
}

func (s *NotificationServiceImpl) SendPasswordResetEmail(ctx context.Context, to, rawToken string) error {
	link := s.link("/reset-password", rawToken)
	return s.send(ctx, to, "Reset your password - SortOut Jobs", email.TemplatePasswordReset,
		email.TemplateData{"Link": link}, "Password reset link: "+link)
}

func (s *NotificationServiceImpl) SendEmailChangeOTP(ctx context.Context, to, code string) error {
	return s.send(ctx, to, "Verify your new email - SortOut Jobs", email.TemplateEmailChangeOTP,
		email.TemplateData{"Code": code}, "Email change OTP: "+code)
}

func (s *NotificationServiceImpl) SendPhoneOTP(ctx context.Context, phone, code string) error {
	if s.smsSender == nil {
		return apperrors.ErrSMSNotConfigured
	}
	if err := s.smsSender.SendSMS(ctx, phone, sms.OTPMessage(code)); err != nil {
		return apperrors.ErrExternalService(err, "auth", "Failed to send OTP")
	}
	return nil
}

func (s *NotificationServiceImpl) send(ctx context.Context, to, subject, templateName string, data email.TemplateData, text string) error {
	html, err := s.renderer.Render(templateName, data)
	if err != nil {
		return apperrors.InternalError(err)
	}

	msg := &email.Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
		Text:     text,
	}
	if err := s.provider.Send(ctx, msg); err != nil {
		logger.CtxWithError(ctx, "email send failed", err, "provider", s.provider.Name(), "subject", subject)
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "email", "Failed to send email", http.StatusInternalServerError)
	}

	logger.CtxDebug(ctx, "email sent", "provider", s.provider.Name(), "subject", subject)
	return nil
}
