package services

import (
	"jobboard_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	TokenService        TokenService
	NotificationService NotificationService
	AuthService         AuthService
	MasterService       MasterService
	OnboardingService   OnboardingService
	ProfileService      ProfileService
	JobService          JobService
	TrackingService     TrackingService
	AdminService        AdminService
	Storage             storage.Storage
}
