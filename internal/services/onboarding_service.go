package services

import (
	"errors"
	"strings"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type OnboardingService interface {
	GetStatus(db *gorm.DB, userID string) (*dto.OnboardingStatus, error)
	SaveProfile(db *gorm.DB, userID string, req *dto.SaveProfileRequest) (*models.Profile, error)
	SavePreferences(db *gorm.DB, userID string, req *dto.SavePreferencesRequest) (*models.Profile, error)
}

type OnboardingServiceImpl struct {
	profileRepo repositories.ProfileRepository
	masterRepo  repositories.MasterRepository
}

func NewOnboardingService(profileRepo repositories.ProfileRepository, masterRepo repositories.MasterRepository) OnboardingService {
	return &OnboardingServiceImpl{profileRepo: profileRepo, masterRepo: masterRepo}
}

func (s *OnboardingServiceImpl) GetStatus(db *gorm.DB, userID string) (*dto.OnboardingStatus, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return &dto.OnboardingStatus{}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	skillIDs, err := s.profileRepo.SkillIDs(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.OnboardingStatus{
		HasProfile:       true,
		ProfileCompleted: profile.ProfileCompleted,
		HasPreferences:   profile.PreferredRoleID != nil && len(skillIDs) > 0,
	}, nil
}

// SaveProfile - upsert базового профиля, повторный вызов перезаписывает поля шага
func (s *OnboardingServiceImpl) SaveProfile(db *gorm.DB, userID string, req *dto.SaveProfileRequest) (*models.Profile, error) {
	fullName := strings.TrimSpace(req.FullName)
	whatsapp := req.WhatsappUpdates != nil && *req.WhatsappUpdates

	var saved *models.Profile
	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.profileRepo.FindByUserID(tx, userID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.InternalError(err)
		}

		if existing != nil {
			saved, err = s.profileRepo.UpdateFields(tx, existing.ID, map[string]interface{}{
				"full_name":             fullName,
				"gender":                req.Gender,
				"education_level":       req.EducationLevel,
				"has_experience":        *req.HasExperience,
				"experience_level":      req.ExperienceLevel,
				"current_salary":        req.CurrentSalary,
				"preferred_city_id":     req.PreferredCityID,
				"preferred_locality_id": req.PreferredLocalityID,
				"whatsapp_updates":      whatsapp,
			})
			if err != nil {
				return apperrors.InternalError(err)
			}
			return nil
		}

		gender := req.Gender
		education := req.EducationLevel
		cityID := req.PreferredCityID
		profile := &models.Profile{
			UserID:              userID,
			FullName:            &fullName,
			Gender:              &gender,
			EducationLevel:      &education,
			HasExperience:       req.HasExperience,
			ExperienceLevel:     req.ExperienceLevel,
			CurrentSalary:       req.CurrentSalary,
			PreferredCityID:     &cityID,
			PreferredLocalityID: req.PreferredLocalityID,
			WhatsappUpdates:     whatsapp,
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			if errors.Is(err, repositories.ErrProfileAlreadyExists) {
				return apperrors.NewConflictError("onboarding", "Profile already exists")
			}
			return apperrors.InternalError(err)
		}
		saved = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SavePreferences - роль, навыки и флаг завершения в одной транзакции
func (s *OnboardingServiceImpl) SavePreferences(db *gorm.DB, userID string, req *dto.SavePreferencesRequest) (*models.Profile, error) {
	var saved *models.Profile
	err := db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByUserID(tx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrProfileNotFound) {
				return apperrors.ErrProfileNotFound
			}
			return apperrors.InternalError(err)
		}
		if err := checkSkillIDs(tx, s.masterRepo, req.SkillIDs); err != nil {
			return err
		}

		saved, err = s.profileRepo.UpdateFields(tx, profile.ID, map[string]interface{}{
			"preferred_role_id": req.PreferredRoleID,
			"profile_completed": true,
		})
		if err != nil {
			return apperrors.InternalError(err)
		}

		if err := s.profileRepo.ReplaceSkills(tx, profile.ID, req.SkillIDs); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
