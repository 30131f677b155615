package services

import (
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MasterService - справочники для форм онбординга и профиля
type MasterService interface {
	GetCities(db *gorm.DB) ([]models.City, error)
	GetLocalities(db *gorm.DB, cityID uint) ([]models.Locality, error)
	GetRoles(db *gorm.DB) ([]models.JobRole, error)
	GetSkills(db *gorm.DB, roleID uint) ([]models.Skill, error)
}

type MasterServiceImpl struct {
	masterRepo repositories.MasterRepository
}

func NewMasterService(masterRepo repositories.MasterRepository) MasterService {
	return &MasterServiceImpl{masterRepo: masterRepo}
}

func (s *MasterServiceImpl) GetCities(db *gorm.DB) ([]models.City, error) {
	cities, err := s.masterRepo.ListCities(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cities, nil
}

func (s *MasterServiceImpl) GetLocalities(db *gorm.DB, cityID uint) ([]models.Locality, error) {
	localities, err := s.masterRepo.ListLocalities(db, cityID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return localities, nil
}

func (s *MasterServiceImpl) GetRoles(db *gorm.DB) ([]models.JobRole, error) {
	roles, err := s.masterRepo.ListRoles(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return roles, nil
}

func (s *MasterServiceImpl) GetSkills(db *gorm.DB, roleID uint) ([]models.Skill, error) {
	skills, err := s.masterRepo.ListSkills(db, roleID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return skills, nil
}
