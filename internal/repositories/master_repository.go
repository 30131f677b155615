package repositories

import (
	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

// SkillTag - навык в ответах (профиль и вакансии)
type SkillTag struct {
	SkillID   uint   `json:"skillId"`
	SkillName string `json:"skillName"`
}

type MasterRepository interface {
	ListCities(db *gorm.DB) ([]models.City, error)
	ListLocalities(db *gorm.DB, cityID uint) ([]models.Locality, error)
	ListRoles(db *gorm.DB) ([]models.JobRole, error)
	ListSkills(db *gorm.DB, roleID uint) ([]models.Skill, error)
	CityNames(db *gorm.DB, ids []uint) (map[uint]string, error)
	CountSkills(db *gorm.DB, ids []uint) (int64, error)
}

type masterRepository struct{}

func NewMasterRepository() MasterRepository {
	return &masterRepository{}
}

func (r *masterRepository) ListCities(db *gorm.DB) ([]models.City, error) {
	var cities []models.City
	err := db.Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *masterRepository) ListLocalities(db *gorm.DB, cityID uint) ([]models.Locality, error) {
	var localities []models.Locality
	err := db.Where("city_id = ?", cityID).Order("name ASC").Find(&localities).Error
	return localities, err
}

func (r *masterRepository) ListRoles(db *gorm.DB) ([]models.JobRole, error) {
	var roles []models.JobRole
	err := db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *masterRepository) ListSkills(db *gorm.DB, roleID uint) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.Where("role_id = ?", roleID).Order("name ASC").Find(&skills).Error
	return skills, err
}

// CityNames - пакетное разрешение названий городов
func (r *masterRepository) CityNames(db *gorm.DB, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var cities []models.City
	if err := db.Select("id", "name").Where("id IN ?", ids).Find(&cities).Error; err != nil {
		return nil, err
	}
	for _, c := range cities {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (r *masterRepository) CountSkills(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&models.Skill{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
