package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrChildNotFound = errors.New("profile record not found")

// ProfileChild - записи профиля с отношением 1:N
type ProfileChild interface {
	models.Employment | models.Education | models.Project | models.ItSkill
}

// ChildRepository - CRUD записей, всегда ограниченный profile_id владельца.
// Чужая запись неотличима от отсутствующей.
type ChildRepository[T ProfileChild] struct {
	order string
}

func NewEmploymentRepository() *ChildRepository[models.Employment] {
	return &ChildRepository[models.Employment]{order: "is_current DESC, start_date ASC, id ASC"}
}

func NewEducationRepository() *ChildRepository[models.Education] {
	return &ChildRepository[models.Education]{order: "pass_out_year ASC, id ASC"}
}

func NewProjectRepository() *ChildRepository[models.Project] {
	return &ChildRepository[models.Project]{order: "start_date ASC, id ASC"}
}

func NewItSkillRepository() *ChildRepository[models.ItSkill] {
	return &ChildRepository[models.ItSkill]{order: "name ASC, id ASC"}
}

func (r *ChildRepository[T]) List(db *gorm.DB, profileID uint) ([]T, error) {
	rows := []T{}
	err := db.Where("profile_id = ?", profileID).Order(r.order).Find(&rows).Error
	return rows, err
}

func (r *ChildRepository[T]) Find(db *gorm.DB, id, profileID uint) (*T, error) {
	var row T
	if err := db.Where("id = ? AND profile_id = ?", id, profileID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *ChildRepository[T]) Create(db *gorm.DB, row *T) error {
	return db.Create(row).Error
}

// Save - полная перезапись строки, найденной через Find
func (r *ChildRepository[T]) Save(db *gorm.DB, row *T) error {
	return db.Save(row).Error
}

func (r *ChildRepository[T]) Delete(db *gorm.DB, id, profileID uint) error {
	var zero T
	result := db.Where("id = ? AND profile_id = ?", id, profileID).Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChildNotFound
	}
	return nil
}
