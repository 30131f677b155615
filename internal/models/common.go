package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel - базовая модель с UUID ключом (users)
type UUIDModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate генерирует ID на стороне приложения, чтобы не зависеть от расширений БД
func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SerialModel - базовая модель с автоинкрементным ключом
type SerialModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AllModels - список моделей для AutoMigrate (порядок важен для внешних ключей)
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&AuthToken{},
		&City{},
		&Locality{},
		&JobRole{},
		&Skill{},
		&Profile{},
		&ProfileSkill{},
		&PersonalDetails{},
		&Employment{},
		&Education{},
		&Project{},
		&ItSkill{},
		&Resume{},
		&Job{},
		&JobSkill{},
		&SavedJob{},
		&Application{},
	}
}
