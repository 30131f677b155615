package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	SerialModel
	Title               string          `gorm:"size:255;not null" json:"title"`
	Company             string          `gorm:"size:255;not null" json:"company"`
	CompanyLogo         *string         `gorm:"size:512" json:"companyLogo"`
	Description         *string         `gorm:"type:text" json:"description"`
	Requirements        *string         `gorm:"type:text" json:"requirements"`
	CityID              *uint           `gorm:"index" json:"cityId"`
	LocationType        LocationType    `gorm:"type:varchar(20);not null;default:'ONSITE'" json:"locationType"`
	EmploymentType      EmploymentType  `gorm:"type:varchar(20);not null;default:'FULL_TIME'" json:"employmentType"`
	SalaryMin           *int            `json:"salaryMin"`
	SalaryMax           *int            `json:"salaryMax"`
	IsSalaryDisclosed   bool            `gorm:"not null" json:"isSalaryDisclosed"`
	ExperienceMinYears  int             `gorm:"not null;default:0" json:"experienceMinYears"`
	ExperienceMaxYears  *int            `json:"experienceMaxYears"`
	MinEducation        *string         `gorm:"size:30" json:"minEducation"`
	Vacancies           int             `gorm:"not null;default:1" json:"vacancies"`
	ApplicationDeadline *datatypes.Date `json:"applicationDeadline"`
	IsFeatured          bool            `gorm:"not null;default:false;index" json:"isFeatured"`
	IsActive            bool            `gorm:"not null;index" json:"isActive"`
	PostedBy            *string         `gorm:"type:uuid" json:"postedBy"`

	City   *City `gorm:"foreignKey:CityID" json:"-"`
	Poster *User `gorm:"foreignKey:PostedBy;constraint:OnDelete:SET NULL" json:"-"`
}

type JobSkill struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID   uint `gorm:"not null;index" json:"jobId"`
	SkillID uint `gorm:"not null;index" json:"skillId"`

	Job   *Job   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Skill *Skill `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SavedJob - закладка, уникальна по паре (user, job)
type SavedJob struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job" json:"userId"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job" json:"jobId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Job  *Job  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Application - отклик, уникален по паре (user, job)
type Application struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job;index" json:"userId"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_applications_user_job;index" json:"jobId"`
	Status      ApplicationStatus `gorm:"type:varchar(30);not null;default:'PENDING'" json:"status"`
	CoverLetter *string           `gorm:"type:text" json:"coverLetter"`
	Notes       *string           `gorm:"type:text" json:"notes"`
	AppliedAt   time.Time         `gorm:"autoCreateTime" json:"appliedAt"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Job  *Job  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
