package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile - профиль соискателя (один на пользователя)
type Profile struct {
	SerialModel
	UserID              string           `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	FullName            *string          `gorm:"size:255" json:"fullName"`
	Gender              *Gender          `gorm:"type:varchar(10)" json:"gender"`
	EducationLevel      *EducationLevel  `gorm:"type:varchar(30)" json:"educationLevel"`
	HasExperience       *bool            `json:"hasExperience"`
	ExperienceLevel     *ExperienceLevel `gorm:"type:varchar(30)" json:"experienceLevel"`
	CurrentSalary       *int             `json:"currentSalary"`
	PreferredCityID     *uint            `json:"preferredCityId"`
	PreferredLocalityID *uint            `json:"preferredLocalityId"`
	WhatsappUpdates     bool             `gorm:"not null;default:false" json:"whatsappUpdates"`
	PreferredRoleID     *uint            `json:"preferredRoleId"`
	Headline            *string          `gorm:"size:250" json:"headline"`
	Summary             *string          `gorm:"type:text" json:"summary"`
	NoticePeriod        *string          `gorm:"size:30" json:"noticePeriod"`
	ProfileCompleted    bool             `gorm:"not null;default:false" json:"profileCompleted"`
	ProfilePicture      *string          `gorm:"size:512" json:"profilePicture"`

	PreferredCity     *City     `gorm:"foreignKey:PreferredCityID" json:"-"`
	PreferredLocality *Locality `gorm:"foreignKey:PreferredLocalityID" json:"-"`
	PreferredRole     *JobRole  `gorm:"foreignKey:PreferredRoleID" json:"-"`
}

type ProfileSkill struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint `gorm:"not null;index" json:"profileId"`
	SkillID   uint `gorm:"not null" json:"skillId"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Skill   *Skill   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// ============================================
// Дочерние записи профиля
// ============================================

type PersonalDetails struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID     uint            `gorm:"not null;uniqueIndex" json:"profileId"`
	DateOfBirth   *datatypes.Date `json:"dateOfBirth"`
	MaritalStatus *MaritalStatus  `gorm:"type:varchar(20)" json:"maritalStatus"`
	Address       *string         `gorm:"type:text" json:"address"`
	Pincode       *string         `gorm:"size:10" json:"pincode"`
	Nationality   *string         `gorm:"size:50" json:"nationality"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (PersonalDetails) TableName() string { return "personal_details" }

type Employment struct {
	SerialModel
	ProfileID      uint            `gorm:"not null;index" json:"profileId"`
	Designation    string          `gorm:"size:255;not null" json:"designation"`
	Company        string          `gorm:"size:255;not null" json:"company"`
	EmploymentType *EmploymentType `gorm:"type:varchar(20)" json:"employmentType"`
	IsCurrent      bool            `gorm:"not null;default:false" json:"isCurrent"`
	StartDate      *datatypes.Date `json:"startDate"`
	EndDate        *datatypes.Date `json:"endDate"`
	Description    *string         `gorm:"type:text" json:"description"`
	NoticePeriod   *string         `gorm:"size:30" json:"noticePeriod"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Education struct {
	SerialModel
	ProfileID      uint       `gorm:"not null;index" json:"profileId"`
	Degree         string     `gorm:"size:100;not null" json:"degree"`
	Specialization *string    `gorm:"size:100" json:"specialization"`
	Institution    string     `gorm:"size:255;not null" json:"institution"`
	PassOutYear    *int       `json:"passOutYear"`
	GradeType      *GradeType `gorm:"type:varchar(20)" json:"gradeType"`
	Grade          *string    `gorm:"size:20" json:"grade"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Project struct {
	SerialModel
	ProfileID   uint            `gorm:"not null;index" json:"profileId"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description"`
	StartDate   *datatypes.Date `json:"startDate"`
	EndDate     *datatypes.Date `json:"endDate"`
	IsOngoing   bool            `gorm:"not null;default:false" json:"isOngoing"`
	ProjectURL  *string         `gorm:"size:512" json:"projectUrl"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type ItSkill struct {
	SerialModel
	ProfileID        uint        `gorm:"not null;index" json:"profileId"`
	Name             string      `gorm:"size:100;not null" json:"name"`
	Proficiency      Proficiency `gorm:"type:varchar(20);not null;default:'BEGINNER'" json:"proficiency"`
	ExperienceMonths int         `gorm:"not null;default:0" json:"experienceMonths"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Resume struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID  uint      `gorm:"not null;uniqueIndex" json:"profileId"`
	FileName   string    `gorm:"size:255;not null" json:"fileName"`
	FilePath   string    `gorm:"size:512;not null" json:"filePath"`
	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
