package dto

import (
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
)

// ============================================
// Onboarding
// ============================================

// SaveProfileRequest - базовый профиль на первом шаге онбординга
type SaveProfileRequest struct {
	FullName            string                  `json:"fullName" validate:"required,min=1,max=255"`
	Gender              models.Gender           `json:"gender" validate:"required,is-gender"`
	EducationLevel      models.EducationLevel   `json:"educationLevel" validate:"required,is-education-level"`
	HasExperience       *bool                   `json:"hasExperience" validate:"required"`
	ExperienceLevel     *models.ExperienceLevel `json:"experienceLevel" validate:"omitempty,is-experience-level"`
	CurrentSalary       *int                    `json:"currentSalary" validate:"omitempty,min=0"`
	PreferredCityID     uint                    `json:"preferredCityId" validate:"required,gt=0"`
	PreferredLocalityID *uint                   `json:"preferredLocalityId" validate:"omitempty,gt=0"`
	WhatsappUpdates     *bool                   `json:"whatsappUpdates"`
}

type SavePreferencesRequest struct {
	PreferredRoleID uint   `json:"preferredRoleId" validate:"required,gt=0"`
	SkillIDs        []uint `json:"skillIds" validate:"required,min=1,max=20,dive,gt=0"`
}

type OnboardingStatus struct {
	HasProfile       bool `json:"hasProfile"`
	ProfileCompleted bool `json:"profileCompleted"`
	HasPreferences   bool `json:"hasPreferences"`
}

// ============================================
// Profile
// ============================================

// UpdateBasicProfileRequest - частичное обновление: отсутствующее поле не трогаем,
// null очищает колонку. cityId/localityId - алиасы для preferred*.
type UpdateBasicProfileRequest struct {
	FullName            Optional[string] `json:"fullName" validate:"omitempty,min=1,max=255"`
	Gender              Optional[string] `json:"gender" validate:"omitempty,is-gender"`
	EducationLevel      Optional[string] `json:"educationLevel" validate:"omitempty,is-education-level"`
	HasExperience       Optional[bool]   `json:"hasExperience"`
	ExperienceLevel     Optional[string] `json:"experienceLevel" validate:"omitempty,is-experience-level"`
	CurrentSalary       Optional[int]    `json:"currentSalary" validate:"omitempty,min=0"`
	PreferredCityID     Optional[uint]   `json:"preferredCityId" validate:"omitempty,gt=0"`
	CityID              Optional[uint]   `json:"cityId" validate:"omitempty,gt=0"`
	PreferredLocalityID Optional[uint]   `json:"preferredLocalityId" validate:"omitempty,gt=0"`
	LocalityID          Optional[uint]   `json:"localityId" validate:"omitempty,gt=0"`
	NoticePeriod        Optional[string] `json:"noticePeriod" validate:"omitempty,max=30"`
	PreferredRoleID     Optional[uint]   `json:"preferredRoleId" validate:"omitempty,gt=0"`
	WhatsappUpdates     Optional[bool]   `json:"whatsappUpdates"`
	Headline            Optional[string] `json:"headline" validate:"omitempty,max=250"`
}

type HeadlineRequest struct {
	Headline string `json:"headline" validate:"max=250"`
}

type SummaryRequest struct {
	Summary string `json:"summary" validate:"max=2000"`
}

type PersonalDetailsRequest struct {
	DateOfBirth   *string `json:"dateOfBirth" validate:"omitempty,date-or-empty"`
	MaritalStatus *string `json:"maritalStatus" validate:"omitempty,is-marital-status"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	Pincode       *string `json:"pincode" validate:"omitempty,max=10"`
	Nationality   *string `json:"nationality" validate:"omitempty,max=50"`
}

type EmploymentRequest struct {
	Designation    string  `json:"designation" validate:"required,min=1,max=255"`
	Company        string  `json:"company" validate:"required,min=1,max=255"`
	EmploymentType *string `json:"employmentType" validate:"omitempty,is-employment-type"`
	IsCurrent      *bool   `json:"isCurrent"`
	StartDate      *string `json:"startDate" validate:"omitempty,date-or-empty"`
	EndDate        *string `json:"endDate" validate:"omitempty,date-or-empty"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	NoticePeriod   *string `json:"noticePeriod" validate:"omitempty,max=30"`
}

type EducationRequest struct {
	Degree         string  `json:"degree" validate:"required,min=1,max=100"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
	Institution    string  `json:"institution" validate:"required,min=1,max=255"`
	PassOutYear    *int    `json:"passOutYear" validate:"omitempty,gte=1970,lte=2040"`
	GradeType      *string `json:"gradeType" validate:"omitempty,is-grade-type"`
	Grade          *string `json:"grade" validate:"omitempty,max=20"`
}

type ProjectRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	StartDate   *string `json:"startDate" validate:"omitempty,date-or-empty"`
	EndDate     *string `json:"endDate" validate:"omitempty,date-or-empty"`
	IsOngoing   *bool   `json:"isOngoing"`
	ProjectURL  *string `json:"projectUrl" validate:"omitempty,max=512"`
}

type ItSkillRequest struct {
	Name             string  `json:"name" validate:"required,min=1,max=100"`
	Proficiency      *string `json:"proficiency" validate:"omitempty,is-proficiency"`
	ExperienceMonths *int    `json:"experienceMonths" validate:"omitempty,min=0"`
}

type EmailChangeRequest struct {
	NewEmail string `json:"newEmail" validate:"required,email,max=255"`
}

type EmailChangeVerifyRequest struct {
	NewEmail string `json:"newEmail" validate:"required,email,max=255"`
	Code     string `json:"code" validate:"required,otp-code"`
}

type EmailChangeResponse struct {
	ExpiresInSeconds int `json:"expiresInSeconds"`
}

type EmailChangedResponse struct {
	NewEmail string `json:"newEmail"`
}

// ResumeUpload - файл уже прочитан хендлером из multipart
type ResumeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

// FullProfile - составной профиль со всеми дочерними записями
type FullProfile struct {
	models.Profile

	ResumeHeadline *string `json:"resumeHeadline"`
	CityName       *string `json:"cityName"`
	LocalityName   *string `json:"localityName"`
	RoleName       *string `json:"roleName"`

	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	EmailVerified bool    `json:"emailVerified"`

	Skills          []repositories.SkillTag `json:"skills"`
	PersonalDetails *models.PersonalDetails `json:"personalDetails"`
	Employments     []models.Employment     `json:"employments"`
	Educations      []models.Education      `json:"educations"`
	Projects        []models.Project        `json:"projects"`
	ItSkills        []models.ItSkill        `json:"itSkills"`
	Resume          *models.Resume          `json:"resume"`
}
