package dto

import (
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
)

// JobSearchRequest - фильтры объединяются через AND; page/size из query имеют приоритет
type JobSearchRequest struct {
	Keyword         string  `json:"keyword" validate:"max=255"`
	LocationType    string  `json:"locationType" validate:"omitempty,is-location-type"`
	EmploymentType  string  `json:"employmentType" validate:"omitempty,is-employment-type"`
	CityID          *uint   `json:"cityId" validate:"omitempty,gt=0"`
	ExperienceLevel *int    `json:"experienceLevel" validate:"omitempty,min=0"`
	SalaryMin       *int    `json:"salaryMin" validate:"omitempty,min=0"`
	Page            *int    `json:"page"`
	Size            *int    `json:"size"`
	UserID          *string `json:"userId"`
}

type ApplyJobRequest struct {
	CoverLetter *string `json:"coverLetter" validate:"omitempty,max=2000"`
}

// JobRequest - создание/обновление вакансии админом. SkillIDs == nil: навыки не трогаем.
type JobRequest struct {
	Title               string           `json:"title" validate:"required,min=1,max=255"`
	Company             string           `json:"company" validate:"required,min=1,max=255"`
	CompanyLogo         Optional[string] `json:"companyLogo" validate:"omitempty,max=512"`
	Description         Optional[string] `json:"description"`
	Requirements        Optional[string] `json:"requirements"`
	CityID              Optional[uint]   `json:"cityId" validate:"omitempty,gt=0"`
	LocationType        Optional[string] `json:"locationType" validate:"omitempty,is-location-type"`
	EmploymentType      Optional[string] `json:"employmentType" validate:"omitempty,is-employment-type"`
	SalaryMin           Optional[int]    `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax           Optional[int]    `json:"salaryMax" validate:"omitempty,min=0"`
	IsSalaryDisclosed   Optional[bool]   `json:"isSalaryDisclosed"`
	ExperienceMinYears  Optional[int]    `json:"experienceMinYears" validate:"omitempty,min=0"`
	ExperienceMaxYears  Optional[int]    `json:"experienceMaxYears" validate:"omitempty,min=0"`
	MinEducation        Optional[string] `json:"minEducation" validate:"omitempty,max=30"`
	Vacancies           Optional[int]    `json:"vacancies" validate:"omitempty,min=1"`
	ApplicationDeadline Optional[string] `json:"applicationDeadline" validate:"omitempty,date-or-empty"`
	IsFeatured          Optional[bool]   `json:"isFeatured"`
	IsActive            Optional[bool]   `json:"isActive"`
	SkillIDs            *[]uint          `json:"skillIds" validate:"omitempty,dive,gt=0"`
}

// ApplicationStatusQuery - PATCH .../status?status=...&notes=...
type ApplicationStatusQuery struct {
	Status string  `form:"status" json:"status" validate:"required,is-application-status"`
	Notes  *string `form:"notes" json:"notes" validate:"omitempty,max=1000"`
}

// ============================================
// Ответы
// ============================================

// JobView - вакансия с навыками и названием города
type JobView struct {
	models.Job
	CityName  *string                 `json:"cityName"`
	Skills    []repositories.SkillTag `json:"skills"`
	IsSaved   *bool                   `json:"isSaved,omitempty"`
	IsApplied *bool                   `json:"isApplied,omitempty"`
}

type SavedJobView struct {
	JobView
	SavedAt time.Time `json:"savedAt"`
}

type ApplicationView struct {
	Application models.Application `json:"application"`
	Job         JobView            `json:"job"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, size int, total int64) Pagination {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Pagination{Page: page, Size: size, Total: total, TotalPages: totalPages}
}

// Paged - страница вакансий; hasNext = page < totalPages
type Paged[T any] struct {
	Jobs          []T        `json:"jobs"`
	TotalElements int64      `json:"totalElements"`
	HasNext       bool       `json:"hasNext"`
	Pagination    Pagination `json:"pagination"`
}

func NewPaged[T any](items []T, page, size int, total int64) Paged[T] {
	p := NewPagination(page, size, total)
	if items == nil {
		items = []T{}
	}
	return Paged[T]{
		Jobs:          items,
		TotalElements: total,
		HasNext:       page < p.TotalPages,
		Pagination:    p,
	}
}

type AdminJobPage struct {
	Jobs       []JobView  `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

type DashboardStats struct {
	NewJobsToday     int64 `json:"newJobsToday"`
	ApplicationsSent int64 `json:"applicationsSent"`
	SavedJobs        int64 `json:"savedJobs"`
	InterviewCalls   int64 `json:"interviewCalls"`
}

type AdminStats struct {
	TotalJobs         int64 `json:"totalJobs"`
	ActiveJobs        int64 `json:"activeJobs"`
	TotalApplications int64 `json:"totalApplications"`
}
