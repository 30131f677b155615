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

var errUnknownSkills = apperrors.NewBadRequestError("One or more skills do not exist")

// AdminService - управление вакансиями и статусами откликов
type AdminService interface {
	GetStats(db *gorm.DB) (*dto.AdminStats, error)
	ListJobs(db *gorm.DB, page repositories.Page) (*dto.AdminJobPage, error)
	CreateJob(db *gorm.DB, adminID string, req *dto.JobRequest) (*dto.JobView, error)
	UpdateJob(db *gorm.DB, jobID uint, req *dto.JobRequest) (*dto.JobView, error)
	DeleteJob(db *gorm.DB, jobID uint) error
	ToggleJobStatus(db *gorm.DB, jobID uint, isActive bool) (*models.Job, error)
	UpdateApplicationStatus(db *gorm.DB, applicationID uint, req *dto.ApplicationStatusQuery) (*models.Application, error)
}

type AdminServiceImpl struct {
	jobRepo      repositories.JobRepository
	masterRepo   repositories.MasterRepository
	trackingRepo repositories.TrackingRepository
	enricher     *JobEnricher
}

func NewAdminService(
	jobRepo repositories.JobRepository,
	masterRepo repositories.MasterRepository,
	trackingRepo repositories.TrackingRepository,
	enricher *JobEnricher,
) AdminService {
	return &AdminServiceImpl{
		jobRepo:      jobRepo,
		masterRepo:   masterRepo,
		trackingRepo: trackingRepo,
		enricher:     enricher,
	}
}

func (s *AdminServiceImpl) GetStats(db *gorm.DB) (*dto.AdminStats, error) {
	var stats dto.AdminStats
	var err error

	if stats.TotalJobs, err = s.jobRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ActiveJobs, err = s.jobRepo.CountActive(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalApplications, err = s.trackingRepo.CountAllApplications(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &stats, nil
}

// ListJobs - все вакансии, включая неактивные
func (s *AdminServiceImpl) ListJobs(db *gorm.DB, page repositories.Page) (*dto.AdminJobPage, error) {
	jobs, total, err := s.jobRepo.ListAll(db, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	views, err := s.enricher.Enrich(db, jobs, "")
	if err != nil {
		return nil, err
	}
	return &dto.AdminJobPage{
		Jobs:       views,
		Pagination: dto.NewPagination(page.Number, page.Size, total),
	}, nil
}

// CreateJob - вакансия и ее навыки пишутся в одной транзакции
func (s *AdminServiceImpl) CreateJob(db *gorm.DB, adminID string, req *dto.JobRequest) (*dto.JobView, error) {
	job, err := newJobFromRequest(req)
	if err != nil {
		return nil, err
	}
	if adminID != "" {
		job.PostedBy = &adminID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkSkills(tx, req.SkillIDs); err != nil {
			return err
		}
		if err := s.jobRepo.Create(tx, job); err != nil {
			return apperrors.InternalError(err)
		}
		if req.SkillIDs != nil && len(*req.SkillIDs) > 0 {
			if err := s.jobRepo.ReplaceSkills(tx, job.ID, *req.SkillIDs); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichOne(db, job)
}

// UpdateJob - навыки заменяются только если skillIds передан
func (s *AdminServiceImpl) UpdateJob(db *gorm.DB, jobID uint, req *dto.JobRequest) (*dto.JobView, error) {
	fields, err := jobUpdateFields(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Job
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkSkills(tx, req.SkillIDs); err != nil {
			return err
		}

		var err error
		updated, err = s.jobRepo.UpdateFields(tx, jobID, fields)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrJobNotFound
			}
			return apperrors.InternalError(err)
		}

		if req.SkillIDs != nil {
			if err := s.jobRepo.ReplaceSkills(tx, jobID, *req.SkillIDs); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichOne(db, updated)
}

func (s *AdminServiceImpl) DeleteJob(db *gorm.DB, jobID uint) error {
	if err := s.jobRepo.Delete(db, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) ToggleJobStatus(db *gorm.DB, jobID uint, isActive bool) (*models.Job, error) {
	job, err := s.jobRepo.UpdateFields(db, jobID, map[string]interface{}{"is_active": isActive})
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// UpdateApplicationStatus - любой статус из перечисления, переходы не ограничены
func (s *AdminServiceImpl) UpdateApplicationStatus(db *gorm.DB, applicationID uint, req *dto.ApplicationStatusQuery) (*models.Application, error) {
	var notes *string
	if req.Notes != nil {
		n := strings.TrimSpace(*req.Notes)
		notes = &n
	}

	app, err := s.trackingRepo.UpdateApplicationStatus(db, applicationID, models.ApplicationStatus(req.Status), notes)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func (s *AdminServiceImpl) checkSkills(db *gorm.DB, skillIDs *[]uint) error {
	if skillIDs == nil {
		return nil
	}
	return checkSkillIDs(db, s.masterRepo, *skillIDs)
}

// checkSkillIDs - все навыки должны существовать в справочнике
func checkSkillIDs(db *gorm.DB, masterRepo repositories.MasterRepository, skillIDs []uint) error {
	if len(skillIDs) == 0 {
		return nil
	}
	unique := make(map[uint]struct{}, len(skillIDs))
	ids := make([]uint, 0, len(skillIDs))
	for _, id := range skillIDs {
		if _, ok := unique[id]; !ok {
			unique[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	count, err := masterRepo.CountSkills(db, ids)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count != int64(len(ids)) {
		return errUnknownSkills
	}
	return nil
}

// ============================================
// Маппинг запроса
// ============================================

// newJobFromRequest - значения по умолчанию: ONSITE, FULL_TIME, одна вакансия, активна, зарплата раскрыта
func newJobFromRequest(req *dto.JobRequest) (*models.Job, error) {
	deadline, err := parseDate(req.ApplicationDeadline.Ptr())
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:               strings.TrimSpace(req.Title),
		Company:             strings.TrimSpace(req.Company),
		CompanyLogo:         req.CompanyLogo.Ptr(),
		Description:         req.Description.Ptr(),
		Requirements:        req.Requirements.Ptr(),
		CityID:              req.CityID.Ptr(),
		LocationType:        models.LocationOnsite,
		EmploymentType:      models.EmploymentFullTime,
		SalaryMin:           req.SalaryMin.Ptr(),
		SalaryMax:           req.SalaryMax.Ptr(),
		IsSalaryDisclosed:   true,
		ExperienceMaxYears:  req.ExperienceMaxYears.Ptr(),
		MinEducation:        req.MinEducation.Ptr(),
		Vacancies:           1,
		ApplicationDeadline: deadline,
		IsActive:            true,
	}

	if req.LocationType.HasValue() {
		job.LocationType = models.LocationType(req.LocationType.Value)
	}
	if req.EmploymentType.HasValue() {
		job.EmploymentType = models.EmploymentType(req.EmploymentType.Value)
	}
	if req.IsSalaryDisclosed.HasValue() {
		job.IsSalaryDisclosed = req.IsSalaryDisclosed.Value
	}
	if req.ExperienceMinYears.HasValue() {
		job.ExperienceMinYears = req.ExperienceMinYears.Value
	}
	if req.Vacancies.HasValue() {
		job.Vacancies = req.Vacancies.Value
	}
	if req.IsFeatured.HasValue() {
		job.IsFeatured = req.IsFeatured.Value
	}
	if req.IsActive.HasValue() {
		job.IsActive = req.IsActive.Value
	}
	return job, nil
}

// jobUpdateFields - null очищает только nullable колонки, для not null колонок null игнорируется
func jobUpdateFields(req *dto.JobRequest) (map[string]interface{}, error) {
	fields := map[string]interface{}{
		"title":   strings.TrimSpace(req.Title),
		"company": strings.TrimSpace(req.Company),
	}

	putOptional(fields, "company_logo", req.CompanyLogo)
	putOptional(fields, "description", req.Description)
	putOptional(fields, "requirements", req.Requirements)
	putOptional(fields, "city_id", req.CityID)
	putOptional(fields, "salary_min", req.SalaryMin)
	putOptional(fields, "salary_max", req.SalaryMax)
	putOptional(fields, "experience_max_years", req.ExperienceMaxYears)
	putOptional(fields, "min_education", req.MinEducation)

	putValue(fields, "location_type", req.LocationType)
	putValue(fields, "employment_type", req.EmploymentType)
	putValue(fields, "is_salary_disclosed", req.IsSalaryDisclosed)
	putValue(fields, "experience_min_years", req.ExperienceMinYears)
	putValue(fields, "vacancies", req.Vacancies)
	putValue(fields, "is_featured", req.IsFeatured)
	putValue(fields, "is_active", req.IsActive)

	if req.ApplicationDeadline.Set {
		deadline, err := parseDate(req.ApplicationDeadline.Ptr())
		if err != nil {
			return nil, err
		}
		if deadline == nil {
			fields["application_deadline"] = nil
		} else {
			fields["application_deadline"] = *deadline
		}
	}
	return fields, nil
}

func putValue[T any](fields map[string]interface{}, column string, value dto.Optional[T]) {
	if value.HasValue() {
		fields[column] = value.Value
	}
}
