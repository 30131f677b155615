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

// Пагинация списков вакансий
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// NewPage нормализует page/size; 0 означает "не передано"
func NewPage(page, size int) repositories.Page {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return repositories.Page{Number: page, Size: size}
}

type JobService interface {
	ListJobs(db *gorm.DB, page repositories.Page, viewerID string) (*dto.Paged[dto.JobView], error)
	SearchJobs(db *gorm.DB, req *dto.JobSearchRequest, page repositories.Page, viewerID string) (*dto.Paged[dto.JobView], error)
	RecommendJobs(db *gorm.DB, userID string, page repositories.Page) (*dto.Paged[dto.JobView], error)
	GetJobDetail(db *gorm.DB, jobID uint, viewerID string) (*dto.JobView, error)
}

type JobServiceImpl struct {
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
	enricher    *JobEnricher
}

func NewJobService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	enricher *JobEnricher,
) JobService {
	return &JobServiceImpl{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		enricher:    enricher,
	}
}

func (s *JobServiceImpl) ListJobs(db *gorm.DB, page repositories.Page, viewerID string) (*dto.Paged[dto.JobView], error) {
	jobs, total, err := s.jobRepo.ListActive(db, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.page(db, jobs, total, page, viewerID)
}

func (s *JobServiceImpl) SearchJobs(db *gorm.DB, req *dto.JobSearchRequest, page repositories.Page, viewerID string) (*dto.Paged[dto.JobView], error) {
	filter := repositories.JobFilter{
		Keyword:         strings.TrimSpace(req.Keyword),
		LocationType:    models.LocationType(req.LocationType),
		EmploymentType:  models.EmploymentType(req.EmploymentType),
		CityID:          req.CityID,
		ExperienceLevel: req.ExperienceLevel,
		SalaryMin:       req.SalaryMin,
	}

	jobs, total, err := s.jobRepo.Search(db, filter, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.page(db, jobs, total, page, viewerID)
}

// RecommendJobs только переупорядочивает активные вакансии: сначала роль, затем навыки.
// Без профиля - обычный список.
func (s *JobServiceImpl) RecommendJobs(db *gorm.DB, userID string, page repositories.Page) (*dto.Paged[dto.JobView], error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return s.ListJobs(db, page, userID)
		}
		return nil, apperrors.InternalError(err)
	}

	var ranking repositories.JobRanking

	if profile.PreferredRoleID != nil {
		ranking.RoleJobIDs, err = s.jobRepo.JobIDsByRole(db, *profile.PreferredRoleID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	skillIDs, err := s.profileRepo.SkillIDs(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ranking.SkillJobIDs, err = s.jobRepo.JobIDsBySkills(db, skillIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobs, total, err := s.jobRepo.ListRanked(db, ranking, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.page(db, jobs, total, page, userID)
}

// GetJobDetail - флаги isSaved/isApplied всегда присутствуют (false без зрителя)
func (s *JobServiceImpl) GetJobDetail(db *gorm.DB, jobID uint, viewerID string) (*dto.JobView, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	views, err := s.enricher.Enrich(db, []models.Job{*job}, viewerID)
	if err != nil {
		return nil, err
	}
	view := views[0]
	if view.IsSaved == nil {
		f := false
		view.IsSaved, view.IsApplied = &f, &f
	}
	return &view, nil
}

func (s *JobServiceImpl) page(db *gorm.DB, jobs []models.Job, total int64, page repositories.Page, viewerID string) (*dto.Paged[dto.JobView], error) {
	views, err := s.enricher.Enrich(db, jobs, viewerID)
	if err != nil {
		return nil, err
	}
	paged := dto.NewPaged(views, page.Number, page.Size, total)
	return &paged, nil
}

// ============================================
// Обогащение вакансий
// ============================================

// JobEnricher добавляет к вакансиям навыки, название города и флаги зрителя.
// Все данные загружаются пакетно: по одному запросу на вид данных.
type JobEnricher struct {
	jobRepo      repositories.JobRepository
	masterRepo   repositories.MasterRepository
	trackingRepo repositories.TrackingRepository
}

func NewJobEnricher(
	jobRepo repositories.JobRepository,
	masterRepo repositories.MasterRepository,
	trackingRepo repositories.TrackingRepository,
) *JobEnricher {
	return &JobEnricher{
		jobRepo:      jobRepo,
		masterRepo:   masterRepo,
		trackingRepo: trackingRepo,
	}
}

// Enrich сохраняет порядок входных вакансий; флаги заполняются только при viewerID != ""
func (e *JobEnricher) Enrich(db *gorm.DB, jobs []models.Job, viewerID string) ([]dto.JobView, error) {
	views := make([]dto.JobView, 0, len(jobs))
	if len(jobs) == 0 {
		return views, nil
	}

	jobIDs := make([]uint, 0, len(jobs))
	var cityIDs []uint
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
		if j.CityID != nil {
			cityIDs = append(cityIDs, *j.CityID)
		}
	}

	skills, err := e.jobRepo.SkillsForJobs(db, jobIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	cities, err := e.masterRepo.CityNames(db, cityIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var saved, applied map[uint]bool
	if viewerID != "" {
		if saved, err = e.flags(db, viewerID, jobIDs, e.trackingRepo.SavedJobIDs); err != nil {
			return nil, err
		}
		if applied, err = e.flags(db, viewerID, jobIDs, e.trackingRepo.AppliedJobIDs); err != nil {
			return nil, err
		}
	}

	for _, j := range jobs {
		view := dto.JobView{Job: j, Skills: skills[j.ID]}
		if view.Skills == nil {
			view.Skills = []repositories.SkillTag{}
		}
		if j.CityID != nil {
			if name, ok := cities[*j.CityID]; ok {
				view.CityName = &name
			}
		}
		if viewerID != "" {
			isSaved, isApplied := saved[j.ID], applied[j.ID]
			view.IsSaved, view.IsApplied = &isSaved, &isApplied
		}
		views = append(views, view)
	}
	return views, nil
}

// EnrichOne - вариант для одной вакансии без флагов
func (e *JobEnricher) EnrichOne(db *gorm.DB, job *models.Job) (*dto.JobView, error) {
	views, err := e.Enrich(db, []models.Job{*job}, "")
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (e *JobEnricher) flags(db *gorm.DB, userID string, jobIDs []uint, load func(*gorm.DB, string, []uint) ([]uint, error)) (map[uint]bool, error) {
	ids, err := load(db, userID, jobIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
