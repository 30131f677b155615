package services

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// TrackingService - сохраненные вакансии, отклики и статистика дашборда
type TrackingService interface {
	SaveJob(db *gorm.DB, userID string, jobID uint) (*models.SavedJob, error)
	UnsaveJob(db *gorm.DB, userID string, jobID uint) error
	GetSavedJobs(db *gorm.DB, userID string, page repositories.Page) (*dto.Paged[dto.SavedJobView], error)
	GetSavedJobIDs(db *gorm.DB, userID string) ([]uint, error)

	ApplyToJob(db *gorm.DB, userID string, jobID uint, req *dto.ApplyJobRequest) (*models.Application, error)
	GetApplications(db *gorm.DB, userID string) ([]dto.ApplicationView, error)
	GetApplicationDetail(db *gorm.DB, userID string, applicationID uint) (*dto.ApplicationView, error)
	GetAppliedJobIDs(db *gorm.DB, userID string) ([]uint, error)

	GetDashboardStats(db *gorm.DB, userID string) (*dto.DashboardStats, error)
}

type TrackingServiceImpl struct {
	jobRepo      repositories.JobRepository
	trackingRepo repositories.TrackingRepository
	enricher     *JobEnricher
	now          func() time.Time
}

func NewTrackingService(
	jobRepo repositories.JobRepository,
	trackingRepo repositories.TrackingRepository,
	enricher *JobEnricher,
) TrackingService {
	return &TrackingServiceImpl{
		jobRepo:      jobRepo,
		trackingRepo: trackingRepo,
		enricher:     enricher,
		now:          time.Now,
	}
}

// ============================================
// Saved jobs
// ============================================

// SaveJob идемпотентен: при конфликте уникального индекса возвращается существующая закладка
func (s *TrackingServiceImpl) SaveJob(db *gorm.DB, userID string, jobID uint) (*models.SavedJob, error) {
	if err := s.ensureJob(db, jobID); err != nil {
		return nil, err
	}

	saved := &models.SavedJob{UserID: userID, JobID: jobID}
	err := s.trackingRepo.InsertSaved(db, saved)
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, repositories.ErrAlreadySaved) {
		return nil, apperrors.InternalError(err)
	}

	existing, err := s.trackingRepo.FindSaved(db, userID, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return existing, nil
}

func (s *TrackingServiceImpl) UnsaveJob(db *gorm.DB, userID string, jobID uint) error {
	if err := s.trackingRepo.DeleteSaved(db, userID, jobID); err != nil {
		if errors.Is(err, repositories.ErrSavedJobNotFound) {
			return apperrors.ErrSavedJobNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *TrackingServiceImpl) GetSavedJobs(db *gorm.DB, userID string, page repositories.Page) (*dto.Paged[dto.SavedJobView], error) {
	rows, total, err := s.trackingRepo.ListSaved(db, userID, page)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobs := make([]models.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, r.Job)
	}
	views, err := s.enricher.Enrich(db, jobs, "")
	if err != nil {
		return nil, err
	}

	items := make([]dto.SavedJobView, 0, len(rows))
	for i, r := range rows {
		items = append(items, dto.SavedJobView{JobView: views[i], SavedAt: r.SavedAt})
	}

	paged := dto.NewPaged(items, page.Number, page.Size, total)
	return &paged, nil
}

func (s *TrackingServiceImpl) GetSavedJobIDs(db *gorm.DB, userID string) ([]uint, error) {
	ids, err := s.trackingRepo.SavedJobIDs(db, userID, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ids, nil
}

// ============================================
// Applications
// ============================================

// ApplyToJob - повторный отклик отклоняет уникальный индекс, а не предварительная проверка
func (s *TrackingServiceImpl) ApplyToJob(db *gorm.DB, userID string, jobID uint, req *dto.ApplyJobRequest) (*models.Application, error) {
	if err := s.ensureJob(db, jobID); err != nil {
		return nil, err
	}

	app := &models.Application{
		UserID: userID,
		JobID:  jobID,
		Status: models.ApplicationPending,
	}
	if req != nil && req.CoverLetter != nil {
		if letter := strings.TrimSpace(*req.CoverLetter); letter != "" {
			app.CoverLetter = &letter
		}
	}

	if err := s.trackingRepo.InsertApplication(db, app); err != nil {
		if errors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func (s *TrackingServiceImpl) GetApplications(db *gorm.DB, userID string) ([]dto.ApplicationView, error) {
	rows, err := s.trackingRepo.ListApplications(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobs := make([]models.Job, 0, len(rows))
	for _, r := range rows {
		jobs = append(jobs, r.Job)
	}
	views, err := s.enricher.Enrich(db, jobs, "")
	if err != nil {
		return nil, err
	}

	out := make([]dto.ApplicationView, 0, len(rows))
	for i, r := range rows {
		out = append(out, dto.ApplicationView{Application: r.Application, Job: views[i]})
	}
	return out, nil
}

// GetApplicationDetail - чужой отклик неотличим от отсутствующего
func (s *TrackingServiceImpl) GetApplicationDetail(db *gorm.DB, userID string, applicationID uint) (*dto.ApplicationView, error) {
	row, err := s.trackingRepo.FindUserApplication(db, userID, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	view, err := s.enricher.EnrichOne(db, &row.Job)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicationView{Application: row.Application, Job: *view}, nil
}

func (s *TrackingServiceImpl) GetAppliedJobIDs(db *gorm.DB, userID string) ([]uint, error) {
	ids, err := s.trackingRepo.AppliedJobIDs(db, userID, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ids, nil
}

// ============================================
// Dashboard
// ============================================

func (s *TrackingServiceImpl) GetDashboardStats(db *gorm.DB, userID string) (*dto.DashboardStats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var stats dto.DashboardStats
	var err error

	if stats.NewJobsToday, err = s.jobRepo.CountActiveSince(db, startOfDay); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ApplicationsSent, err = s.trackingRepo.CountApplications(db, userID, ""); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.SavedJobs, err = s.trackingRepo.CountSaved(db, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.InterviewCalls, err = s.trackingRepo.CountApplications(db, userID, models.ApplicationInterviewScheduled); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &stats, nil
}

func (s *TrackingServiceImpl) ensureJob(db *gorm.DB, jobID uint) error {
	exists, err := s.jobRepo.Exists(db, jobID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !exists {
		return apperrors.ErrJobNotFound
	}
	return nil
}
