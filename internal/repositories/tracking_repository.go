package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSavedJobNotFound    = errors.New("saved job not found")
	ErrAlreadySaved        = errors.New("job already saved")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrApplicationNotFound = errors.New("application not found")
)

// SavedJobRow - сохраненная вакансия вместе с датой сохранения
type SavedJobRow struct {
	Job     models.Job
	SavedAt time.Time
}

// ApplicationRow - отклик вместе с вакансией
type ApplicationRow struct {
	Application models.Application
	Job         models.Job
}

type TrackingRepository interface {
	// Saved jobs
	InsertSaved(db *gorm.DB, saved *models.SavedJob) error
	FindSaved(db *gorm.DB, userID string, jobID uint) (*models.SavedJob, error)
	DeleteSaved(db *gorm.DB, userID string, jobID uint) error
	ListSaved(db *gorm.DB, userID string, page Page) ([]SavedJobRow, int64, error)
	SavedJobIDs(db *gorm.DB, userID string, among []uint) ([]uint, error)
	CountSaved(db *gorm.DB, userID string) (int64, error)

	// Applications
	InsertApplication(db *gorm.DB, app *models.Application) error
	FindApplication(db *gorm.DB, id uint) (*models.Application, error)
	FindUserApplication(db *gorm.DB, userID string, id uint) (*ApplicationRow, error)
	ListApplications(db *gorm.DB, userID string) ([]ApplicationRow, error)
	AppliedJobIDs(db *gorm.DB, userID string, among []uint) ([]uint, error)
	UpdateApplicationStatus(db *gorm.DB, id uint, status models.ApplicationStatus, notes *string) (*models.Application, error)
	CountApplications(db *gorm.DB, userID string, status models.ApplicationStatus) (int64, error)
	CountAllApplications(db *gorm.DB) (int64, error)
}

type trackingRepository struct{}

func NewTrackingRepository() TrackingRepository {
	return &trackingRepository{}
}

// ============================================
// Saved jobs
// ============================================

// InsertSaved полагается на уникальный индекс (user_id, job_id)
func (r *trackingRepository) InsertSaved(db *gorm.DB, saved *models.SavedJob) error {
	if err := db.Create(saved).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadySaved
		}
		return err
	}
	return nil
}

func (r *trackingRepository) FindSaved(db *gorm.DB, userID string, jobID uint) (*models.SavedJob, error) {
	var saved models.SavedJob
	if err := db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSavedJobNotFound
		}
		return nil, err
	}
	return &saved, nil
}

func (r *trackingRepository) DeleteSaved(db *gorm.DB, userID string, jobID uint) error {
	result := db.Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}

func (r *trackingRepository) ListSaved(db *gorm.DB, userID string, page Page) ([]SavedJobRow, int64, error) {
	var total int64
	if err := db.Model(&models.SavedJob{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var saved []models.SavedJob
	err := db.Select("saved_jobs.*").
		Preload("Job").
		Joins("JOIN jobs ON jobs.id = saved_jobs.job_id").
		Where("saved_jobs.user_id = ?", userID).
		Order("saved_jobs.created_at DESC, saved_jobs.id DESC").
		Limit(page.Size).Offset(page.Offset()).
		Find(&saved).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]SavedJobRow, 0, len(saved))
	for _, s := range saved {
		if s.Job == nil {
			continue
		}
		rows = append(rows, SavedJobRow{Job: *s.Job, SavedAt: s.CreatedAt})
	}
	return rows, total, nil
}

// SavedJobIDs - пакетная проверка; among == nil означает все сохраненные
func (r *trackingRepository) SavedJobIDs(db *gorm.DB, userID string, among []uint) ([]uint, error) {
	return pluckJobIDs(db.Model(&models.SavedJob{}).Order("created_at DESC"), userID, among)
}

func (r *trackingRepository) CountSaved(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.SavedJob{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ============================================
// Applications
// ============================================

// InsertApplication полагается на уникальный индекс (user_id, job_id)
func (r *trackingRepository) InsertApplication(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *trackingRepository) FindApplication(db *gorm.DB, id uint) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *trackingRepository) FindUserApplication(db *gorm.DB, userID string, id uint) (*ApplicationRow, error) {
	var app models.Application
	err := db.Preload("Job").
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.Job == nil {
		return nil, ErrApplicationNotFound
	}
	job := *app.Job
	app.Job = nil
	return &ApplicationRow{Application: app, Job: job}, nil
}

func (r *trackingRepository) ListApplications(db *gorm.DB, userID string) ([]ApplicationRow, error) {
	var apps []models.Application
	err := db.Preload("Job").
		Where("user_id = ?", userID).
		Order("applied_at DESC, id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	rows := make([]ApplicationRow, 0, len(apps))
	for _, a := range apps {
		if a.Job == nil {
			continue
		}
		job := *a.Job
		a.Job = nil
		rows = append(rows, ApplicationRow{Application: a, Job: job})
	}
	return rows, nil
}

func (r *trackingRepository) AppliedJobIDs(db *gorm.DB, userID string, among []uint) ([]uint, error) {
	return pluckJobIDs(db.Model(&models.Application{}).Order("applied_at DESC"), userID, among)
}

// UpdateApplicationStatus - безусловная перезапись статуса (граф переходов не проверяется)
func (r *trackingRepository) UpdateApplicationStatus(db *gorm.DB, id uint, status models.ApplicationStatus, notes *string) (*models.Application, error) {
	fields := map[string]interface{}{"status": status, "updated_at": time.Now()}
	if notes != nil {
		fields["notes"] = *notes
	}
	result := db.Model(&models.Application{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrApplicationNotFound
	}
	return r.FindApplication(db, id)
}

// CountApplications - status == "" считает все отклики пользователя
func (r *trackingRepository) CountApplications(db *gorm.DB, userID string, status models.ApplicationStatus) (int64, error) {
	var count int64
	q := db.Model(&models.Application{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *trackingRepository) CountAllApplications(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

func pluckJobIDs(q *gorm.DB, userID string, among []uint) ([]uint, error) {
	ids := []uint{}
	if among != nil && len(among) == 0 {
		return ids, nil
	}
	q = q.Where("user_id = ?", userID)
	if among != nil {
		q = q.Where("job_id IN ?", among)
	}
	err := q.Pluck("job_id", &ids).Error
	return ids, err
}
