package services_test

import (
	"testing"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type jobFixture struct {
	db       *gorm.DB
	jobs     services.JobService
	tracking services.TrackingService
	admin    services.AdminService
	master   *helpers.MasterData
}

func newJobFixture(t *testing.T) *jobFixture {
	db := helpers.NewTestDB(t)
	jobRepo := repositories.NewJobRepository()
	masterRepo := repositories.NewMasterRepository()
	trackingRepo := repositories.NewTrackingRepository()
	profileRepo := repositories.NewProfileRepository()
	enricher := services.NewJobEnricher(jobRepo, masterRepo, trackingRepo)

	return &jobFixture{
		db:       db,
		jobs:     services.NewJobService(jobRepo, profileRepo, enricher),
		tracking: services.NewTrackingService(jobRepo, trackingRepo, enricher),
		admin:    services.NewAdminService(jobRepo, masterRepo, trackingRepo, enricher),
		master:   helpers.SeedMasterData(t, db),
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       repositories.Page
	}{
		{"defaults", 0, 0, repositories.Page{Number: 1, Size: 10}},
		{"negative", -3, -1, repositories.Page{Number: 1, Size: 10}},
		{"capped", 2, 500, repositories.Page{Number: 2, Size: 50}},
		{"as is", 3, 20, repositories.Page{Number: 3, Size: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.NewPage(tt.page, tt.size))
		})
	}
}

func TestJobService_ListJobsPagination(t *testing.T) {
	f := newJobFixture(t)
	for i := 0; i < 12; i++ {
		helpers.CreateJob(t, f.db, "Job", nil)
	}
	helpers.CreateJob(t, f.db, "Hidden", func(j *models.Job) { j.IsActive = false })
	featured := helpers.CreateJob(t, f.db, "Featured", func(j *models.Job) { j.IsFeatured = true })

	first, err := f.jobs.ListJobs(f.db, services.NewPage(1, 10), "")
	require.NoError(t, err)
	assert.Len(t, first.Jobs, 10)
	assert.Equal(t, int64(13), first.TotalElements)
	assert.True(t, first.HasNext)
	assert.Equal(t, 2, first.Pagination.TotalPages)
	assert.Equal(t, featured.ID, first.Jobs[0].ID, "featured первым")
	assert.Nil(t, first.Jobs[0].IsSaved, "без зрителя флагов нет")

	second, err := f.jobs.ListJobs(f.db, services.NewPage(2, 10), "")
	require.NoError(t, err)
	assert.Len(t, second.Jobs, 3)
	assert.False(t, second.HasNext)
}

func TestJobService_SearchFilters(t *testing.T) {
	f := newJobFixture(t)
	cityID := f.master.City.ID
	salary := 90000

	helpers.CreateJob(t, f.db, "Senior Go Engineer", func(j *models.Job) {
		j.LocationType = models.LocationRemote
		j.CityID = &cityID
		j.SalaryMax = &salary
		j.ExperienceMinYears = 3
	})
	helpers.CreateJob(t, f.db, "Go Intern", func(j *models.Job) {
		j.EmploymentType = models.EmploymentInternship
	})
	helpers.CreateJob(t, f.db, "Accountant", nil)

	result, err := f.jobs.SearchJobs(f.db, &dto.JobSearchRequest{Keyword: "go"}, services.NewPage(1, 10), "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalElements)

	result, err = f.jobs.SearchJobs(f.db, &dto.JobSearchRequest{Keyword: "go", LocationType: "REMOTE"}, services.NewPage(1, 10), "")
	require.NoError(t, err)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "Senior Go Engineer", result.Jobs[0].Title)
	require.NotNil(t, result.Jobs[0].CityName)
	assert.Equal(t, "Bengaluru", *result.Jobs[0].CityName)

	exp := 1
	result, err = f.jobs.SearchJobs(f.db, &dto.JobSearchRequest{ExperienceLevel: &exp}, services.NewPage(1, 10), "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalElements, "вакансия с опытом от 3 лет отфильтрована")
}

func TestJobService_RecommendReordersOnly(t *testing.T) {
	f := newJobFixture(t)
	user := helpers.CreateUser(t, f.db, "A", "a@test.com", helpers.TestPassword, models.UserRoleUser)

	plain := helpers.CreateJob(t, f.db, "Plain", nil)
	matched := helpers.CreateJob(t, f.db, "Matched", nil)
	require.NoError(t, repositories.NewJobRepository().ReplaceSkills(f.db, matched.ID, []uint{f.master.Skills[0].ID}))

	// Без профиля - обычный список
	result, err := f.jobs.RecommendJobs(f.db, user.ID, services.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalElements)

	roleID := f.master.Role.ID
	profile := &models.Profile{UserID: user.ID, PreferredRoleID: &roleID}
	require.NoError(t, f.db.Create(profile).Error)

	result, err = f.jobs.RecommendJobs(f.db, user.ID, services.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, result.Jobs, 2, "все активные вакансии остаются видимыми")
	assert.Equal(t, matched.ID, result.Jobs[0].ID)
	assert.Equal(t, plain.ID, result.Jobs[1].ID)
	require.NotNil(t, result.Jobs[0].IsSaved)
}

func TestJobService_DetailFlags(t *testing.T) {
	f := newJobFixture(t)
	user := helpers.CreateUser(t, f.db, "A", "a@test.com", helpers.TestPassword, models.UserRoleUser)
	job := helpers.CreateJob(t, f.db, "Backend", nil)

	view, err := f.jobs.GetJobDetail(f.db, job.ID, "")
	require.NoError(t, err)
	require.NotNil(t, view.IsSaved)
	assert.False(t, *view.IsSaved)
	assert.Equal(t, []repositories.SkillTag{}, view.Skills)

	_, err = f.tracking.SaveJob(f.db, user.ID, job.ID)
	require.NoError(t, err)

	view, err = f.jobs.GetJobDetail(f.db, job.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, *view.IsSaved)
	assert.False(t, *view.IsApplied)

	_, err = f.jobs.GetJobDetail(f.db, 9999, "")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}
