package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"jobboard_backend/internal/models"
	"jobboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobView struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	CityName  *string `json:"cityName"`
	IsSaved   *bool   `json:"isSaved"`
	IsApplied *bool   `json:"isApplied"`
	Skills    []struct {
		SkillID   uint   `json:"skillId"`
		SkillName string `json:"skillName"`
	} `json:"skills"`
}

type jobPage struct {
	Jobs          []jobView `json:"jobs"`
	TotalElements int64     `json:"totalElements"`
	HasNext       bool      `json:"hasNext"`
	Pagination    struct {
		Page       int   `json:"page"`
		Size       int   `json:"size"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}

func jobTitles(jobs []jobView) []string {
	titles := make([]string, 0, len(jobs))
	for _, j := range jobs {
		titles = append(titles, j.Title)
	}
	return titles
}

func TestJobs_ListAndPagination(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)

	for i := 1; i <= 12; i++ {
		helpers.CreateJob(t, ts.DB, fmt.Sprintf("Job %02d", i), func(j *models.Job) { j.CityID = &md.City.ID })
	}
	helpers.CreateJob(t, ts.DB, "Hidden", func(j *models.Job) { j.IsActive = false })

	res := ts.SendRequest(t, http.MethodGet, "/api/jobs", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var page jobPage
	res.DecodeData(t, &page)
	assert.Len(t, page.Jobs, 10)
	assert.Equal(t, int64(12), page.TotalElements)
	assert.True(t, page.HasNext)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.NotContains(t, jobTitles(page.Jobs), "Hidden")
	require.NotNil(t, page.Jobs[0].CityName)
	assert.Equal(t, "Bengaluru", *page.Jobs[0].CityName)
	// Без зрителя флагов нет
	assert.Nil(t, page.Jobs[0].IsSaved)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs?page=2&size=10", "", nil)
	res.DecodeData(t, &page)
	assert.Len(t, page.Jobs, 2)
	assert.False(t, page.HasNext)

	// size ограничен сверху
	res = ts.SendRequest(t, http.MethodGet, "/api/jobs?size=500", "", nil)
	res.DecodeData(t, &page)
	assert.Equal(t, 50, page.Pagination.Size)
}

func TestJobs_Search(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)

	salary := 90000
	helpers.CreateJob(t, ts.DB, "Go Backend Engineer", func(j *models.Job) {
		j.LocationType = models.LocationRemote
		j.SalaryMax = &salary
		j.CityID = &md.City.ID
	})
	helpers.CreateJob(t, ts.DB, "Frontend Intern", func(j *models.Job) {
		j.EmploymentType = models.EmploymentInternship
	})
	helpers.CreateJob(t, ts.DB, "Data Analyst", nil)

	res := ts.SendRequest(t, http.MethodPost, "/api/jobs/search", "", map[string]interface{}{"keyword": "backend"})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var page jobPage
	res.DecodeData(t, &page)
	assert.Equal(t, []string{"Go Backend Engineer"}, jobTitles(page.Jobs))

	res = ts.SendRequest(t, http.MethodPost, "/api/jobs/search", "", map[string]interface{}{"employmentType": "INTERNSHIP"})
	res.DecodeData(t, &page)
	assert.Equal(t, []string{"Frontend Intern"}, jobTitles(page.Jobs))

	res = ts.SendRequest(t, http.MethodPost, "/api/jobs/search", "", map[string]interface{}{
		"locationType": "REMOTE",
		"cityId":       md.City.ID,
	})
	res.DecodeData(t, &page)
	assert.Equal(t, []string{"Go Backend Engineer"}, jobTitles(page.Jobs))

	// page/size из query важнее тела
	res = ts.SendRequest(t, http.MethodPost, "/api/jobs/search?size=1", "", map[string]interface{}{"size": 5})
	res.DecodeData(t, &page)
	assert.Len(t, page.Jobs, 1)
	assert.Equal(t, int64(3), page.TotalElements)

	res = ts.SendRequest(t, http.MethodPost, "/api/jobs/search", "", map[string]interface{}{"locationType": "MOON"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJobs_SaveApplyFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, user := ts.CreateAndLoginUser(t, "Seeker", "seeker@test.com", models.UserRoleUser)
	job := helpers.CreateJob(t, ts.DB, "Platform Engineer", nil)
	other := helpers.CreateJob(t, ts.DB, "SRE", nil)

	savePath := fmt.Sprintf("/api/jobs/%d/save/%s", job.ID, user.ID)
	res := ts.SendRequest(t, http.MethodPost, savePath, token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	assert.Equal(t, "Job saved", res.Envelope.Message)

	// Повторное сохранение не создает дубль
	res = ts.SendRequest(t, http.MethodPost, savePath, token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	var count int64
	ts.DB.Model(&models.SavedJob{}).Count(&count)
	assert.Equal(t, int64(1), count)

	res = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/jobs/9999/save/%s", user.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Job not found", res.Envelope.Message)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/saved/"+user.ID+"/ids", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var ids []uint
	res.DecodeData(t, &ids)
	assert.Equal(t, []uint{job.ID}, ids)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/saved/"+user.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var saved jobPage
	res.DecodeData(t, &saved)
	assert.Equal(t, []string{"Platform Engineer"}, jobTitles(saved.Jobs))

	applyPath := fmt.Sprintf("/api/jobs/%d/apply/%s", job.ID, user.ID)
	res = ts.SendRequest(t, http.MethodPost, applyPath, token, map[string]string{"coverLetter": "Hire me"})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	assert.Equal(t, "Application submitted", res.Envelope.Message)
	var app models.Application
	res.DecodeData(t, &app)
	assert.Equal(t, models.ApplicationPending, app.Status)

	res = ts.SendRequest(t, http.MethodPost, applyPath, token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Already applied to this job", res.Envelope.Message)

	// Отклик без тела
	res = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/jobs/%d/apply/%s", other.ID, user.ID), token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/applied/"+user.ID+"/ids", token, nil)
	res.DecodeData(t, &ids)
	assert.ElementsMatch(t, []uint{job.ID, other.ID}, ids)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/applications/"+user.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var apps []struct {
		Application models.Application `json:"application"`
		Job         jobView            `json:"job"`
	}
	res.DecodeData(t, &apps)
	assert.Len(t, apps, 2)

	res = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/jobs/applications/%s/%d", user.ID, app.ID), token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)

	// Флаги зрителя в деталях и списке
	res = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d?userId=%s", job.ID, user.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var detail jobView
	res.DecodeData(t, &detail)
	require.NotNil(t, detail.IsSaved)
	assert.True(t, *detail.IsSaved)
	assert.True(t, *detail.IsApplied)

	res = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d", other.ID), "", nil)
	res.DecodeData(t, &detail)
	require.NotNil(t, detail.IsSaved)
	assert.False(t, *detail.IsSaved)
	assert.False(t, *detail.IsApplied)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/stats/"+user.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var stats struct {
		NewJobsToday     int64 `json:"newJobsToday"`
		ApplicationsSent int64 `json:"applicationsSent"`
		SavedJobs        int64 `json:"savedJobs"`
		InterviewCalls   int64 `json:"interviewCalls"`
	}
	res.DecodeData(t, &stats)
	assert.Equal(t, int64(2), stats.NewJobsToday)
	assert.Equal(t, int64(2), stats.ApplicationsSent)
	assert.Equal(t, int64(1), stats.SavedJobs)
	assert.Equal(t, int64(0), stats.InterviewCalls)

	res = ts.SendRequest(t, http.MethodDelete, savePath, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Job unsaved", res.Envelope.Message)
	res = ts.SendRequest(t, http.MethodDelete, savePath, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Saved job not found", res.Envelope.Message)
}

func TestJobs_OwnerRoutes(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	tokenA, userA := ts.CreateAndLoginUser(t, "A", "a@test.com", models.UserRoleUser)
	tokenB, userB := ts.CreateAndLoginUser(t, "B", "b@test.com", models.UserRoleUser)
	job := helpers.CreateJob(t, ts.DB, "Shared", nil)

	res := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/jobs/%d/apply/%s", job.ID, userA.ID), tokenA, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	var app models.Application
	res.DecodeData(t, &app)

	res = ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/jobs/%d/save/%s", job.ID, userA.ID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/saved/"+userA.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Чужой отклик не виден даже через свой userId
	res = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/jobs/applications/%s/%d", userB.ID, app.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Application not found", res.Envelope.Message)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestJobs_Recommended(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)
	token, user := ts.CreateAndLoginUser(t, "Rec", "rec@test.com", models.UserRoleUser)

	plain := helpers.CreateJob(t, ts.DB, "Unrelated", nil)
	matched := helpers.CreateJob(t, ts.DB, "Go Developer", nil)
	require.NoError(t, ts.DB.Create(&models.JobSkill{JobID: matched.ID, SkillID: md.Skills[0].ID}).Error)

	// Без профиля - обычный список
	res := ts.SendRequest(t, http.MethodGet, "/api/jobs/recommended/"+user.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var page jobPage
	res.DecodeData(t, &page)
	assert.Len(t, page.Jobs, 2)

	onboard(t, ts, token, user.ID, md)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/recommended/"+user.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	res.DecodeData(t, &page)
	require.Len(t, page.Jobs, 2, "рекомендации только переупорядочивают")
	assert.Equal(t, matched.ID, page.Jobs[0].ID)
	assert.Equal(t, plain.ID, page.Jobs[1].ID)
	require.Len(t, page.Jobs[0].Skills, 1)
	assert.Equal(t, "Go", page.Jobs[0].Skills[0].SkillName)
}
