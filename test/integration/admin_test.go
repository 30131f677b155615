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

func TestAdmin_RequiresAdminRole(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := ts.CreateAndLoginUser(t, "User", "user@test.com", models.UserRoleUser)

	res := ts.SendRequest(t, http.MethodGet, "/api/admin/jobs/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "Admin access required", res.Envelope.Message)

	res = ts.SendRequest(t, http.MethodPost, "/api/admin/jobs", token, map[string]string{"title": "x", "company": "y"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = ts.SendRequest(t, http.MethodGet, "/api/admin/jobs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdmin_RoleIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token, _ := ts.CreateAndLoginUser(t, "Admin", "admin@test.com", models.UserRole("Admin"))

	res := ts.SendRequest(t, http.MethodGet, "/api/admin/jobs/stats", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, res.Body)
}

func TestAdmin_JobLifecycle(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)
	token, admin := ts.CreateAndLoginUser(t, "Admin", "admin@test.com", models.UserRoleAdmin)

	res := ts.SendRequest(t, http.MethodPost, "/api/admin/jobs", token, map[string]interface{}{
		"title":               "Staff Engineer",
		"company":             "Acme",
		"cityId":              md.City.ID,
		"locationType":        "HYBRID",
		"employmentType":      "FULL_TIME",
		"salaryMin":           100,
		"salaryMax":           200,
		"isSalaryDisclosed":   true,
		"applicationDeadline": "2030-01-31",
		"skillIds":            []uint{md.Skills[0].ID, md.Skills[1].ID},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	assert.Equal(t, "Job created", res.Envelope.Message)
	var created jobView
	res.DecodeData(t, &created)
	assert.Len(t, created.Skills, 2)

	var job models.Job
	require.NoError(t, ts.DB.First(&job, created.ID).Error)
	require.NotNil(t, job.PostedBy)
	assert.Equal(t, admin.ID, *job.PostedBy)
	assert.True(t, job.IsActive)

	res = ts.SendRequest(t, http.MethodPost, "/api/admin/jobs", token, map[string]interface{}{
		"title":    "Ghost",
		"company":  "Acme",
		"skillIds": []uint{9999},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var total int64
	ts.DB.Model(&models.Job{}).Count(&total)
	assert.Equal(t, int64(1), total, "неудачное создание откатывается")

	jobPath := fmt.Sprintf("/api/admin/jobs/%d", created.ID)

	// Без skillIds навыки не меняются
	res = ts.SendRequest(t, http.MethodPut, jobPath, token, map[string]interface{}{
		"title":   "Principal Engineer",
		"company": "Acme",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var updated jobView
	res.DecodeData(t, &updated)
	assert.Equal(t, "Principal Engineer", updated.Title)
	assert.Len(t, updated.Skills, 2)

	res = ts.SendRequest(t, http.MethodPut, jobPath, token, map[string]interface{}{
		"title":    "Principal Engineer",
		"company":  "Acme",
		"skillIds": []uint{md.Skills[2].ID},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	res.DecodeData(t, &updated)
	require.Len(t, updated.Skills, 1)
	assert.Equal(t, "Docker", updated.Skills[0].SkillName)

	res = ts.SendRequest(t, http.MethodPatch, jobPath+"/status?isActive=false", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	require.NoError(t, ts.DB.First(&job, created.ID).Error)
	assert.False(t, job.IsActive)

	res = ts.SendRequest(t, http.MethodPatch, jobPath+"/status?isActive=maybe", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Неактивная вакансия пропадает из публичного списка, но есть у админа
	res = ts.SendRequest(t, http.MethodGet, "/api/jobs", "", nil)
	var public jobPage
	res.DecodeData(t, &public)
	assert.Empty(t, public.Jobs)

	res = ts.SendRequest(t, http.MethodGet, "/api/admin/jobs", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var all jobPage
	res.DecodeData(t, &all)
	assert.Len(t, all.Jobs, 1)

	res = ts.SendRequest(t, http.MethodGet, "/api/admin/jobs/stats", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var stats struct {
		TotalJobs         int64 `json:"totalJobs"`
		ActiveJobs        int64 `json:"activeJobs"`
		TotalApplications int64 `json:"totalApplications"`
	}
	res.DecodeData(t, &stats)
	assert.Equal(t, int64(1), stats.TotalJobs)
	assert.Equal(t, int64(0), stats.ActiveJobs)

	res = ts.SendRequest(t, http.MethodDelete, jobPath, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Job deleted", res.Envelope.Message)

	res = ts.SendRequest(t, http.MethodDelete, jobPath, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	res = ts.SendRequest(t, http.MethodPut, jobPath, token, map[string]interface{}{"title": "x", "company": "y"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdmin_ApplicationStatus(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	adminToken, _ := ts.CreateAndLoginUser(t, "Admin", "admin@test.com", models.UserRoleAdmin)
	userToken, user := ts.CreateAndLoginUser(t, "Seeker", "seeker@test.com", models.UserRoleUser)
	job := helpers.CreateJob(t, ts.DB, "Backend", nil)

	res := ts.SendRequest(t, http.MethodPost, fmt.Sprintf("/api/jobs/%d/apply/%s", job.ID, user.ID), userToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	var app models.Application
	res.DecodeData(t, &app)

	path := fmt.Sprintf("/api/admin/jobs/applications/%d/status", app.ID)
	res = ts.SendRequest(t, http.MethodPatch, path+"?status=INTERVIEW_SCHEDULED&notes=Monday%2010am", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var updated models.Application
	res.DecodeData(t, &updated)
	assert.Equal(t, models.ApplicationInterviewScheduled, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "Monday 10am", *updated.Notes)

	res = ts.SendRequest(t, http.MethodGet, "/api/jobs/stats/"+user.ID, userToken, nil)
	var stats struct {
		InterviewCalls int64 `json:"interviewCalls"`
	}
	res.DecodeData(t, &stats)
	assert.Equal(t, int64(1), stats.InterviewCalls)

	// Плоское перечисление: возврат назад разрешен
	res = ts.SendRequest(t, http.MethodPatch, path+"?status=PENDING", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = ts.SendRequest(t, http.MethodPatch, path+"?status=ON_HOLD_FOREVER", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = ts.SendRequest(t, http.MethodPatch, "/api/admin/jobs/applications/9999/status?status=HIRED", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Application not found", res.Envelope.Message)
}
