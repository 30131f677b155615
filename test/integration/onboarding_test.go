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

type onboardingStatus struct {
	HasProfile       bool `json:"hasProfile"`
	ProfileCompleted bool `json:"profileCompleted"`
	HasPreferences   bool `json:"hasPreferences"`
}

func basicProfileBody(md *helpers.MasterData) map[string]interface{} {
	return map[string]interface{}{
		"fullName":            "Asha Rao",
		"gender":              "FEMALE",
		"educationLevel":      "GRADUATE",
		"hasExperience":       true,
		"experienceLevel":     "YEARS_2",
		"currentSalary":       600000,
		"preferredCityId":     md.City.ID,
		"preferredLocalityId": md.Locality.ID,
		"whatsappUpdates":     true,
	}
}

// onboard проходит оба шага онбординга
func onboard(t *testing.T, ts *helpers.TestServer, token, userID string, md *helpers.MasterData) {
	t.Helper()

	res := ts.SendRequest(t, http.MethodPost, "/api/onboarding/profile/"+userID, token, basicProfileBody(md))
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)

	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/preferences/"+userID, token, map[string]interface{}{
		"preferredRoleId": md.Role.ID,
		"skillIds":        []uint{md.Skills[0].ID, md.Skills[1].ID},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
}

func TestOnboardingFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)
	token, user := ts.CreateAndLoginUser(t, "Asha", "asha@test.com", models.UserRoleUser)

	statusPath := "/api/onboarding/status/" + user.ID
	res := ts.SendRequest(t, http.MethodGet, statusPath, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var status onboardingStatus
	res.DecodeData(t, &status)
	assert.Equal(t, onboardingStatus{}, status)

	// Предпочтения без профиля
	early := ts.SendRequest(t, http.MethodPost, "/api/onboarding/preferences/"+user.ID, token, map[string]interface{}{
		"preferredRoleId": md.Role.ID,
		"skillIds":        []uint{md.Skills[0].ID},
	})
	assert.Equal(t, http.StatusNotFound, early.StatusCode)
	assert.Equal(t, "Profile not found. Complete onboarding first.", early.Envelope.Message)

	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/profile/"+user.ID, token, basicProfileBody(md))
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	assert.Equal(t, "Profile saved", res.Envelope.Message)

	// Повторное сохранение обновляет тот же профиль
	body := basicProfileBody(md)
	body["fullName"] = "Asha R."
	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/profile/"+user.ID, token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	var count int64
	ts.DB.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	res = ts.SendRequest(t, http.MethodGet, statusPath, token, nil)
	res.DecodeData(t, &status)
	assert.True(t, status.HasProfile)
	assert.False(t, status.ProfileCompleted)

	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/preferences/"+user.ID, token, map[string]interface{}{
		"preferredRoleId": md.Role.ID,
		"skillIds":        []uint{md.Skills[0].ID, md.Skills[2].ID},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	assert.Equal(t, "Preferences saved", res.Envelope.Message)

	res = ts.SendRequest(t, http.MethodGet, statusPath, token, nil)
	res.DecodeData(t, &status)
	assert.Equal(t, onboardingStatus{HasProfile: true, ProfileCompleted: true, HasPreferences: true}, status)

	// Навыки заменяются целиком
	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/preferences/"+user.ID, token, map[string]interface{}{
		"preferredRoleId": md.Role.ID,
		"skillIds":        []uint{md.Skills[1].ID},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	ts.DB.Model(&models.ProfileSkill{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOnboarding_Validation(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)
	token, user := ts.CreateAndLoginUser(t, "V", "v@test.com", models.UserRoleUser)

	body := basicProfileBody(md)
	body["gender"] = "ROBOT"
	res := ts.SendRequest(t, http.MethodPost, "/api/onboarding/profile/"+user.ID, token, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NotEmpty(t, res.Envelope.Errors)
	assert.Contains(t, res.Envelope.Errors[0], "gender")

	onboard(t, ts, token, user.ID, md)

	tooMany := make([]uint, 21)
	for i := range tooMany {
		tooMany[i] = md.Skills[0].ID
	}
	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/preferences/"+user.ID, token, map[string]interface{}{
		"preferredRoleId": md.Role.ID,
		"skillIds":        tooMany,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = ts.SendRequest(t, http.MethodPost, "/api/onboarding/preferences/"+user.ID, token, map[string]interface{}{
		"preferredRoleId": md.Role.ID,
		"skillIds":        []uint{9999},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, res.Body)
}

func TestOnboarding_OwnerOnly(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	tokenA, _ := ts.CreateAndLoginUser(t, "A", "a@test.com", models.UserRoleUser)
	_, userB := ts.CreateAndLoginUser(t, "B", "b@test.com", models.UserRoleUser)

	res := ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/onboarding/status/%s", userB.ID), tokenA, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "Forbidden", res.Envelope.Message)
}

func TestMasterData(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	md := helpers.SeedMasterData(t, ts.DB)
	require.NoError(t, ts.DB.Create(&models.City{Name: "Agra", State: "Uttar Pradesh"}).Error)

	res := ts.SendRequest(t, http.MethodGet, "/api/master/cities", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var cities []models.City
	res.DecodeData(t, &cities)
	require.Len(t, cities, 2)
	assert.Equal(t, "Agra", cities[0].Name)

	res = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/master/cities/%d/localities", md.City.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var localities []models.Locality
	res.DecodeData(t, &localities)
	assert.Len(t, localities, 1)

	res = ts.SendRequest(t, http.MethodGet, "/api/master/roles", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = ts.SendRequest(t, http.MethodGet, fmt.Sprintf("/api/master/roles/%d/skills", md.Role.ID), "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	var skills []models.Skill
	res.DecodeData(t, &skills)
	assert.Len(t, skills, 3)

	res = ts.SendRequest(t, http.MethodGet, "/api/master/cities/abc/localities", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHealthAndNotFound(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Envelope.Success)
	assert.Equal(t, "OK", res.Envelope.Message)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))

	missing := ts.SendRequest(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, "Route not found", missing.Envelope.Message)
}
