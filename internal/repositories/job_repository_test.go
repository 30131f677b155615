package repositories_test

import (
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepository_ListRanked(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewJobRepository()

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	at := func(minutes int) func(*models.Job) {
		return func(j *models.Job) { j.CreatedAt = base.Add(time.Duration(minutes) * time.Minute) }
	}

	// Старые вакансии с совпадениями должны обогнать свежие без совпадений
	roleOld := helpers.CreateJob(t, db, "Role old", at(0))
	roleNew := helpers.CreateJob(t, db, "Role new", at(1))
	skill := helpers.CreateJob(t, db, "Skill", at(2))
	featured := helpers.CreateJob(t, db, "Featured", func(j *models.Job) {
		at(3)(j)
		j.IsFeatured = true
	})
	fresh := helpers.CreateJob(t, db, "Fresh", at(4))
	helpers.CreateJob(t, db, "Inactive", func(j *models.Job) {
		at(5)(j)
		j.IsActive = false
	})

	ranking := repositories.JobRanking{
		RoleJobIDs:  []uint{roleOld.ID, roleNew.ID},
		SkillJobIDs: []uint{roleOld.ID, skill.ID},
	}
	jobs, total, err := repo.ListRanked(db, ranking, repositories.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	ids := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []uint{roleOld.ID, roleNew.ID, skill.ID, featured.ID, fresh.ID}, ids)

	t.Run("single id per group", func(t *testing.T) {
		jobs, _, err := repo.ListRanked(db, repositories.JobRanking{SkillJobIDs: []uint{skill.ID}}, repositories.Page{Number: 1, Size: 2})
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, skill.ID, jobs[0].ID)
		assert.Equal(t, featured.ID, jobs[1].ID)
	})

	t.Run("no ranking", func(t *testing.T) {
		jobs, _, err := repo.ListRanked(db, repositories.JobRanking{}, repositories.Page{Number: 1, Size: 10})
		require.NoError(t, err)
		require.Len(t, jobs, 5)
		assert.Equal(t, featured.ID, jobs[0].ID)
		assert.Equal(t, fresh.ID, jobs[1].ID)
	})
}
