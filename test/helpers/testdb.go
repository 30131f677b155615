package helpers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB - отдельная in-memory SQLite на каждый тест с той же схемой, что и в production
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...), "AutoMigrate тестовой БД")

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser создает пользователя с email и паролем (пароль хешируется)
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	if role == "" {
		role = models.UserRoleUser
	}
	user := &models.User{
		Email:        &email,
		PasswordHash: &hash,
		Name:         name,
		Role:         role,
		Provider:     models.ProviderEmail,
	}
	require.NoError(t, db.Create(user).Error, "Не удалось создать пользователя %s", email)
	return user
}

// MasterData - минимальный справочник для тестов вакансий и онбординга
type MasterData struct {
	City     models.City
	Locality models.Locality
	Role     models.JobRole
	Skills   []models.Skill
}

func SeedMasterData(t *testing.T, db *gorm.DB) *MasterData {
	t.Helper()

	md := &MasterData{}
	md.City = models.City{Name: "Bengaluru", State: "Karnataka"}
	require.NoError(t, db.Create(&md.City).Error)

	md.Locality = models.Locality{CityID: md.City.ID, Name: "Koramangala"}
	require.NoError(t, db.Create(&md.Locality).Error)

	md.Role = models.JobRole{Name: "Backend Developer", Category: "Engineering"}
	require.NoError(t, db.Create(&md.Role).Error)

	for _, name := range []string{"Go", "PostgreSQL", "Docker"} {
		skill := models.Skill{Name: name, RoleID: md.Role.ID}
		require.NoError(t, db.Create(&skill).Error)
		md.Skills = append(md.Skills, skill)
	}
	return md
}

// CreateJob - активная вакансия; mutate меняет поля до сохранения
func CreateJob(t *testing.T, db *gorm.DB, title string, mutate func(*models.Job)) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:             title,
		Company:           "Acme",
		LocationType:      models.LocationOnsite,
		EmploymentType:    models.EmploymentFullTime,
		IsSalaryDisclosed: true,
		Vacancies:         1,
		IsActive:          true,
	}
	if mutate != nil {
		mutate(job)
	}
	require.NoError(t, db.Create(job).Error)
	return job
}
