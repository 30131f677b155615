package repositories

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrJobNotFound = errors.New("job not found")

// JobFilter - конъюнктивные фильтры поиска; nil/пустое значение фильтр не применяет
type JobFilter struct {
	Keyword         string
	LocationType    models.LocationType
	EmploymentType  models.EmploymentType
	CityID          *uint
	ExperienceLevel *int
	SalaryMin       *int
}

// JobRanking - порядок рекомендаций: сначала вакансии роли, затем по навыкам
type JobRanking struct {
	RoleJobIDs  []uint
	SkillJobIDs []uint
}

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id uint) (*models.Job, error)
	Exists(db *gorm.DB, id uint) (bool, error)
	UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) (*models.Job, error)
	Delete(db *gorm.DB, id uint) error
	ReplaceSkills(db *gorm.DB, jobID uint, skillIDs []uint) error

	ListActive(db *gorm.DB, page Page) ([]models.Job, int64, error)
	Search(db *gorm.DB, filter JobFilter, page Page) ([]models.Job, int64, error)
	ListRanked(db *gorm.DB, ranking JobRanking, page Page) ([]models.Job, int64, error)
	ListAll(db *gorm.DB, page Page) ([]models.Job, int64, error)

	SkillsForJobs(db *gorm.DB, jobIDs []uint) (map[uint][]SkillTag, error)
	JobIDsBySkills(db *gorm.DB, skillIDs []uint) ([]uint, error)
	JobIDsByRole(db *gorm.DB, roleID uint) ([]uint, error)

	CountAll(db *gorm.DB) (int64, error)
	CountActive(db *gorm.DB) (int64, error)
	CountActiveSince(db *gorm.DB, since time.Time) (int64, error)
}

type jobRepository struct{}

func NewJobRepository() JobRepository {
	return &jobRepository{}
}

// Create - isActive / isSalaryDisclosed пишутся явно, даже если false
func (r *jobRepository) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *jobRepository) FindByID(db *gorm.DB, id uint) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Exists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *jobRepository) UpdateFields(db *gorm.DB, id uint, fields map[string]interface{}) (*models.Job, error) {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Job{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrJobNotFound
	}
	return r.FindByID(db, id)
}

func (r *jobRepository) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Job{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ReplaceSkills - delete-all + insert; вызывать внутри транзакции
func (r *jobRepository) ReplaceSkills(db *gorm.DB, jobID uint, skillIDs []uint) error {
	if err := db.Where("job_id = ?", jobID).Delete(&models.JobSkill{}).Error; err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	rows := make([]models.JobSkill, 0, len(skillIDs))
	for _, id := range uniqueIDs(skillIDs) {
		rows = append(rows, models.JobSkill{JobID: jobID, SkillID: id})
	}
	return db.Create(&rows).Error
}

// ============================================
// Списки
// ============================================

func (r *jobRepository) ListActive(db *gorm.DB, page Page) ([]models.Job, int64, error) {
	q := db.Model(&models.Job{}).Where("is_active = ?", true)
	return r.paginate(q, page, "created_at DESC, id DESC")
}

// Search - фильтры объединяются через AND; порядок: избранные, затем новые
func (r *jobRepository) Search(db *gorm.DB, filter JobFilter, page Page) ([]models.Job, int64, error) {
	q := db.Model(&models.Job{}).Where("is_active = ?", true)

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		like := "%" + escapeLike(strings.ToLower(kw)) + "%"
		q = q.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\\')",
			like, like, like,
		)
	}
	if filter.LocationType != "" {
		q = q.Where("location_type = ?", filter.LocationType)
	}
	if filter.EmploymentType != "" {
		q = q.Where("employment_type = ?", filter.EmploymentType)
	}
	if filter.CityID != nil {
		q = q.Where("city_id = ?", *filter.CityID)
	}
	if filter.ExperienceLevel != nil {
		q = q.Where("experience_min_years <= ?", *filter.ExperienceLevel)
	}
	if filter.SalaryMin != nil {
		q = q.Where("salary_max >= ?", *filter.SalaryMin)
	}

	return r.paginate(q, page, "is_featured DESC, created_at DESC, id DESC")
}

// ListRanked - все активные вакансии; ранжирование только меняет порядок
func (r *jobRepository) ListRanked(db *gorm.DB, ranking JobRanking, page Page) ([]models.Job, int64, error) {
	q := db.Model(&models.Job{}).Where("is_active = ?", true)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var (
		sql  []string
		vars []interface{}
	)
	if len(ranking.RoleJobIDs) > 0 {
		sql = append(sql, "CASE WHEN id IN (?) THEN 0 ELSE 1 END")
		vars = append(vars, ranking.RoleJobIDs)
	}
	if len(ranking.SkillJobIDs) > 0 {
		sql = append(sql, "CASE WHEN id IN (?) THEN 0 ELSE 1 END")
		vars = append(vars, ranking.SkillJobIDs)
	}
	sql = append(sql, "is_featured DESC", "created_at DESC", "id DESC")

	jobs := []models.Job{}
	err := q.Session(&gorm.Session{}).
		Clauses(clause.OrderBy{Expression: clause.Expr{SQL: strings.Join(sql, ", "), Vars: vars}}).
		Limit(page.Size).Offset(page.Offset()).
		Find(&jobs).Error
	return jobs, total, err
}

// ListAll - для админки, включая неактивные
func (r *jobRepository) ListAll(db *gorm.DB, page Page) ([]models.Job, int64, error) {
	return r.paginate(db.Model(&models.Job{}), page, "created_at DESC, id DESC")
}

func (r *jobRepository) paginate(q *gorm.DB, page Page, order string) ([]models.Job, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	jobs := []models.Job{}
	err := q.Session(&gorm.Session{}).
		Order(order).
		Limit(page.Size).Offset(page.Offset()).
		Find(&jobs).Error
	return jobs, total, err
}

// ============================================
// Навыки вакансий (пакетно, без N+1)
// ============================================

func (r *jobRepository) SkillsForJobs(db *gorm.DB, jobIDs []uint) (map[uint][]SkillTag, error) {
	out := make(map[uint][]SkillTag, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		JobID     uint
		SkillID   uint
		SkillName string
	}
	err := db.Table("job_skills").
		Select("job_skills.job_id AS job_id, job_skills.skill_id AS skill_id, skills.name AS skill_name").
		Joins("JOIN skills ON skills.id = job_skills.skill_id").
		Where("job_skills.job_id IN ?", jobIDs).
		Order("job_skills.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.JobID] = append(out[row.JobID], SkillTag{SkillID: row.SkillID, SkillName: row.SkillName})
	}
	return out, nil
}

func (r *jobRepository) JobIDsBySkills(db *gorm.DB, skillIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(skillIDs) == 0 {
		return ids, nil
	}
	err := db.Model(&models.JobSkill{}).
		Distinct("job_id").
		Where("skill_id IN ?", skillIDs).
		Pluck("job_id", &ids).Error
	return ids, err
}

func (r *jobRepository) JobIDsByRole(db *gorm.DB, roleID uint) ([]uint, error) {
	ids := []uint{}
	err := db.Table("job_skills").
		Distinct("job_skills.job_id").
		Joins("JOIN skills ON skills.id = job_skills.skill_id").
		Where("skills.role_id = ?", roleID).
		Pluck("job_skills.job_id", &ids).Error
	return ids, err
}

// ============================================
// Счетчики
// ============================================

func (r *jobRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Count(&count).Error
	return count, err
}

func (r *jobRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *jobRepository) CountActiveSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("is_active = ? AND created_at >= ?", true, since).Count(&count).Error
	return count, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
