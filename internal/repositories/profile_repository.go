package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
	ErrPersonalDetailsEmpty = errors.New("personal details not found")
	ErrResumeNotFound       = errors.New("resume not found")
)

type ProfileRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Create(db *gorm.DB, profile *models.Profile) error
	UpdateFields(db *gorm.DB, profileID uint, fields map[string]interface{}) (*models.Profile, error)

	// Навыки профиля
	ListSkills(db *gorm.DB, profileID uint) ([]SkillTag, error)
	ReplaceSkills(db *gorm.DB, profileID uint, skillIDs []uint) error
	SkillIDs(db *gorm.DB, profileID uint) ([]uint, error)

	// Названия для составного профиля
	ResolveNames(db *gorm.DB, p *models.Profile) (ProfileNames, error)

	// Personal details (1:1)
	FindPersonalDetails(db *gorm.DB, profileID uint) (*models.PersonalDetails, error)
	UpsertPersonalDetails(db *gorm.DB, details *models.PersonalDetails) error

	// Resume (1:1)
	FindResume(db *gorm.DB, profileID uint) (*models.Resume, error)
	UpsertResume(db *gorm.DB, resume *models.Resume) error
	DeleteResume(db *gorm.DB, profileID uint) (*models.Resume, error)
}

// ProfileNames - разрешенные названия предпочтений
type ProfileNames struct {
	CityName     *string
	LocalityName *string
	RoleName     *string
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(db *gorm.DB, profile *models.Profile) error {
	if err := db.Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateFields обновляет только переданные колонки и возвращает свежую строку
func (r *profileRepository) UpdateFields(db *gorm.DB, profileID uint, fields map[string]interface{}) (*models.Profile, error) {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.Profile{}).Where("id = ?", profileID).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProfileNotFound
	}

	var profile models.Profile
	if err := db.First(&profile, profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ============================================
// Навыки
// ============================================

func (r *profileRepository) ListSkills(db *gorm.DB, profileID uint) ([]SkillTag, error) {
	tags := []SkillTag{}
	err := db.Table("profile_skills").
		Select("profile_skills.skill_id AS skill_id, skills.name AS skill_name").
		Joins("JOIN skills ON skills.id = profile_skills.skill_id").
		Where("profile_skills.profile_id = ?", profileID).
		Order("profile_skills.id ASC").
		Scan(&tags).Error
	return tags, err
}

// ReplaceSkills - delete-all + insert; вызывать внутри транзакции
func (r *profileRepository) ReplaceSkills(db *gorm.DB, profileID uint, skillIDs []uint) error {
	if err := db.Where("profile_id = ?", profileID).Delete(&models.ProfileSkill{}).Error; err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	rows := make([]models.ProfileSkill, 0, len(skillIDs))
	for _, id := range uniqueIDs(skillIDs) {
		rows = append(rows, models.ProfileSkill{ProfileID: profileID, SkillID: id})
	}
	return db.Create(&rows).Error
}

func (r *profileRepository) SkillIDs(db *gorm.DB, profileID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.ProfileSkill{}).Where("profile_id = ?", profileID).Pluck("skill_id", &ids).Error
	return ids, err
}

func (r *profileRepository) ResolveNames(db *gorm.DB, p *models.Profile) (ProfileNames, error) {
	var names ProfileNames
	lookups := []struct {
		id    *uint
		model interface{}
		dst   **string
	}{
		{p.PreferredCityID, &models.City{}, &names.CityName},
		{p.PreferredLocalityID, &models.Locality{}, &names.LocalityName},
		{p.PreferredRoleID, &models.JobRole{}, &names.RoleName},
	}
	for _, l := range lookups {
		if l.id == nil {
			continue
		}
		var found []string
		if err := db.Model(l.model).Where("id = ?", *l.id).Limit(1).Pluck("name", &found).Error; err != nil {
			return names, err
		}
		if len(found) > 0 {
			name := found[0]
			*l.dst = &name
		}
	}
	return names, nil
}

// ============================================
// Personal details
// ============================================

func (r *profileRepository) FindPersonalDetails(db *gorm.DB, profileID uint) (*models.PersonalDetails, error) {
	var details models.PersonalDetails
	if err := db.Where("profile_id = ?", profileID).First(&details).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonalDetailsEmpty
		}
		return nil, err
	}
	return &details, nil
}

// UpsertPersonalDetails - ON CONFLICT по уникальному profile_id
func (r *profileRepository) UpsertPersonalDetails(db *gorm.DB, details *models.PersonalDetails) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date_of_birth", "marital_status", "address", "pincode", "nationality"}),
	}).Create(details).Error
}

// ============================================
// Resume
// ============================================

func (r *profileRepository) FindResume(db *gorm.DB, profileID uint) (*models.Resume, error) {
	var resume models.Resume
	if err := db.Where("profile_id = ?", profileID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *profileRepository) UpsertResume(db *gorm.DB, resume *models.Resume) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_name", "file_path", "uploaded_at"}),
	}).Create(resume).Error
}

func (r *profileRepository) DeleteResume(db *gorm.DB, profileID uint) (*models.Resume, error) {
	resume, err := r.FindResume(db, profileID)
	if err != nil {
		return nil, err
	}
	result := db.Delete(&models.Resume{}, resume.ID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrResumeNotFound
	}
	return resume, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
