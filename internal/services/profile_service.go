package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/storage"
	"jobboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Допустимые форматы резюме
var resumeTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

type ProfileService interface {
	GetFullProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.FullProfile, error)
	UpdateBasic(db *gorm.DB, userID string, req *dto.UpdateBasicProfileRequest) (*models.Profile, error)
	UpdateHeadline(db *gorm.DB, userID, headline string) (*models.Profile, error)
	UpdateSummary(db *gorm.DB, userID, summary string) (*models.Profile, error)

	GetPersonalDetails(db *gorm.DB, userID string) (*models.PersonalDetails, error)
	UpsertPersonalDetails(db *gorm.DB, userID string, req *dto.PersonalDetailsRequest) (*models.PersonalDetails, error)

	// Email change
	RequestEmailChange(ctx context.Context, db *gorm.DB, userID, newEmail string) (*dto.EmailChangeResponse, error)
	VerifyEmailChange(db *gorm.DB, userID string, req *dto.EmailChangeVerifyRequest) (*dto.EmailChangedResponse, error)

	// Employments
	ListEmployments(db *gorm.DB, userID string) ([]models.Employment, error)
	CreateEmployment(db *gorm.DB, userID string, req *dto.EmploymentRequest) (*models.Employment, error)
	UpdateEmployment(db *gorm.DB, userID string, id uint, req *dto.EmploymentRequest) (*models.Employment, error)
	DeleteEmployment(db *gorm.DB, userID string, id uint) error

	// Educations
	ListEducations(db *gorm.DB, userID string) ([]models.Education, error)
	CreateEducation(db *gorm.DB, userID string, req *dto.EducationRequest) (*models.Education, error)
	UpdateEducation(db *gorm.DB, userID string, id uint, req *dto.EducationRequest) (*models.Education, error)
	DeleteEducation(db *gorm.DB, userID string, id uint) error

	// Projects
	ListProjects(db *gorm.DB, userID string) ([]models.Project, error)
	CreateProject(db *gorm.DB, userID string, req *dto.ProjectRequest) (*models.Project, error)
	UpdateProject(db *gorm.DB, userID string, id uint, req *dto.ProjectRequest) (*models.Project, error)
	DeleteProject(db *gorm.DB, userID string, id uint) error

	// IT skills
	ListItSkills(db *gorm.DB, userID string) ([]models.ItSkill, error)
	CreateItSkill(db *gorm.DB, userID string, req *dto.ItSkillRequest) (*models.ItSkill, error)
	UpdateItSkill(db *gorm.DB, userID string, id uint, req *dto.ItSkillRequest) (*models.ItSkill, error)
	DeleteItSkill(db *gorm.DB, userID string, id uint) error

	// Resume
	GetResume(db *gorm.DB, userID string) (*models.Resume, error)
	UploadResume(ctx context.Context, db *gorm.DB, userID string, upload *dto.ResumeUpload) (*models.Resume, error)
	DeleteResume(ctx context.Context, db *gorm.DB, userID string) error
}

type ProfileServiceImpl struct {
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
	employmentRepo *repositories.ChildRepository[models.Employment]
	educationRepo  *repositories.ChildRepository[models.Education]
	projectRepo    *repositories.ChildRepository[models.Project]
	itSkillRepo    *repositories.ChildRepository[models.ItSkill]
	tokens         TokenService
	notifications  NotificationService
	storage        storage.Storage
	maxResumeSize  int64
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	employmentRepo *repositories.ChildRepository[models.Employment],
	educationRepo *repositories.ChildRepository[models.Education],
	projectRepo *repositories.ChildRepository[models.Project],
	itSkillRepo *repositories.ChildRepository[models.ItSkill],
	tokens TokenService,
	notifications NotificationService,
	fileStorage storage.Storage,
	maxResumeSize int64,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		employmentRepo: employmentRepo,
		educationRepo:  educationRepo,
		projectRepo:    projectRepo,
		itSkillRepo:    itSkillRepo,
		tokens:         tokens,
		notifications:  notifications,
		storage:        fileStorage,
		maxResumeSize:  maxResumeSize,
	}
}

// ============================================
// Составной профиль
// ============================================

// GetFullProfile - независимые чтения выполняются параллельно, первая ошибка отменяет остальные
func (s *ProfileServiceImpl) GetFullProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.FullProfile, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	full := &dto.FullProfile{Profile: *profile, ResumeHeadline: profile.Headline}

	g, gctx := errgroup.WithContext(ctx)
	q := func() *gorm.DB { return db.WithContext(gctx) }

	g.Go(func() error {
		names, err := s.profileRepo.ResolveNames(q(), profile)
		full.CityName, full.LocalityName, full.RoleName = names.CityName, names.LocalityName, names.RoleName
		return err
	})
	g.Go(func() error {
		user, err := s.userRepo.FindByID(q(), userID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil
			}
			return err
		}
		full.Phone, full.Email = user.Phone, user.Email
		full.EmailVerified = user.EmailVerifiedAt != nil
		return nil
	})
	g.Go(func() (err error) {
		full.Skills, err = s.profileRepo.ListSkills(q(), profile.ID)
		return err
	})
	g.Go(func() error {
		details, err := s.profileRepo.FindPersonalDetails(q(), profile.ID)
		if err != nil && !errors.Is(err, repositories.ErrPersonalDetailsEmpty) {
			return err
		}
		full.PersonalDetails = details
		return nil
	})
	g.Go(func() (err error) {
		full.Employments, err = s.employmentRepo.List(q(), profile.ID)
		return err
	})
	g.Go(func() (err error) {
		full.Educations, err = s.educationRepo.List(q(), profile.ID)
		return err
	})
	g.Go(func() (err error) {
		full.Projects, err = s.projectRepo.List(q(), profile.ID)
		return err
	})
	g.Go(func() (err error) {
		full.ItSkills, err = s.itSkillRepo.List(q(), profile.ID)
		return err
	})
	g.Go(func() error {
		resume, err := s.profileRepo.FindResume(q(), profile.ID)
		if err != nil && !errors.Is(err, repositories.ErrResumeNotFound) {
			return err
		}
		full.Resume = resume
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return full, nil
}

// ============================================
// Базовые поля
// ============================================

func (s *ProfileServiceImpl) UpdateBasic(db *gorm.DB, userID string, req *dto.UpdateBasicProfileRequest) (*models.Profile, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	putOptional(fields, "full_name", trimOptional(req.FullName))
	putOptional(fields, "gender", req.Gender)
	putOptional(fields, "education_level", req.EducationLevel)
	putOptional(fields, "has_experience", req.HasExperience)
	putOptional(fields, "experience_level", req.ExperienceLevel)
	putOptional(fields, "current_salary", req.CurrentSalary)
	putOptional(fields, "preferred_city_id", req.PreferredCityID.Or(req.CityID))
	putOptional(fields, "preferred_locality_id", req.PreferredLocalityID.Or(req.LocalityID))
	putOptional(fields, "notice_period", req.NoticePeriod)
	putOptional(fields, "preferred_role_id", req.PreferredRoleID)
	putOptional(fields, "headline", trimOptional(req.Headline))
	// not null колонка: null трактуется как false
	if req.WhatsappUpdates.Set {
		fields["whatsapp_updates"] = req.WhatsappUpdates.HasValue() && req.WhatsappUpdates.Value
	}

	if len(fields) == 0 {
		return profile, nil
	}
	return s.updateProfile(db, profile.ID, fields)
}

func (s *ProfileServiceImpl) UpdateHeadline(db *gorm.DB, userID, headline string) (*models.Profile, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}
	return s.updateProfile(db, profile.ID, map[string]interface{}{"headline": nullIfEmpty(headline)})
}

func (s *ProfileServiceImpl) UpdateSummary(db *gorm.DB, userID, summary string) (*models.Profile, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}
	return s.updateProfile(db, profile.ID, map[string]interface{}{"summary": nullIfEmpty(summary)})
}

func (s *ProfileServiceImpl) updateProfile(db *gorm.DB, profileID uint, fields map[string]interface{}) (*models.Profile, error) {
	updated, err := s.profileRepo.UpdateFields(db, profileID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return updated, nil
}

// ============================================
// Personal details
// ============================================

// GetPersonalDetails возвращает nil, если данные еще не заполнены
func (s *ProfileServiceImpl) GetPersonalDetails(db *gorm.DB, userID string) (*models.PersonalDetails, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}
	details, err := s.profileRepo.FindPersonalDetails(db, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrPersonalDetailsEmpty) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return details, nil
}

func (s *ProfileServiceImpl) UpsertPersonalDetails(db *gorm.DB, userID string, req *dto.PersonalDetailsRequest) (*models.PersonalDetails, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	details := &models.PersonalDetails{
		ProfileID:     profile.ID,
		DateOfBirth:   dob,
		MaritalStatus: enumPtr[models.MaritalStatus](req.MaritalStatus),
		Address:       req.Address,
		Pincode:       req.Pincode,
		Nationality:   req.Nationality,
	}
	if err := s.profileRepo.UpsertPersonalDetails(db, details); err != nil {
		return nil, apperrors.InternalError(err)
	}

	saved, err := s.profileRepo.FindPersonalDetails(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return saved, nil
}

// ============================================
// Смена email
// ============================================

func (s *ProfileServiceImpl) RequestEmailChange(ctx context.Context, db *gorm.DB, userID, newEmail string) (*dto.EmailChangeResponse, error) {
	email := NormalizeEmail(newEmail)

	taken, err := s.userRepo.EmailTaken(db, email, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	code, err := s.tokens.CreateEmailChangeOTP(db, userID, email)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.SendEmailChangeOTP(ctx, email, code); err != nil {
		logger.CtxWithError(ctx, "Failed to send email change OTP", err, "user_id", userID)
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "profile", "Failed to send OTP email", http.StatusInternalServerError)
	}

	return &dto.EmailChangeResponse{ExpiresInSeconds: int(EmailChangeOTPTTL / time.Second)}, nil
}

func (s *ProfileServiceImpl) VerifyEmailChange(db *gorm.DB, userID string, req *dto.EmailChangeVerifyRequest) (*dto.EmailChangedResponse, error) {
	email := NormalizeEmail(req.NewEmail)

	err := db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.tokens.ConsumeEmailChangeOTP(tx, userID, email, req.Code)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrInvalidEmailOTP
		}

		if err := s.userRepo.ChangeEmail(tx, userID, email, time.Now()); err != nil {
			switch {
			case errors.Is(err, repositories.ErrUserAlreadyExists):
				return apperrors.ErrEmailTaken
			case errors.Is(err, repositories.ErrUserNotFound):
				return apperrors.ErrUserNotFound
			}
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.EmailChangedResponse{NewEmail: email}, nil
}

// ============================================
// Employments
// ============================================

func (s *ProfileServiceImpl) ListEmployments(db *gorm.DB, userID string) ([]models.Employment, error) {
	return listChildren(s, db, userID, s.employmentRepo)
}

func (s *ProfileServiceImpl) CreateEmployment(db *gorm.DB, userID string, req *dto.EmploymentRequest) (*models.Employment, error) {
	return createChild(s, db, userID, s.employmentRepo, func(row *models.Employment) error {
		return applyEmployment(row, req)
	})
}

func (s *ProfileServiceImpl) UpdateEmployment(db *gorm.DB, userID string, id uint, req *dto.EmploymentRequest) (*models.Employment, error) {
	return updateChild(s, db, userID, id, s.employmentRepo, apperrors.ErrEmploymentNotFound, func(row *models.Employment) error {
		return applyEmployment(row, req)
	})
}

func (s *ProfileServiceImpl) DeleteEmployment(db *gorm.DB, userID string, id uint) error {
	return deleteChild(s, db, userID, id, s.employmentRepo, apperrors.ErrEmploymentNotFound)
}

func applyEmployment(row *models.Employment, req *dto.EmploymentRequest) error {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}

	row.Designation = strings.TrimSpace(req.Designation)
	row.Company = strings.TrimSpace(req.Company)
	row.EmploymentType = enumPtr[models.EmploymentType](req.EmploymentType)
	row.IsCurrent = req.IsCurrent != nil && *req.IsCurrent
	row.StartDate = start
	row.EndDate = end
	row.Description = req.Description
	row.NoticePeriod = req.NoticePeriod
	return nil
}

// ============================================
// Educations
// ============================================

func (s *ProfileServiceImpl) ListEducations(db *gorm.DB, userID string) ([]models.Education, error) {
	return listChildren(s, db, userID, s.educationRepo)
}

func (s *ProfileServiceImpl) CreateEducation(db *gorm.DB, userID string, req *dto.EducationRequest) (*models.Education, error) {
	return createChild(s, db, userID, s.educationRepo, func(row *models.Education) error {
		applyEducation(row, req)
		return nil
	})
}

func (s *ProfileServiceImpl) UpdateEducation(db *gorm.DB, userID string, id uint, req *dto.EducationRequest) (*models.Education, error) {
	return updateChild(s, db, userID, id, s.educationRepo, apperrors.ErrEducationNotFound, func(row *models.Education) error {
		applyEducation(row, req)
		return nil
	})
}

func (s *ProfileServiceImpl) DeleteEducation(db *gorm.DB, userID string, id uint) error {
	return deleteChild(s, db, userID, id, s.educationRepo, apperrors.ErrEducationNotFound)
}

func applyEducation(row *models.Education, req *dto.EducationRequest) {
	row.Degree = strings.TrimSpace(req.Degree)
	row.Specialization = req.Specialization
	row.Institution = strings.TrimSpace(req.Institution)
	row.PassOutYear = req.PassOutYear
	row.GradeType = enumPtr[models.GradeType](req.GradeType)
	row.Grade = req.Grade
}

// ============================================
// Projects
// ============================================

func (s *ProfileServiceImpl) ListProjects(db *gorm.DB, userID string) ([]models.Project, error) {
	return listChildren(s, db, userID, s.projectRepo)
}

func (s *ProfileServiceImpl) CreateProject(db *gorm.DB, userID string, req *dto.ProjectRequest) (*models.Project, error) {
	return createChild(s, db, userID, s.projectRepo, func(row *models.Project) error {
		return applyProject(row, req)
	})
}

func (s *ProfileServiceImpl) UpdateProject(db *gorm.DB, userID string, id uint, req *dto.ProjectRequest) (*models.Project, error) {
	return updateChild(s, db, userID, id, s.projectRepo, apperrors.ErrProjectNotFound, func(row *models.Project) error {
		return applyProject(row, req)
	})
}

func (s *ProfileServiceImpl) DeleteProject(db *gorm.DB, userID string, id uint) error {
	return deleteChild(s, db, userID, id, s.projectRepo, apperrors.ErrProjectNotFound)
}

func applyProject(row *models.Project, req *dto.ProjectRequest) error {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return err
	}

	row.Title = strings.TrimSpace(req.Title)
	row.Description = req.Description
	row.StartDate = start
	row.EndDate = end
	row.IsOngoing = req.IsOngoing != nil && *req.IsOngoing
	row.ProjectURL = req.ProjectURL
	return nil
}

// ============================================
// IT skills
// ============================================

func (s *ProfileServiceImpl) ListItSkills(db *gorm.DB, userID string) ([]models.ItSkill, error) {
	return listChildren(s, db, userID, s.itSkillRepo)
}

func (s *ProfileServiceImpl) CreateItSkill(db *gorm.DB, userID string, req *dto.ItSkillRequest) (*models.ItSkill, error) {
	return createChild(s, db, userID, s.itSkillRepo, func(row *models.ItSkill) error {
		applyItSkill(row, req)
		return nil
	})
}

func (s *ProfileServiceImpl) UpdateItSkill(db *gorm.DB, userID string, id uint, req *dto.ItSkillRequest) (*models.ItSkill, error) {
	return updateChild(s, db, userID, id, s.itSkillRepo, apperrors.ErrItSkillNotFound, func(row *models.ItSkill) error {
		applyItSkill(row, req)
		return nil
	})
}

func (s *ProfileServiceImpl) DeleteItSkill(db *gorm.DB, userID string, id uint) error {
	return deleteChild(s, db, userID, id, s.itSkillRepo, apperrors.ErrItSkillNotFound)
}

func applyItSkill(row *models.ItSkill, req *dto.ItSkillRequest) {
	row.Name = strings.TrimSpace(req.Name)
	row.Proficiency = models.ProficiencyBeginner
	if req.Proficiency != nil && *req.Proficiency != "" {
		row.Proficiency = models.Proficiency(*req.Proficiency)
	}
	row.ExperienceMonths = 0
	if req.ExperienceMonths != nil {
		row.ExperienceMonths = *req.ExperienceMonths
	}
}

// ============================================
// Resume
// ============================================

func (s *ProfileServiceImpl) GetResume(db *gorm.DB, userID string) (*models.Resume, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}
	resume, err := s.profileRepo.FindResume(db, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrResumeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return resume, nil
}

// UploadResume заменяет файл: новая запись сохраняется, старый файл удаляется после успешной записи в БД
func (s *ProfileServiceImpl) UploadResume(ctx context.Context, db *gorm.DB, userID string, upload *dto.ResumeUpload) (*models.Resume, error) {
	if upload == nil || len(upload.Content) == 0 {
		return nil, apperrors.ErrResumeRequired
	}
	if upload.Size > s.maxResumeSize || int64(len(upload.Content)) > s.maxResumeSize {
		return nil, apperrors.ErrResumeTooLarge
	}
	ext, ok := resumeExtension(upload.FileName, upload.ContentType)
	if !ok {
		return nil, apperrors.ErrInvalidResumeType
	}

	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	previous, err := s.profileRepo.FindResume(db, profile.ID)
	if err != nil && !errors.Is(err, repositories.ErrResumeNotFound) {
		return nil, apperrors.InternalError(err)
	}

	key := "resumes/" + userID + "/" + uuid.NewString() + ext
	if err := s.storage.Save(ctx, key, bytes.NewReader(upload.Content), upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resume := &models.Resume{
		ProfileID:  profile.ID,
		FileName:   filepath.Base(upload.FileName),
		FilePath:   s.storage.GetURL(key),
		UploadedAt: time.Now(),
	}
	if err := s.profileRepo.UpsertResume(db, resume); err != nil {
		s.removeFile(ctx, key)
		return nil, apperrors.InternalError(err)
	}

	if previous != nil {
		s.removeFile(ctx, storage.KeyFromURL(s.storage, previous.FilePath))
	}

	saved, err := s.profileRepo.FindResume(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return saved, nil
}

func (s *ProfileServiceImpl) DeleteResume(ctx context.Context, db *gorm.DB, userID string) error {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return err
	}

	deleted, err := s.profileRepo.DeleteResume(db, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return apperrors.ErrResumeNotFound
		}
		return apperrors.InternalError(err)
	}

	s.removeFile(ctx, storage.KeyFromURL(s.storage, deleted.FilePath))
	return nil
}

// removeFile - ошибка удаления файла только логируется, строка в БД уже консистентна
func (s *ProfileServiceImpl) removeFile(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "Failed to delete resume file", err, "key", key)
	}
}

func resumeExtension(fileName, contentType string) (string, bool) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := resumeTypes[mediaType]; ok {
		return ext, true
	}
	// Некоторые клиенты присылают octet-stream, тогда решает расширение
	if mediaType == "" || mediaType == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(fileName))
		for _, allowed := range resumeTypes {
			if ext == allowed {
				return ext, true
			}
		}
	}
	return "", false
}

// ============================================
// Вспомогательные
// ============================================

func (s *ProfileServiceImpl) findProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func listChildren[T repositories.ProfileChild](s *ProfileServiceImpl, db *gorm.DB, userID string, repo *repositories.ChildRepository[T]) ([]T, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}
	rows, err := repo.List(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rows, nil
}

func createChild[T repositories.ProfileChild](s *ProfileServiceImpl, db *gorm.DB, userID string, repo *repositories.ChildRepository[T], apply func(*T) error) (*T, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	row := new(T)
	if err := apply(row); err != nil {
		return nil, err
	}
	setProfileID(row, profile.ID)

	if err := repo.Create(db, row); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return row, nil
}

// updateChild - запись другого пользователя возвращает тот же 404, что и отсутствующая
func updateChild[T repositories.ProfileChild](s *ProfileServiceImpl, db *gorm.DB, userID string, id uint, repo *repositories.ChildRepository[T], notFound *apperrors.AppError, apply func(*T) error) (*T, error) {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return nil, err
	}

	row, err := repo.Find(db, id, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return nil, notFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := apply(row); err != nil {
		return nil, err
	}
	if err := repo.Save(db, row); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return row, nil
}

func deleteChild[T repositories.ProfileChild](s *ProfileServiceImpl, db *gorm.DB, userID string, id uint, repo *repositories.ChildRepository[T], notFound *apperrors.AppError) error {
	profile, err := s.findProfile(db, userID)
	if err != nil {
		return err
	}
	if err := repo.Delete(db, id, profile.ID); err != nil {
		if errors.Is(err, repositories.ErrChildNotFound) {
			return notFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func setProfileID[T repositories.ProfileChild](row *T, profileID uint) {
	switch r := any(row).(type) {
	case *models.Employment:
		r.ProfileID = profileID
	case *models.Education:
		r.ProfileID = profileID
	case *models.Project:
		r.ProfileID = profileID
	case *models.ItSkill:
		r.ProfileID = profileID
	}
}

// parseDate: nil и "" дают NULL
func parseDate(value *string) (*datatypes.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	d := datatypes.Date(t)
	return &d, nil
}

func enumPtr[E ~string](value *string) *E {
	if value == nil || *value == "" {
		return nil
	}
	e := E(*value)
	return &e
}

func putOptional[T any](fields map[string]interface{}, column string, value dto.Optional[T]) {
	if !value.Set {
		return
	}
	if value.Null {
		fields[column] = nil
		return
	}
	fields[column] = value.Value
}

func trimOptional(value dto.Optional[string]) dto.Optional[string] {
	if value.HasValue() {
		value.Value = strings.TrimSpace(value.Value)
	}
	return value
}

func nullIfEmpty(value string) interface{} {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}
