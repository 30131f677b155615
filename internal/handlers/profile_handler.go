package handlers

import (
	"io"

	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const resumeFormField = "resume"

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	maxResumeSize  int64
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, maxResumeSize int64) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		maxResumeSize:  maxResumeSize,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, guards Guards) {
	profile := rg.Group("/profile/:userId")
	profile.Use(guards.Auth, guards.Owner())
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateBasic)
		profile.PUT("/basic", h.UpdateBasic)
		profile.PUT("/headline", h.UpdateHeadline)
		profile.PUT("/summary", h.UpdateSummary)

		profile.GET("/personal-details", h.GetPersonalDetails)
		profile.PUT("/personal-details", h.UpsertPersonalDetails)

		profile.POST("/email/change", h.RequestEmailChange)
		profile.POST("/email/verify", h.VerifyEmailChange)

		profile.GET("/employments", h.ListEmployments)
		profile.POST("/employments", h.CreateEmployment)
		profile.PUT("/employments/:id", h.UpdateEmployment)
		profile.DELETE("/employments/:id", h.DeleteEmployment)

		profile.GET("/educations", h.ListEducations)
		profile.POST("/educations", h.CreateEducation)
		profile.PUT("/educations/:id", h.UpdateEducation)
		profile.DELETE("/educations/:id", h.DeleteEducation)

		profile.GET("/projects", h.ListProjects)
		profile.POST("/projects", h.CreateProject)
		profile.PUT("/projects/:id", h.UpdateProject)
		profile.DELETE("/projects/:id", h.DeleteProject)

		profile.GET("/it-skills", h.ListItSkills)
		profile.POST("/it-skills", h.CreateItSkill)
		profile.PUT("/it-skills/:id", h.UpdateItSkill)
		profile.DELETE("/it-skills/:id", h.DeleteItSkill)

		profile.GET("/resume", h.GetResume)
		profile.POST("/resume", h.UploadResume)
		profile.DELETE("/resume", h.DeleteResume)
	}
}

// GetProfile godoc
// @Summary Полный профиль соискателя
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetFullProfile(c.Request.Context(), h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Profile fetched", profile)
}

// UpdateBasic godoc
// @Summary Частичное обновление профиля
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.UpdateBasicProfileRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/basic [put]
// @Router /api/profile/{userId} [put]
func (h *ProfileHandler) UpdateBasic(c *gin.Context) {
	var req dto.UpdateBasicProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateBasic(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Profile updated", profile)
}

// UpdateHeadline godoc
// @Summary Обновить заголовок
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.HeadlineRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/headline [put]
func (h *ProfileHandler) UpdateHeadline(c *gin.Context) {
	var req dto.HeadlineRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateHeadline(h.GetDB(c), c.Param(userIDParam), req.Headline)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Headline updated", profile)
}

// UpdateSummary godoc
// @Summary Обновить описание
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.SummaryRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/summary [put]
func (h *ProfileHandler) UpdateSummary(c *gin.Context) {
	var req dto.SummaryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateSummary(h.GetDB(c), c.Param(userIDParam), req.Summary)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Summary updated", profile)
}

// ============================================
// Personal details
// ============================================

// GetPersonalDetails godoc
// @Summary Личные данные
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/personal-details [get]
func (h *ProfileHandler) GetPersonalDetails(c *gin.Context) {
	details, err := h.profileService.GetPersonalDetails(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Personal details fetched", details)
}

// UpsertPersonalDetails godoc
// @Summary Сохранить личные данные
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.PersonalDetailsRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/personal-details [put]
func (h *ProfileHandler) UpsertPersonalDetails(c *gin.Context) {
	var req dto.PersonalDetailsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	details, err := h.profileService.UpsertPersonalDetails(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Personal details updated", details)
}

// ============================================
// Смена email
// ============================================

// RequestEmailChange godoc
// @Summary Отправить код на новый email
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.EmailChangeRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/email/change [post]
func (h *ProfileHandler) RequestEmailChange(c *gin.Context) {
	var req dto.EmailChangeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.RequestEmailChange(c.Request.Context(), h.GetDB(c), c.Param(userIDParam), req.NewEmail)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "OTP sent to new email", resp)
}

// VerifyEmailChange godoc
// @Summary Подтвердить новый email кодом
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.EmailChangeVerifyRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/email/verify [post]
func (h *ProfileHandler) VerifyEmailChange(c *gin.Context) {
	var req dto.EmailChangeVerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.profileService.VerifyEmailChange(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Email updated", resp)
}

// ============================================
// Employments
// ============================================

// ListEmployments godoc
// @Summary Список: места работы
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/employments [get]
func (h *ProfileHandler) ListEmployments(c *gin.Context) {
	items, err := h.profileService.ListEmployments(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Employments fetched", items)
}

// CreateEmployment godoc
// @Summary Добавить запись: места работы
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.EmploymentRequest true "Тело запроса"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/employments [post]
func (h *ProfileHandler) CreateEmployment(c *gin.Context) {
	var req dto.EmploymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.CreateEmployment(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Employment created", item)
}

// UpdateEmployment godoc
// @Summary Изменить запись: места работы
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Param request body dto.EmploymentRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/employments/{id} [put]
func (h *ProfileHandler) UpdateEmployment(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}
	var req dto.EmploymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.UpdateEmployment(h.GetDB(c), c.Param(userIDParam), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Employment updated", item)
}

// DeleteEmployment godoc
// @Summary Удалить запись: места работы
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/employments/{id} [delete]
func (h *ProfileHandler) DeleteEmployment(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteEmployment(h.GetDB(c), c.Param(userIDParam), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Employment deleted", nil)
}

// ============================================
// Educations
// ============================================

// ListEducations godoc
// @Summary Список: образование
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/educations [get]
func (h *ProfileHandler) ListEducations(c *gin.Context) {
	items, err := h.profileService.ListEducations(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Educations fetched", items)
}

// CreateEducation godoc
// @Summary Добавить запись: образование
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.EducationRequest true "Тело запроса"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/educations [post]
func (h *ProfileHandler) CreateEducation(c *gin.Context) {
	var req dto.EducationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.CreateEducation(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Education created", item)
}

// UpdateEducation godoc
// @Summary Изменить запись: образование
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Param request body dto.EducationRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/educations/{id} [put]
func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}
	var req dto.EducationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.UpdateEducation(h.GetDB(c), c.Param(userIDParam), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Education updated", item)
}

// DeleteEducation godoc
// @Summary Удалить запись: образование
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/educations/{id} [delete]
func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteEducation(h.GetDB(c), c.Param(userIDParam), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Education deleted", nil)
}

// ============================================
// Projects
// ============================================

// ListProjects godoc
// @Summary Список: проекты
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/projects [get]
func (h *ProfileHandler) ListProjects(c *gin.Context) {
	items, err := h.profileService.ListProjects(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Projects fetched", items)
}

// CreateProject godoc
// @Summary Добавить запись: проекты
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.ProjectRequest true "Тело запроса"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/projects [post]
func (h *ProfileHandler) CreateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.CreateProject(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Project created", item)
}

// UpdateProject godoc
// @Summary Изменить запись: проекты
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Param request body dto.ProjectRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/projects/{id} [put]
func (h *ProfileHandler) UpdateProject(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ProjectRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.UpdateProject(h.GetDB(c), c.Param(userIDParam), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Project updated", item)
}

// DeleteProject godoc
// @Summary Удалить запись: проекты
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/projects/{id} [delete]
func (h *ProfileHandler) DeleteProject(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteProject(h.GetDB(c), c.Param(userIDParam), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Project deleted", nil)
}

// ============================================
// IT skills
// ============================================

// ListItSkills godoc
// @Summary Список: IT-навыки
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/it-skills [get]
func (h *ProfileHandler) ListItSkills(c *gin.Context) {
	items, err := h.profileService.ListItSkills(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "IT skills fetched", items)
}

// CreateItSkill godoc
// @Summary Добавить запись: IT-навыки
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.ItSkillRequest true "Тело запроса"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/it-skills [post]
func (h *ProfileHandler) CreateItSkill(c *gin.Context) {
	var req dto.ItSkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.CreateItSkill(h.GetDB(c), c.Param(userIDParam), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "IT skill created", item)
}

// UpdateItSkill godoc
// @Summary Изменить запись: IT-навыки
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Param request body dto.ItSkillRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/it-skills/{id} [put]
func (h *ProfileHandler) UpdateItSkill(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ItSkillRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.profileService.UpdateItSkill(h.GetDB(c), c.Param(userIDParam), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "IT skill updated", item)
}

// DeleteItSkill godoc
// @Summary Удалить запись: IT-навыки
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param id path int true "ID записи"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/it-skills/{id} [delete]
func (h *ProfileHandler) DeleteItSkill(c *gin.Context) {
	id, ok := ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteItSkill(h.GetDB(c), c.Param(userIDParam), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "IT skill deleted", nil)
}

// ============================================
// Resume
// ============================================

// GetResume godoc
// @Summary Текущее резюме
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/resume [get]
func (h *ProfileHandler) GetResume(c *gin.Context) {
	resume, err := h.profileService.GetResume(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Resume fetched", resume)
}

// UploadResume godoc
// @Summary Загрузить резюме (PDF, DOC, DOCX)
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param resume formData file true "Файл резюме"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/resume [post]
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	upload, err := h.readResume(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resume, err := h.profileService.UploadResume(c.Request.Context(), h.GetDB(c), c.Param(userIDParam), upload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Resume uploaded", resume)
}

// DeleteResume godoc
// @Summary Удалить резюме
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/profile/{userId}/resume [delete]
func (h *ProfileHandler) DeleteResume(c *gin.Context) {
	if err := h.profileService.DeleteResume(c.Request.Context(), h.GetDB(c), c.Param(userIDParam)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Resume deleted", nil)
}

// readResume читает не больше maxResumeSize+1 байт, проверка размера остается за сервисом
func (h *ProfileHandler) readResume(c *gin.Context) (*dto.ResumeUpload, error) {
	header, err := c.FormFile(resumeFormField)
	if err != nil {
		return nil, apperrors.ErrResumeRequired
	}
	if header.Size > h.maxResumeSize {
		return nil, apperrors.ErrResumeTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxResumeSize+1))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ResumeUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, nil
}
