package handlers

import (
	"strconv"

	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminHandler - управление вакансиями (роль admin)
type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, guards Guards) {
	admin := rg.Group("/admin")
	admin.Use(guards.Auth, guards.Admin)
	{
		admin.GET("/jobs/stats", h.GetStats)
		admin.GET("/jobs", h.ListJobs)
		admin.POST("/jobs", h.CreateJob)
		admin.PUT("/jobs/:jobId", h.UpdateJob)
		admin.DELETE("/jobs/:jobId", h.DeleteJob)
		admin.PATCH("/jobs/:jobId/status", h.ToggleJobStatus)
		admin.PATCH("/jobs/applications/:applicationId/status", h.UpdateApplicationStatus)
	}
}

// GetStats godoc
// @Summary Статистика по вакансиям и откликам
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Admin stats", stats)
}

// ListJobs godoc
// @Summary Все вакансии, включая неактивные
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Страница"
// @Param size query int false "Размер страницы"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs [get]
func (h *AdminHandler) ListJobs(c *gin.Context) {
	page := services.NewPage(ParseQueryInt(c, "page", 0), ParseQueryInt(c, "size", 0))

	result, err := h.adminService.ListJobs(h.GetDB(c), page)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Admin jobs", result)
}

// CreateJob godoc
// @Summary Создать вакансию
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobRequest true "Вакансия"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs [post]
func (h *AdminHandler) CreateJob(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.adminService.CreateJob(h.GetDB(c), adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Job created", job)
}

// UpdateJob godoc
// @Summary Обновить вакансию; skillIds заменяет навыки
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "ID вакансии"
// @Param request body dto.JobRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs/{jobId} [put]
func (h *AdminHandler) UpdateJob(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}
	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.adminService.UpdateJob(h.GetDB(c), jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Job updated", job)
}

// DeleteJob godoc
// @Summary Удалить вакансию
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "ID вакансии"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs/{jobId} [delete]
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}

	if err := h.adminService.DeleteJob(h.GetDB(c), jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Job deleted", nil)
}

// ToggleJobStatus - ?isActive=true|false
// @Summary Включить или выключить вакансию
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "ID вакансии"
// @Param isActive query boolean true "Новый статус"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs/{jobId}/status [patch]
func (h *AdminHandler) ToggleJobStatus(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}
	isActive, err := strconv.ParseBool(c.Query("isActive"))
	if err != nil {
		apperrors.HandleError(c, apperrors.ValidationError([]string{"isActive: must be true or false"}))
		return
	}

	job, err := h.adminService.ToggleJobStatus(h.GetDB(c), jobID, isActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Job status updated", job)
}

// UpdateApplicationStatus godoc
// @Summary Сменить статус отклика
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param applicationId path int true "ID отклика"
// @Param status query string true "Статус отклика"
// @Param notes query string false "Заметка"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/jobs/applications/{applicationId}/status [patch]
func (h *AdminHandler) UpdateApplicationStatus(c *gin.Context) {
	applicationID, ok := ParseParamID(c, "applicationId")
	if !ok {
		return
	}
	var query dto.ApplicationStatusQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	app, err := h.adminService.UpdateApplicationStatus(h.GetDB(c), applicationID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Application status updated", app)
}
