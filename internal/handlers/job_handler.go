package handlers

import (
	"strings"

	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService      services.JobService
	trackingService services.TrackingService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, trackingService services.TrackingService) *JobHandler {
	return &JobHandler{
		BaseHandler:     base,
		jobService:      jobService,
		trackingService: trackingService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, guards Guards) {
	jobs := rg.Group("/jobs")
	{
		// Публичные; userId в query - необязательный зритель для флагов
		jobs.GET("", h.ListJobs)
		jobs.POST("/search", h.SearchJobs)
		jobs.GET("/:jobId", h.GetJobDetail)
	}

	owned := jobs.Group("")
	owned.Use(guards.Auth)
	{
		owned.GET("/recommended/:userId", guards.Owner(), h.RecommendJobs)
		owned.GET("/stats/:userId", guards.Owner(), h.GetDashboardStats)

		owned.GET("/saved/:userId", guards.Owner(), h.GetSavedJobs)
		owned.GET("/saved/:userId/ids", guards.Owner(), h.GetSavedJobIDs)
		owned.POST("/:jobId/save/:userId", guards.Owner(), h.SaveJob)
		owned.DELETE("/:jobId/save/:userId", guards.Owner(), h.UnsaveJob)

		owned.POST("/:jobId/apply/:userId", guards.Owner(), h.ApplyToJob)
		owned.GET("/applications/:userId", guards.Owner(), h.GetApplications)
		owned.GET("/applications/:userId/:applicationId", guards.Owner(), h.GetApplicationDetail)
		owned.GET("/applied/:userId/ids", guards.Owner(), h.GetAppliedJobIDs)
	}
}

// ListJobs godoc
// @Summary Активные вакансии (featured, затем новые)
// @Tags jobs
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param size query int false "Размер страницы" default(10)
// @Param userId query string false "Зритель для флагов isSaved/isApplied"
// @Success 200 {object} SuccessResponse
// @Router /api/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	page := services.NewPage(ParseQueryInt(c, "page", 0), ParseQueryInt(c, "size", 0))

	result, err := h.jobService.ListJobs(h.GetDB(c), page, viewerID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Jobs fetched", result)
}

// SearchJobs godoc
// @Summary Поиск вакансий по фильтрам
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body dto.JobSearchRequest true "Фильтры"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/jobs/search [post]
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// query имеет приоритет над телом
	pageNum, size := 0, 0
	if req.Page != nil {
		pageNum = *req.Page
	}
	if req.Size != nil {
		size = *req.Size
	}
	page := services.NewPage(ParseQueryInt(c, "page", pageNum), ParseQueryInt(c, "size", size))

	viewer := viewerID(c)
	if viewer == "" && req.UserID != nil {
		viewer = strings.TrimSpace(*req.UserID)
	}

	result, err := h.jobService.SearchJobs(h.GetDB(c), &req, page, viewer)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Search results", result)
}

// GetJobDetail godoc
// @Summary Карточка вакансии
// @Tags jobs
// @Produce json
// @Param jobId path int true "ID вакансии"
// @Param userId query string false "Зритель для флагов isSaved/isApplied"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/jobs/{jobId} [get]
func (h *JobHandler) GetJobDetail(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}

	job, err := h.jobService.GetJobDetail(h.GetDB(c), jobID, viewerID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Job detail", job)
}

// RecommendJobs godoc
// @Summary Рекомендованные вакансии
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param page query int false "Страница"
// @Param size query int false "Размер страницы"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/jobs/recommended/{userId} [get]
func (h *JobHandler) RecommendJobs(c *gin.Context) {
	page := services.NewPage(ParseQueryInt(c, "page", 0), ParseQueryInt(c, "size", 0))

	result, err := h.jobService.RecommendJobs(h.GetDB(c), c.Param(userIDParam), page)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Recommended jobs", result)
}

// GetDashboardStats godoc
// @Summary Статистика соискателя
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/jobs/stats/{userId} [get]
func (h *JobHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.trackingService.GetDashboardStats(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Dashboard stats", stats)
}

// ============================================
// Saved jobs
// ============================================

// SaveJob godoc
// @Summary Сохранить вакансию
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "ID вакансии"
// @Param userId path string true "ID пользователя"
// @Success 201 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/jobs/{jobId}/save/{userId} [post]
func (h *JobHandler) SaveJob(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}

	saved, err := h.trackingService.SaveJob(h.GetDB(c), c.Param(userIDParam), jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Job saved", saved)
}

// UnsaveJob godoc
// @Summary Убрать вакансию из сохраненных
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "ID вакансии"
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/jobs/{jobId}/save/{userId} [delete]
func (h *JobHandler) UnsaveJob(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}

	if err := h.trackingService.UnsaveJob(h.GetDB(c), c.Param(userIDParam), jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Job unsaved", nil)
}

// GetSavedJobs godoc
// @Summary Сохраненные вакансии
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param page query int false "Страница"
// @Param size query int false "Размер страницы"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/jobs/saved/{userId} [get]
func (h *JobHandler) GetSavedJobs(c *gin.Context) {
	page := services.NewPage(ParseQueryInt(c, "page", 0), ParseQueryInt(c, "size", 0))

	result, err := h.trackingService.GetSavedJobs(h.GetDB(c), c.Param(userIDParam), page)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Saved jobs", result)
}

// GetSavedJobIDs godoc
// @Summary ID сохраненных вакансий
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/jobs/saved/{userId}/ids [get]
func (h *JobHandler) GetSavedJobIDs(c *gin.Context) {
	ids, err := h.trackingService.GetSavedJobIDs(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Saved job IDs", ids)
}

// ============================================
// Applications
// ============================================

// ApplyToJob godoc
// @Summary Откликнуться на вакансию
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobId path int true "ID вакансии"
// @Param userId path string true "ID пользователя"
// @Param request body dto.ApplyJobRequest false "Сопроводительное письмо"
// @Success 201 {object} SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/jobs/{jobId}/apply/{userId} [post]
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	jobID, ok := ParseParamID(c, "jobId")
	if !ok {
		return
	}

	var req dto.ApplyJobRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.trackingService.ApplyToJob(h.GetDB(c), c.Param(userIDParam), jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Application submitted", app)
}

// GetApplications godoc
// @Summary Отклики пользователя
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/jobs/applications/{userId} [get]
func (h *JobHandler) GetApplications(c *gin.Context) {
	apps, err := h.trackingService.GetApplications(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Applications fetched", apps)
}

// GetApplicationDetail godoc
// @Summary Отклик пользователя
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param applicationId path int true "ID отклика"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/jobs/applications/{userId}/{applicationId} [get]
func (h *JobHandler) GetApplicationDetail(c *gin.Context) {
	applicationID, ok := ParseParamID(c, "applicationId")
	if !ok {
		return
	}

	app, err := h.trackingService.GetApplicationDetail(h.GetDB(c), c.Param(userIDParam), applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Application detail", app)
}

// GetAppliedJobIDs godoc
// @Summary ID вакансий с откликом
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/jobs/applied/{userId}/ids [get]
func (h *JobHandler) GetAppliedJobIDs(c *gin.Context) {
	ids, err := h.trackingService.GetAppliedJobIDs(h.GetDB(c), c.Param(userIDParam))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Applied job IDs", ids)
}

// viewerID - необязательный зритель из query; токен здесь не проверяется
func viewerID(c *gin.Context) string {
	return strings.TrimSpace(c.Query(userIDParam))
}
