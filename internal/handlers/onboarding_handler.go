package handlers

import (
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(base *BaseHandler, onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
	}
}

func (h *OnboardingHandler) RegisterRoutes(rg *gin.RouterGroup, guards Guards) {
	onboarding := rg.Group("/onboarding")
	onboarding.Use(guards.Auth)
	{
		onboarding.GET("/status/:userId", guards.Owner(), h.GetStatus)
		onboarding.POST("/profile/:userId", guards.Owner(), h.SaveProfile)
		onboarding.POST("/preferences/:userId", guards.Owner(), h.SavePreferences)
	}
}

// GetStatus godoc
// @Summary Статус онбординга
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/onboarding/status/{userId} [get]
func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	status, err := h.onboardingService.GetStatus(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Onboarding status", status)
}

// SaveProfile godoc
// @Summary Сохранить базовый профиль
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.SaveProfileRequest true "Тело запроса"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/onboarding/profile/{userId} [post]
func (h *OnboardingHandler) SaveProfile(c *gin.Context) {
	var req dto.SaveProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.onboardingService.SaveProfile(h.GetDB(c), c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	Created(c, "Profile saved", profile)
}

// SavePreferences godoc
// @Summary Сохранить роль и навыки
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.SavePreferencesRequest true "Тело запроса"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/onboarding/preferences/{userId} [post]
func (h *OnboardingHandler) SavePreferences(c *gin.Context) {
	var req dto.SavePreferencesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.onboardingService.SavePreferences(h.GetDB(c), c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Preferences saved", profile)
}
