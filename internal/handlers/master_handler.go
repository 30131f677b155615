package handlers

import (
	"jobboard_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MasterHandler - публичные справочники
type MasterHandler struct {
	*BaseHandler
	masterService services.MasterService
}

func NewMasterHandler(base *BaseHandler, masterService services.MasterService) *MasterHandler {
	return &MasterHandler{
		BaseHandler:   base,
		masterService: masterService,
	}
}

func (h *MasterHandler) RegisterRoutes(rg *gin.RouterGroup, _ Guards) {
	master := rg.Group("/master")
	{
		master.GET("/cities", h.GetCities)
		master.GET("/cities/:cityId/localities", h.GetLocalities)
		master.GET("/roles", h.GetRoles)
		master.GET("/roles/:roleId/skills", h.GetSkills)
	}
}

// GetCities godoc
// @Summary Список городов
// @Tags master
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/master/cities [get]
func (h *MasterHandler) GetCities(c *gin.Context) {
	cities, err := h.masterService.GetCities(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Cities fetched", cities)
}

// GetLocalities godoc
// @Summary Районы города
// @Tags master
// @Produce json
// @Param cityId path int true "ID города"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/master/cities/{cityId}/localities [get]
func (h *MasterHandler) GetLocalities(c *gin.Context) {
	cityID, ok := ParseParamID(c, "cityId")
	if !ok {
		return
	}

	localities, err := h.masterService.GetLocalities(h.GetDB(c), cityID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Localities fetched", localities)
}

// GetRoles godoc
// @Summary Роли
// @Tags master
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/master/roles [get]
func (h *MasterHandler) GetRoles(c *gin.Context) {
	roles, err := h.masterService.GetRoles(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Roles fetched", roles)
}

// GetSkills godoc
// @Summary Навыки роли
// @Tags master
// @Produce json
// @Param roleId path int true "ID роли"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/master/roles/{roleId}/skills [get]
func (h *MasterHandler) GetSkills(c *gin.Context) {
	roleID, ok := ParseParamID(c, "roleId")
	if !ok {
		return
	}

	skills, err := h.masterService.GetSkills(h.GetDB(c), roleID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	OK(c, "Skills fetched", skills)
}
