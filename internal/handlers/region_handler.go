package handlers

import (
	"net/http"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type RegionHandler struct {
	*BaseHandler
	regionService services.RegionService
}

func NewRegionHandler(base *BaseHandler, regionService services.RegionService) *RegionHandler {
	return &RegionHandler{
		BaseHandler:   base,
		regionService: regionService,
	}
}

func (h *RegionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	regions := rg.Group("/regions")
	{
		regions.GET("", h.ListRegions)
		regions.GET("/:slug", h.GetRegionPage)
	}

	manage := rg.Group("/regions", middleware.RequirePermission(auth.PermManageRegions))
	{
		manage.POST("", h.CreateRegion)
		manage.PUT("/:slug", h.UpdateRegion)
		manage.PUT("/:slug/investment", h.SetTotalInvestment)
		manage.POST("/:slug/initiatives", h.AddInitiative)
		manage.DELETE("/:slug/initiatives/:id", h.DeleteInitiative)
		manage.POST("/:slug/partners", h.AddPartner)
		manage.DELETE("/:slug/partners/:id", h.DeletePartner)
	}
}

// ListRegions godoc
// @Summary List regions with cached statistics
// @Tags regions
// @Produce json
// @Success 200 {array} dto.RegionSummary
// @Router /regions [get]
func (h *RegionHandler) ListRegions(c *gin.Context) {
	regions, err := h.regionService.ListRegions(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

// GetRegionPage godoc
// @Summary Region page
// @Description Region with initiatives, partners, startups, latest news, upcoming events and active jobs
// @Tags regions
// @Produce json
// @Param slug path string true "Region slug"
// @Success 200 {object} dto.RegionPage
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /regions/{slug} [get]
func (h *RegionHandler) GetRegionPage(c *gin.Context) {
	page, err := h.regionService.GetRegionPage(c.Request.Context(), h.GetDB(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateRegion godoc
// @Summary Create a region
// @Tags regions
// @Accept json
// @Produce json
// @Param request body dto.CreateRegionRequest true "Region"
// @Success 201 {object} dto.RegionSummary
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /regions [post]
func (h *RegionHandler) CreateRegion(c *gin.Context) {
	var req dto.CreateRegionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	region, err := h.regionService.CreateRegion(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, region)
}

func (h *RegionHandler) UpdateRegion(c *gin.Context) {
	var req dto.UpdateRegionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	region, err := h.regionService.UpdateRegion(c.Request.Context(), h.GetDB(c), c.Param("slug"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, region)
}

// SetTotalInvestment godoc
// @Summary Set the curated investment figure
// @Tags regions
// @Accept json
// @Produce json
// @Param slug path string true "Region slug"
// @Param request body dto.UpdateInvestmentRequest true "Investment"
// @Success 200 {object} dto.StatsView
// @Router /regions/{slug}/investment [put]
func (h *RegionHandler) SetTotalInvestment(c *gin.Context) {
	var req dto.UpdateInvestmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	stats, err := h.regionService.SetTotalInvestment(c.Request.Context(), h.GetDB(c), c.Param("slug"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *RegionHandler) AddInitiative(c *gin.Context) {
	var req dto.InitiativeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	initiative, err := h.regionService.AddInitiative(c.Request.Context(), h.GetDB(c), c.Param("slug"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, initiative)
}

func (h *RegionHandler) DeleteInitiative(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id", apperrors.ErrInitiativeNotFound)
	if !ok {
		return
	}

	if err := h.regionService.DeleteInitiative(c.Request.Context(), h.GetDB(c), c.Param("slug"), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegionHandler) AddPartner(c *gin.Context) {
	var req dto.PartnerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	partner, err := h.regionService.AddPartner(c.Request.Context(), h.GetDB(c), c.Param("slug"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, partner)
}

func (h *RegionHandler) DeletePartner(c *gin.Context) {
	id, ok := ParseUUIDParam(c, "id", apperrors.ErrPartnerNotFound)
	if !ok {
		return
	}

	if err := h.regionService.DeletePartner(c.Request.Context(), h.GetDB(c), c.Param("slug"), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
