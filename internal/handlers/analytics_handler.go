package handlers

import (
	"net/http"

	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      base,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analytics/track", h.Track)
	rg.GET("/startups/:id/analytics", middleware.RequireSession(), h.StartupAnalytics)
}

// Track godoc
// @Summary Record an analytics event
// @Description Public. startupId or jobId is required.
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.TrackRequest true "Event"
// @Success 201 {object} models.AnalyticsEvent
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /analytics/track [post]
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req dto.TrackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.analyticsService.Track(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// StartupAnalytics godoc
// @Summary Startup dashboard
// @Tags analytics
// @Produce json
// @Param id path string true "Startup ID or slug"
// @Param days query int false "Window in days (default 30)"
// @Success 200 {object} dto.StartupAnalytics
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /startups/{id}/analytics [get]
func (h *AnalyticsHandler) StartupAnalytics(c *gin.Context) {
	days := ParseQueryInt(c, "days", services.DefaultAnalyticsDays)

	result, err := h.analyticsService.StartupAnalytics(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
