package handlers

import (
	"net/http"

	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// StartupHandler serves the directory, ownership claims, team and gallery.
// Owner-or-permission checks live in the service.
type StartupHandler struct {
	*BaseHandler
	startupService services.StartupService
}

func NewStartupHandler(base *BaseHandler, startupService services.StartupService) *StartupHandler {
	return &StartupHandler{
		BaseHandler:    base,
		startupService: startupService,
	}
}

func (h *StartupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	startups := rg.Group("/startups")
	{
		startups.GET("", h.ListStartups)
		startups.GET("/:id", h.GetStartup)
	}

	owned := rg.Group("/startups", middleware.RequireSession())
	{
		owned.POST("", h.CreateStartup)
		owned.PUT("/:id", h.UpdateStartup)
		owned.DELETE("/:id", h.DeleteStartup)
		owned.POST("/:id/claim", h.ClaimStartup)

		owned.POST("/:id/team", h.AddTeamMember)
		owned.PUT("/:id/team/:memberId", h.UpdateTeamMember)
		owned.DELETE("/:id/team/:memberId", h.DeleteTeamMember)

		owned.POST("/:id/gallery", h.AddGalleryImage)
		owned.DELETE("/:id/gallery/:imageId", h.DeleteGalleryImage)
	}

	rg.GET("/users/me/startups", middleware.RequireSession(), h.ListMyStartups)
}

// ListStartups godoc
// @Summary List startups
// @Tags startups
// @Produce json
// @Param region query string false "Region slug"
// @Param country query string false "Country"
// @Param tag query string false "Tag"
// @Param search query string false "Name or description"
// @Param claimed query string false "true or false"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.StartupListResponse
// @Router /startups [get]
func (h *StartupHandler) ListStartups(c *gin.Context) {
	var query dto.StartupListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.startupService.ListStartups(c.Request.Context(), h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStartup godoc
// @Summary Startup profile
// @Description Accepts an id or a slug. Includes region, team, gallery and active jobs.
// @Tags startups
// @Produce json
// @Param id path string true "ID or slug"
// @Success 200 {object} models.Startup
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /startups/{id} [get]
func (h *StartupHandler) GetStartup(c *gin.Context) {
	startup, err := h.startupService.GetStartup(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, startup)
}

// ListMyStartups godoc
// @Summary Startups owned by the caller
// @Tags startups
// @Produce json
// @Success 200 {array} models.Startup
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/me/startups [get]
func (h *StartupHandler) ListMyStartups(c *gin.Context) {
	startups, err := h.startupService.ListMyStartups(c.Request.Context(), h.GetDB(c), h.Session(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, startups)
}

// CreateStartup godoc
// @Summary Create a startup owned by the caller
// @Tags startups
// @Accept json
// @Produce json
// @Param request body dto.CreateStartupRequest true "Startup"
// @Success 201 {object} models.Startup
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /startups [post]
func (h *StartupHandler) CreateStartup(c *gin.Context) {
	var req dto.CreateStartupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	startup, err := h.startupService.CreateStartup(c.Request.Context(), h.GetDB(c), h.Session(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, startup)
}

// UpdateStartup godoc
// @Summary Update a startup
// @Tags startups
// @Accept json
// @Produce json
// @Param id path string true "ID or slug"
// @Param request body dto.UpdateStartupRequest true "Changes"
// @Success 200 {object} models.Startup
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /startups/{id} [put]
func (h *StartupHandler) UpdateStartup(c *gin.Context) {
	var req dto.UpdateStartupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	startup, err := h.startupService.UpdateStartup(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, startup)
}

// DeleteStartup godoc
// @Summary Delete a startup with its jobs, team, gallery and blog
// @Tags startups
// @Param id path string true "ID or slug"
// @Success 204
// @Router /startups/{id} [delete]
func (h *StartupHandler) DeleteStartup(c *gin.Context) {
	if err := h.startupService.DeleteStartup(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClaimStartup godoc
// @Summary Claim an unowned startup
// @Tags startups
// @Produce json
// @Param id path string true "ID or slug"
// @Success 200 {object} models.Startup
// @Failure 409 {object} apperrors.ErrorResponse "Already claimed"
// @Router /startups/{id}/claim [post]
func (h *StartupHandler) ClaimStartup(c *gin.Context) {
	startup, err := h.startupService.ClaimStartup(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, startup)
}

// ---------------- Team ----------------

func (h *StartupHandler) AddTeamMember(c *gin.Context) {
	var req dto.TeamMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.startupService.AddTeamMember(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *StartupHandler) UpdateTeamMember(c *gin.Context) {
	memberID, ok := ParseUUIDParam(c, "memberId", apperrors.ErrTeamMemberNotFound)
	if !ok {
		return
	}
	var req dto.UpdateTeamMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.startupService.UpdateTeamMember(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), memberID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *StartupHandler) DeleteTeamMember(c *gin.Context) {
	memberID, ok := ParseUUIDParam(c, "memberId", apperrors.ErrTeamMemberNotFound)
	if !ok {
		return
	}

	if err := h.startupService.DeleteTeamMember(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), memberID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------------- Gallery ----------------

func (h *StartupHandler) AddGalleryImage(c *gin.Context) {
	var req dto.GalleryImageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	image, err := h.startupService.AddGalleryImage(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (h *StartupHandler) DeleteGalleryImage(c *gin.Context) {
	imageID, ok := ParseUUIDParam(c, "imageId", apperrors.ErrGalleryImageNotFound)
	if !ok {
		return
	}

	if err := h.startupService.DeleteGalleryImage(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), imageID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
