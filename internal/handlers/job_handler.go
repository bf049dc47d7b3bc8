package handlers

import (
	"net/http"

	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("/:id/apply", h.Apply)
	}

	owned := rg.Group("/jobs", middleware.RequireSession())
	{
		owned.POST("", h.CreateJob)
		owned.PUT("/:id", h.UpdateJob)
		owned.DELETE("/:id", h.DeleteJob)
	}
}

// ListJobs godoc
// @Summary List jobs
// @Description Status defaults to active
// @Tags jobs
// @Produce json
// @Param startupId query string false "Startup ID"
// @Param type query string false "full-time, part-time, contract or internship"
// @Param experienceLevel query string false "Experience level"
// @Param country query string false "Location country"
// @Param status query string false "Status"
// @Param search query string false "Title or description"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.JobListResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.jobService.ListJobs(c.Request.Context(), h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob godoc
// @Summary Job detail
// @Description Counts a view
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := ParseUUIDParam(c, "id", apperrors.ErrJobNotFound)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), h.GetDB(c), jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob godoc
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job"
// @Success 201 {object} models.Job
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), h.GetDB(c), h.Session(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob godoc
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.UpdateJobRequest true "Changes"
// @Success 200 {object} models.Job
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := ParseUUIDParam(c, "id", apperrors.ErrJobNotFound)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), h.GetDB(c), h.Session(c), jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob godoc
// @Summary Delete a job
// @Tags jobs
// @Param id path string true "Job ID"
// @Success 204
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := ParseUUIDParam(c, "id", apperrors.ErrJobNotFound)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), h.GetDB(c), h.Session(c), jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Apply godoc
// @Summary Record an application
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.ApplyRequest false "Referral source"
// @Success 200 {object} models.Job
// @Failure 409 {object} apperrors.ErrorResponse "Job not active"
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	jobID, ok := ParseUUIDParam(c, "id", apperrors.ErrJobNotFound)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Apply(c.Request.Context(), h.GetDB(c), jobID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
