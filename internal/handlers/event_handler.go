package handlers

import (
	"net/http"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{
		BaseHandler:  base,
		eventService: eventService,
	}
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
		events.POST("/:id/attend", h.Attend)
		events.POST("", middleware.RequirePermission(auth.PermCreateEvent), h.CreateEvent)
		events.PUT("/:id", middleware.RequirePermission(auth.PermEditEvent), h.UpdateEvent)
		events.DELETE("/:id", middleware.RequirePermission(auth.PermDeleteEvent), h.DeleteEvent)
	}
}

// ListEvents godoc
// @Summary List events
// @Description Ordered by date ascending
// @Tags events
// @Produce json
// @Param region query string false "Region slug"
// @Param upcoming query bool false "Only future events"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.EventListResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var query dto.ContentListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.eventService.ListEvents(c.Request.Context(), h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEvent godoc
// @Summary Event detail
// @Tags events
// @Produce json
// @Param id path string true "ID or slug"
// @Success 200 {object} models.Event
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} apperrors.ErrorResponse "End date before start date"
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Attend godoc
// @Summary Register attendance
// @Tags events
// @Produce json
// @Param id path string true "ID or slug"
// @Success 200 {object} models.Event
// @Failure 409 {object} apperrors.ErrorResponse "Full or past event"
// @Router /events/{id}/attend [post]
func (h *EventHandler) Attend(c *gin.Context) {
	event, err := h.eventService.Attend(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
