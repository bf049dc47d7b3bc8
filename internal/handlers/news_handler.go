package handlers

import (
	"net/http"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	*BaseHandler
	newsService services.NewsService
}

func NewNewsHandler(base *BaseHandler, newsService services.NewsService) *NewsHandler {
	return &NewsHandler{
		BaseHandler: base,
		newsService: newsService,
	}
}

func (h *NewsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	news := rg.Group("/news")
	{
		news.GET("", h.ListNews)
		news.GET("/:id", h.GetNews)
		news.POST("", middleware.RequirePermission(auth.PermCreateNews), h.CreateNews)
		news.PUT("/:id", middleware.RequirePermission(auth.PermEditNews), h.UpdateNews)
		news.DELETE("/:id", middleware.RequirePermission(auth.PermDeleteNews), h.DeleteNews)
	}
}

// ListNews godoc
// @Summary List news
// @Description Newest first
// @Tags news
// @Produce json
// @Param region query string false "Region slug"
// @Param tag query string false "Tag"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.NewsListResponse
// @Router /news [get]
func (h *NewsHandler) ListNews(c *gin.Context) {
	var query dto.ContentListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := ParsePagination(c)

	resp, err := h.newsService.ListNews(c.Request.Context(), h.GetDB(c), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetNews godoc
// @Summary News item
// @Tags news
// @Produce json
// @Param id path string true "ID or slug"
// @Success 200 {object} models.News
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	item, err := h.newsService.GetNews(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req dto.CreateNewsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.newsService.CreateNews(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *NewsHandler) UpdateNews(c *gin.Context) {
	var req dto.UpdateNewsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	item, err := h.newsService.UpdateNews(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *NewsHandler) DeleteNews(c *gin.Context) {
	if err := h.newsService.DeleteNews(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
