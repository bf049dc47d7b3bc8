package handlers

import (
	"net/http"

	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	*BaseHandler
	blogService services.BlogService
}

func NewBlogHandler(base *BaseHandler, blogService services.BlogService) *BlogHandler {
	return &BlogHandler{
		BaseHandler: base,
		blogService: blogService,
	}
}

func (h *BlogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/startups/:id/blog", h.ListForStartup)
	rg.POST("/startups/:id/blog", middleware.RequireSession(), h.CreatePost)

	blog := rg.Group("/blog")
	{
		blog.GET("/:slug", h.GetPost)
		blog.PUT("/:id", middleware.RequireSession(), h.UpdatePost)
		blog.DELETE("/:id", middleware.RequireSession(), h.DeletePost)
	}
}

// ListForStartup godoc
// @Summary Blog posts of a startup
// @Description Published posts; the owner also sees drafts
// @Tags blog
// @Produce json
// @Param id path string true "Startup ID or slug"
// @Success 200 {array} models.BlogPost
// @Router /startups/{id}/blog [get]
func (h *BlogHandler) ListForStartup(c *gin.Context) {
	posts, err := h.blogService.ListForStartup(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Blog post by slug
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.blogService.GetBySlug(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary Write a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param id path string true "Startup ID or slug"
// @Param request body dto.CreateBlogPostRequest true "Post"
// @Success 201 {object} models.BlogPost
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /startups/{id}/blog [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req dto.CreateBlogPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.blogService.CreatePost(c.Request.Context(), h.GetDB(c), h.Session(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) UpdatePost(c *gin.Context) {
	postID, ok := ParseUUIDParam(c, "id", apperrors.ErrBlogPostNotFound)
	if !ok {
		return
	}
	var req dto.UpdateBlogPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	post, err := h.blogService.UpdatePost(c.Request.Context(), h.GetDB(c), h.Session(c), postID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) DeletePost(c *gin.Context) {
	postID, ok := ParseUUIDParam(c, "id", apperrors.ErrBlogPostNotFound)
	if !ok {
		return
	}

	if err := h.blogService.DeletePost(c.Request.Context(), h.GetDB(c), h.Session(c), postID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
