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

type RoleHandler struct {
	*BaseHandler
	roleService services.RoleService
}

func NewRoleHandler(base *BaseHandler, roleService services.RoleService) *RoleHandler {
	return &RoleHandler{
		BaseHandler: base,
		roleService: roleService,
	}
}

func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission(auth.PermManageRoles)

	roles := rg.Group("/roles", manage)
	{
		roles.GET("", h.ListRoles)
		roles.POST("", h.CreateRole)
		roles.PUT("/:id", h.UpdateRole)
		roles.DELETE("/:id", h.DeleteRole)
	}

	permissions := rg.Group("/permissions", manage)
	{
		permissions.GET("", h.ListPermissions)
		permissions.POST("", h.CreatePermission)
	}
}

// ListRoles godoc
// @Summary List roles with their permissions
// @Tags admin
// @Produce json
// @Success 200 {array} models.Role
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// CreateRole godoc
// @Summary Create a role
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateRoleRequest true "Role"
// @Success 201 {object} models.Role
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

// UpdateRole godoc
// @Summary Update a role
// @Description A permissions array replaces the role's permission set
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body dto.UpdateRoleRequest true "Changes"
// @Success 200 {object} models.Role
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	roleID, ok := ParseUUIDParam(c, "id", apperrors.ErrRoleNotFound)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), h.GetDB(c), roleID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// DeleteRole godoc
// @Summary Delete a role
// @Tags admin
// @Param id path string true "Role ID"
// @Success 204
// @Failure 409 {object} apperrors.ErrorResponse "Role still assigned"
// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	roleID, ok := ParseUUIDParam(c, "id", apperrors.ErrRoleNotFound)
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), h.GetDB(c), roleID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleService.ListPermissions(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

func (h *RoleHandler) CreatePermission(c *gin.Context) {
	var req dto.CreatePermissionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	permission, err := h.roleService.CreatePermission(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, permission)
}
