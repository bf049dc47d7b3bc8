package dto

import (
	"time"

	"greentech_backend/internal/models"
)

// RegisterRequest - self-service sign up, always gets the default role
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest - email/password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest - admin creates a user with an explicit role
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	RoleID   *string `json:"roleId" validate:"omitempty,uuid"`
}

// UpdateUserRoleRequest - a nil roleId removes the role
type UpdateUserRoleRequest struct {
	RoleID *string `json:"roleId" validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	RoleID      *string  `json:"roleId,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		RoleID:      u.RoleID,
		Role:        u.RoleName(),
		Permissions: u.PermissionNames(),
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateRoleRequest - permissions are names, not ids
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=50"`
	Description string   `json:"description" validate:"max=255"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest - a non-nil Permissions replaces the whole set
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=50"`
	Description *string   `json:"description" validate:"omitempty,max=255"`
	Permissions *[]string `json:"permissions"`
}

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}
