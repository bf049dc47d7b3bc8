package services

import (
	"context"
	"errors"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService covers the admin user endpoints. Callers are already checked
// for MANAGE_USERS by the router.
type UserService interface {
	ListUsers(ctx context.Context, db *gorm.DB, search string, page, pageSize int) (*dto.UserListResponse, error)
	CreateUser(ctx context.Context, db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, db *gorm.DB, session *auth.Session, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
}

func NewUserService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) ListUsers(ctx context.Context, db *gorm.DB, search string, page, pageSize int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(db.WithContext(ctx), repositories.UserFilter{
		Search:     search,
		Pagination: repositories.Pagination{Page: page, PageSize: pageSize},
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserListResponse{
		Users: make([]*dto.UserResponse, 0, len(users)),
		Total: total,
		Page:  page,
		Pages: dto.Pages(total, pageSize),
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *userService) CreateUser(ctx context.Context, db *gorm.DB, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	db = db.WithContext(ctx)

	if req.RoleID != nil {
		if err := s.ensureRole(db, *req.RoleID); err != nil {
			return nil, err
		}
	}

	user, err := createUser(db, s.userRepo, req.Name, req.Email, req.Password, req.RoleID)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.FindByID(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "User created by admin", "user_id", created.ID, "role", created.RoleName())
	return dto.NewUserResponse(created), nil
}

func (s *userService) UpdateUserRole(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	db = db.WithContext(ctx)

	if req.RoleID != nil {
		if err := s.ensureRole(db, *req.RoleID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateRole(db, userID, req.RoleID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, db *gorm.DB, session *auth.Session, userID string) error {
	if session == nil {
		return apperrors.ErrNotAuthenticated
	}
	if session.UserID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.Delete(db.WithContext(ctx), userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User deleted", "user_id", userID, "by", session.UserID)
	return nil
}

func (s *userService) ensureRole(db *gorm.DB, roleID string) error {
	if _, err := s.roleRepo.FindRoleByID(db, roleID); err != nil {
		if errors.Is(err, repositories.ErrRoleNotFound) {
			return apperrors.ErrRoleNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
