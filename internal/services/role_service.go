package services

import (
	"context"
	"errors"
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RoleService interface {
	ListRoles(ctx context.Context, db *gorm.DB) ([]models.Role, error)
	CreateRole(ctx context.Context, db *gorm.DB, req *dto.CreateRoleRequest) (*models.Role, error)
	UpdateRole(ctx context.Context, db *gorm.DB, roleID string, req *dto.UpdateRoleRequest) (*models.Role, error)
	DeleteRole(ctx context.Context, db *gorm.DB, roleID string) error

	ListPermissions(ctx context.Context, db *gorm.DB) ([]models.Permission, error)
	CreatePermission(ctx context.Context, db *gorm.DB, req *dto.CreatePermissionRequest) (*models.Permission, error)

	// EnsureDefaults upserts the built-in permissions and the ADMIN and USER
	// roles. ADMIN always ends up holding every known permission.
	EnsureDefaults(ctx context.Context, db *gorm.DB) (*models.Role, error)
}

// DefaultUserPermissions are granted to self-registered users. EnsureDefaults
// adds any that the USER role lacks and keeps the rest of its permissions.
var DefaultUserPermissions = []string{auth.PermViewJobs, auth.PermCreateStartup}

type roleService struct {
	roleRepo repositories.RoleRepository
	userRepo repositories.UserRepository
}

func NewRoleService(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) RoleService {
	return &roleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
	}
}

func (s *roleService) ListRoles(ctx context.Context, db *gorm.DB) ([]models.Role, error) {
	roles, err := s.roleRepo.ListRoles(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return roles, nil
}

func (s *roleService) CreateRole(ctx context.Context, db *gorm.DB, req *dto.CreateRoleRequest) (*models.Role, error) {
	var role *models.Role
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permissions, err := s.permissionsByNames(tx, req.Permissions)
		if err != nil {
			return err
		}

		role = &models.Role{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Permissions: permissions,
		}
		if err := s.roleRepo.CreateRole(tx, role); err != nil {
			if errors.Is(err, repositories.ErrRoleAlreadyExists) {
				return apperrors.ErrRoleAlreadyExists
			}
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Role created", "role", role.Name, "permissions", len(role.Permissions))
	return role, nil
}

func (s *roleService) UpdateRole(ctx context.Context, db *gorm.DB, roleID string, req *dto.UpdateRoleRequest) (*models.Role, error) {
	var updated *models.Role
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := s.findRole(tx, roleID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if err := s.roleRepo.UpdateRole(tx, role.ID, updates); err != nil {
			if errors.Is(err, repositories.ErrRoleAlreadyExists) {
				return apperrors.ErrRoleAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		if req.Permissions != nil {
			permissions, err := s.permissionsByNames(tx, *req.Permissions)
			if err != nil {
				return err
			}
			if err := s.roleRepo.ReplacePermissions(tx, role, permissions); err != nil {
				return apperrors.InternalError(err)
			}
		}

		updated, err = s.findRole(tx, role.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *roleService) DeleteRole(ctx context.Context, db *gorm.DB, roleID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role, err := s.findRole(tx, roleID)
		if err != nil {
			return err
		}

		inUse, err := s.userRepo.CountByRole(tx, role.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if inUse > 0 {
			return apperrors.ErrRoleInUse.WithDetails(map[string]int64{"users": inUse})
		}

		if err := s.roleRepo.ReplacePermissions(tx, role, nil); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.roleRepo.DeleteRole(tx, role.ID); err != nil {
			if errors.Is(err, repositories.ErrRoleNotFound) {
				return apperrors.ErrRoleNotFound
			}
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "Role deleted", "role", role.Name)
		return nil
	})
}

func (s *roleService) ListPermissions(ctx context.Context, db *gorm.DB) ([]models.Permission, error) {
	permissions, err := s.roleRepo.ListPermissions(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return permissions, nil
}

func (s *roleService) CreatePermission(ctx context.Context, db *gorm.DB, req *dto.CreatePermissionRequest) (*models.Permission, error) {
	permission := &models.Permission{
		Name:        strings.ToUpper(strings.TrimSpace(req.Name)),
		Description: req.Description,
	}
	if err := s.roleRepo.CreatePermission(db.WithContext(ctx), permission); err != nil {
		if errors.Is(err, repositories.ErrPermissionExists) {
			return nil, apperrors.ErrPermissionAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	return permission, nil
}

func (s *roleService) EnsureDefaults(ctx context.Context, db *gorm.DB) (*models.Role, error) {
	db = db.WithContext(ctx)

	all := make([]models.Permission, 0, len(auth.AllPermissions))
	for _, p := range auth.AllPermissions {
		permission := &models.Permission{Name: p.Name, Description: p.Description}
		if err := s.roleRepo.UpsertPermission(db, permission); err != nil {
			return nil, err
		}
		all = append(all, *permission)
	}

	admin, err := s.ensureRole(db, models.RoleAdmin, "Full access to the directory")
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.ReplacePermissions(db, admin, all); err != nil {
		return nil, err
	}

	user, err := s.ensureRole(db, models.RoleUser, "Registered member")
	if err != nil {
		return nil, err
	}
	if missing := missingPermissions(user, DefaultUserPermissions); len(missing) > 0 {
		added, err := s.roleRepo.FindPermissionsByNames(db, missing)
		if err != nil {
			return nil, err
		}
		if err := s.roleRepo.ReplacePermissions(db, user, append(user.Permissions, added...)); err != nil {
			return nil, err
		}
	}

	return admin, nil
}

func (s *roleService) ensureRole(db *gorm.DB, name, description string) (*models.Role, error) {
	role, err := s.roleRepo.FindRoleByName(db, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, repositories.ErrRoleNotFound) {
		return nil, err
	}
	role = &models.Role{Name: name, Description: description}
	if err := s.roleRepo.CreateRole(db, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *roleService) findRole(db *gorm.DB, roleID string) (*models.Role, error) {
	role, err := s.roleRepo.FindRoleByID(db, roleID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoleNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

// permissionsByNames resolves names to rows; any unknown name fails the request.
func (s *roleService) permissionsByNames(db *gorm.DB, names []string) ([]models.Permission, error) {
	permissions, err := s.roleRepo.FindPermissionsByNames(db, names)
	if err != nil {
		if errors.Is(err, repositories.ErrPermissionNotFound) {
			return nil, apperrors.ErrUnknownPermission.WithDetails(map[string][]string{"permissions": names})
		}
		return nil, apperrors.InternalError(err)
	}
	return permissions, nil
}

func missingPermissions(role *models.Role, names []string) []string {
	held := make(map[string]bool, len(role.Permissions))
	for _, p := range role.Permissions {
		held[p.Name] = true
	}
	var missing []string
	for _, name := range names {
		if !held[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
