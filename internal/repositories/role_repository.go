package repositories

import (
	"errors"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleAlreadyExists  = errors.New("role already exists")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrPermissionExists   = errors.New("permission already exists")
)

type RoleRepository interface {
	// Roles
	ListRoles(db *gorm.DB) ([]models.Role, error)
	FindRoleByID(db *gorm.DB, id string) (*models.Role, error)
	FindRoleByName(db *gorm.DB, name string) (*models.Role, error)
	CreateRole(db *gorm.DB, role *models.Role) error
	UpdateRole(db *gorm.DB, id string, updates map[string]interface{}) error
	ReplacePermissions(db *gorm.DB, role *models.Role, permissions []models.Permission) error
	DeleteRole(db *gorm.DB, id string) error

	// Permissions
	ListPermissions(db *gorm.DB) ([]models.Permission, error)
	FindPermissionsByNames(db *gorm.DB, names []string) ([]models.Permission, error)
	CreatePermission(db *gorm.DB, permission *models.Permission) error
	UpsertPermission(db *gorm.DB, permission *models.Permission) error
}

type RoleRepositoryImpl struct{}

func NewRoleRepository() RoleRepository {
	return &RoleRepositoryImpl{}
}

func (r *RoleRepositoryImpl) ListRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	err := db.Preload("Permissions", func(db *gorm.DB) *gorm.DB {
		return db.Order("permissions.name")
	}).Order("name").Find(&roles).Error
	return roles, err
}

func (r *RoleRepositoryImpl) FindRoleByID(db *gorm.DB, id string) (*models.Role, error) {
	var role models.Role
	err := db.Preload("Permissions").First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) FindRoleByName(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	err := db.Preload("Permissions").First(&role, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) CreateRole(db *gorm.DB, role *models.Role) error {
	var count int64
	if err := db.Model(&models.Role{}).Where("name = ?", role.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleAlreadyExists
	}
	return db.Create(role).Error
}

func (r *RoleRepositoryImpl) UpdateRole(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if name, ok := updates["name"]; ok {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRoleAlreadyExists
		}
	}
	result := db.Model(&models.Role{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepositoryImpl) ReplacePermissions(db *gorm.DB, role *models.Role, permissions []models.Permission) error {
	return db.Model(role).Association("Permissions").Replace(permissions)
}

func (r *RoleRepositoryImpl) DeleteRole(db *gorm.DB, id string) error {
	result := db.Delete(&models.Role{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepositoryImpl) ListPermissions(db *gorm.DB) ([]models.Permission, error) {
	var permissions []models.Permission
	err := db.Order("name").Find(&permissions).Error
	return permissions, err
}

func (r *RoleRepositoryImpl) FindPermissionsByNames(db *gorm.DB, names []string) ([]models.Permission, error) {
	var permissions []models.Permission
	if len(names) == 0 {
		return permissions, nil
	}
	if err := db.Where("name IN ?", names).Find(&permissions).Error; err != nil {
		return nil, err
	}
	if len(permissions) != len(uniqueStrings(names)) {
		return nil, ErrPermissionNotFound
	}
	return permissions, nil
}

func (r *RoleRepositoryImpl) CreatePermission(db *gorm.DB, permission *models.Permission) error {
	var count int64
	if err := db.Model(&models.Permission{}).Where("name = ?", permission.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPermissionExists
	}
	return db.Create(permission).Error
}

// UpsertPermission inserts the permission or refreshes its description, keyed by name.
func (r *RoleRepositoryImpl) UpsertPermission(db *gorm.DB, permission *models.Permission) error {
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "updated_at"}),
	}).Create(permission).Error; err != nil {
		return err
	}
	var stored models.Permission
	if err := db.First(&stored, "name = ?", permission.Name).Error; err != nil {
		return err
	}
	*permission = stored
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
