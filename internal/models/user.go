package models

type User struct {
	BaseModel
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	RoleID       *string `gorm:"type:uuid;index" json:"roleId,omitempty"`

	// Relations
	Role     *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Startups []Startup `gorm:"foreignKey:UserID" json:"startups,omitempty"`
}

// PermissionNames returns the names of the permissions granted through the user's role.
// The role and its permissions must be preloaded.
func (u *User) PermissionNames() []string {
	if u.Role == nil {
		return []string{}
	}
	return u.Role.PermissionNames()
}

func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

type Role struct {
	BaseModel
	Name        string       `gorm:"uniqueIndex;not null" json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
}

func (r *Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names
}

type Permission struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}
