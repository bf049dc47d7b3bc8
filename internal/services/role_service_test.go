package services

import (
	"testing"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMissingPermissions(t *testing.T) {
	role := &models.Role{Permissions: []models.Permission{{Name: auth.PermViewJobs}}}

	assert.Equal(t, []string{auth.PermCreateStartup}, missingPermissions(role, DefaultUserPermissions))
	assert.Empty(t, missingPermissions(role, []string{auth.PermViewJobs}))
}

func TestDefaultUserPermissions_AllowCreatingStartups(t *testing.T) {
	assert.Contains(t, DefaultUserPermissions, auth.PermCreateStartup)
	assert.NotContains(t, DefaultUserPermissions, auth.PermSiteAdmin)
}
