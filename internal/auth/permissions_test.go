package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		held     []string
		required string
		want     bool
	}{
		{"present", []string{"VIEW_JOBS", "CREATE_STARTUP"}, "CREATE_STARTUP", true},
		{"absent", []string{"VIEW_JOBS"}, "DELETE_JOB", false},
		{"nil list", nil, "VIEW_JOBS", false},
		{"empty list", []string{}, "VIEW_JOBS", false},
		{"case sensitive", []string{"view_jobs"}, "VIEW_JOBS", false},
		{"no wildcard", []string{"*"}, "VIEW_JOBS", false},
		{"no prefix match", []string{"EDIT"}, "EDIT_JOB", false},
		{"site admin is not a superset", []string{PermSiteAdmin}, PermManageRoles, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.held, tt.required))
		})
	}
}

func TestIsKnownPermission(t *testing.T) {
	assert.True(t, IsKnownPermission(PermManageRegions))
	assert.False(t, IsKnownPermission("LAUNCH_ROCKETS"))
	assert.Len(t, PermissionNames(), len(AllPermissions))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))

	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("longenough"))
}
