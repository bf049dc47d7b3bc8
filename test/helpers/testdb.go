package helpers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const TestPassword = "password123"

// CreateUser inserts a user with the named role and TestPassword.
func CreateUser(t *testing.T, ts *TestServer, name, roleName string) *models.User {
	t.Helper()

	role, err := repositories.NewRoleRepository().FindRoleByName(ts.DB, roleName)
	require.NoError(t, err, "role %s must exist", roleName)

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano()),
		PasswordHash: string(hash),
		RoleID:       &role.ID,
	}
	require.NoError(t, ts.DB.Create(user).Error)
	return user
}

// LoginAs creates a user and returns a client holding their session cookie.
func LoginAs(t *testing.T, ts *TestServer, name, roleName string) (*Client, *models.User) {
	t.Helper()

	user := CreateUser(t, ts, name, roleName)
	client := ts.NewClient(t)
	res, body := client.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    user.Email,
		"password": TestPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	return client, user
}

// CreateRegion inserts a region directly, bypassing the admin API.
func CreateRegion(t *testing.T, ts *TestServer, name, slug string) *models.Region {
	t.Helper()
	region := &models.Region{Name: name, Slug: slug, Country: name}
	require.NoError(t, repositories.NewRegionRepository().Create(ts.DB, region))
	return region
}

// CreateStartup inserts an unclaimed startup in region.
func CreateStartup(t *testing.T, ts *TestServer, name, slug string, region *models.Region, employees string) *models.Startup {
	t.Helper()
	startup := &models.Startup{Name: name, Slug: slug, Employees: employees}
	if region != nil {
		startup.RegionID = &region.ID
	}
	require.NoError(t, repositories.NewStartupRepository().Create(ts.DB, startup))
	return startup
}
