package integration_test

import (
	"net/http"
	"testing"

	"greentech_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	ts := setup(t)
	client := ts.NewClient(t)

	register := map[string]string{
		"name":     "Ingrid",
		"email":    "ingrid@example.com",
		"password": "fjord-power-2025",
	}

	var user map[string]any
	res := client.DoJSON(t, http.MethodPost, "/api/register", register, &user)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "USER", user["role"])

	res, _ = client.Do(t, http.MethodPost, "/api/register", register)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = client.Do(t, http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = client.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ingrid@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = client.Do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ingrid@example.com",
		"password": "fjord-power-2025",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var session map[string]any
	res = client.DoJSON(t, http.MethodGet, "/api/auth/session", nil, &session)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ingrid@example.com", session["email"])
	assert.Contains(t, session["permissions"], "VIEW_JOBS")

	res, _ = client.Do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = client.Do(t, http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminRoutesRequirePermission(t *testing.T) {
	ts := setup(t)

	anonymous := ts.NewClient(t)
	res, _ := anonymous.Do(t, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	user, _ := helpers.LoginAs(t, ts, "viewer", "USER")
	res, _ = user.Do(t, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	admin, _ := helpers.LoginAs(t, ts, "admin", "ADMIN")
	res, _ = admin.Do(t, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
