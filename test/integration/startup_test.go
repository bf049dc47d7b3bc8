package integration_test

import (
	"net/http"
	"testing"

	"greentech_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStartup_OwnedByCreator(t *testing.T) {
	ts := setup(t)
	client, user := helpers.LoginAs(t, ts, "founder", "USER")

	var startup map[string]any
	res := client.DoJSON(t, http.MethodPost, "/api/startups", map[string]any{
		"name":      "Aurora Wind",
		"employees": "12",
		"tags":      []string{"wind"},
	}, &startup)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, user.ID, startup["userId"])
	assert.Regexp(t, `^aurora-wind`, startup["slug"])

	var mine []map[string]any
	res = client.DoJSON(t, http.MethodGet, "/api/users/me/startups", nil, &mine)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, mine, 1)
}

func TestClaimStartup(t *testing.T) {
	ts := setup(t)
	seeded := helpers.CreateStartup(t, ts, "Fjord Current", "fjord-current", nil, "24")

	anonymous := ts.NewClient(t)
	res, _ := anonymous.Do(t, http.MethodPost, "/api/startups/"+seeded.ID+"/claim", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	first, firstUser := helpers.LoginAs(t, ts, "first", "USER")
	var claimed map[string]any
	res = first.DoJSON(t, http.MethodPost, "/api/startups/"+seeded.ID+"/claim", nil, &claimed)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, firstUser.ID, claimed["userId"])

	second, _ := helpers.LoginAs(t, ts, "second", "USER")
	res, _ = second.Do(t, http.MethodPost, "/api/startups/fjord-current/claim", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = second.Do(t, http.MethodPut, "/api/startups/"+seeded.ID, map[string]any{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestStartupRegion_MustExistAndCanBeCleared(t *testing.T) {
	ts := setup(t)
	norway := helpers.CreateRegion(t, ts, "Norway", "norway")
	client, _ := helpers.LoginAs(t, ts, "founder", "USER")

	res, _ := client.Do(t, http.MethodPost, "/api/startups", map[string]any{
		"name":     "Aurora Wind",
		"regionId": "9d6f3c52-1111-4a2b-8c3d-4e5f6a7b8c9d",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	var startup map[string]any
	res = client.DoJSON(t, http.MethodPost, "/api/startups", map[string]any{
		"name":     "Aurora Wind",
		"regionId": norway.ID,
	}, &startup)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, norway.ID, startup["regionId"])

	id := startup["id"].(string)
	res, _ = client.Do(t, http.MethodPut, "/api/startups/"+id, map[string]any{
		"regionId": "9d6f3c52-1111-4a2b-8c3d-4e5f6a7b8c9d",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var updated map[string]any
	res = client.DoJSON(t, http.MethodPut, "/api/startups/"+id, map[string]any{"regionId": nil}, &updated)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, updated["regionId"])
}
