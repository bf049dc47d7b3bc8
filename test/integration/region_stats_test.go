package integration_test

import (
	"net/http"
	"testing"
	"time"

	"greentech_backend/internal/models"
	"greentech_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronRefresh_StoresRegionCounts(t *testing.T) {
	ts := setup(t)
	norway := helpers.CreateRegion(t, ts, "Norway", "norway")
	helpers.CreateRegion(t, ts, "Iceland", "iceland")
	helpers.CreateStartup(t, ts, "Fjord Current", "fjord-current", norway, "10")
	helpers.CreateStartup(t, ts, "Nordlys", "nordlys", norway, "abc")
	helpers.CreateStartup(t, ts, "Havkraft", "havkraft", norway, "5")

	client := ts.NewClient(t)

	res, _ := client.Do(t, http.MethodGet, "/api/cron/update-region-stats?key=wrong", nil)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var page map[string]any
	client.DoJSON(t, http.MethodGet, "/api/regions/norway", nil, &page)
	stats := page["region"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["startups"])
	assert.Equal(t, true, stats["isStale"])

	var result map[string]any
	res = client.DoJSON(t, http.MethodGet, "/api/cron/update-region-stats?key="+helpers.TestCronSecret, nil, &result)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, float64(2), result["updated"])

	client.DoJSON(t, http.MethodGet, "/api/regions/norway", nil, &page)
	stats = page["region"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["startups"])
	assert.Equal(t, float64(15), stats["employees"])
	assert.Equal(t, false, stats["isStale"])

	res = client.DoJSON(t, http.MethodGet, "/api/cron/update-region-stats?key="+helpers.TestCronSecret+"&region=atlantis", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCronRefresh_MatchesReferencesAndLegacyStrings(t *testing.T) {
	ts := setup(t)
	norway := helpers.CreateRegion(t, ts, "Norway", "norway")
	iceland := helpers.CreateRegion(t, ts, "Iceland", "iceland")
	fjord := helpers.CreateStartup(t, ts, "Fjord Current", "fjord-current", norway, "10")
	geysir := helpers.CreateStartup(t, ts, "Geysir Heat", "geysir-heat", iceland, "4")

	legacy := &models.Startup{Name: "Vindkast", Slug: "vindkast", Country: "Norway", Employees: "7"}
	require.NoError(t, ts.DB.Create(legacy).Error)

	jobs := []models.Job{
		{StartupID: fjord.ID, Title: "Grid engineer", Type: models.JobTypeFullTime, Status: models.JobStatusActive},
		{StartupID: legacy.ID, Title: "Turbine technician", Type: models.JobTypeFullTime, Status: models.JobStatusActive},
		{StartupID: geysir.ID, Title: "Field operator", Type: models.JobTypeContract, Status: models.JobStatusActive, LocationCountry: "norway"},
		{StartupID: fjord.ID, Title: "Closed role", Type: models.JobTypeFullTime, Status: models.JobStatusClosed},
	}
	require.NoError(t, ts.DB.Create(&jobs).Error)

	now := time.Now()
	events := []models.Event{
		{Title: "Oslo Summit", Slug: "oslo-summit", EventDate: now.Add(72 * time.Hour), RegionID: &norway.ID},
		{Title: "Last Year", Slug: "last-year", EventDate: now.Add(-72 * time.Hour), RegionID: &norway.ID},
		{Title: "Bergen Meetup", Slug: "bergen-meetup", EventDate: now.Add(96 * time.Hour), Region: "Norway"},
		{Title: "Reykjavik Talk", Slug: "reykjavik-talk", EventDate: now.Add(96 * time.Hour), RegionID: &iceland.ID},
	}
	require.NoError(t, ts.DB.Create(&events).Error)

	client := ts.NewClient(t)
	res := client.DoJSON(t, http.MethodGet, "/api/cron/update-region-stats?key="+helpers.TestCronSecret, nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var page map[string]any
	client.DoJSON(t, http.MethodGet, "/api/regions/norway", nil, &page)
	stats := page["region"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["startups"])
	assert.Equal(t, float64(17), stats["employees"])
	assert.Equal(t, float64(3), stats["jobs"])
	assert.Equal(t, float64(2), stats["events"])

	client.DoJSON(t, http.MethodGet, "/api/regions/iceland", nil, &page)
	stats = page["region"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["startups"])
	assert.Equal(t, float64(4), stats["employees"])
	assert.Equal(t, float64(1), stats["jobs"])
	assert.Equal(t, float64(1), stats["events"])
}

func TestUpdateRegion_RenameToExistingNameConflicts(t *testing.T) {
	ts := setup(t)
	helpers.CreateRegion(t, ts, "Norway", "norway")
	helpers.CreateRegion(t, ts, "Iceland", "iceland")
	admin, _ := helpers.LoginAs(t, ts, "admin", models.RoleAdmin)

	res, _ := admin.Do(t, http.MethodPut, "/api/regions/iceland", map[string]any{"name": "Norway"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = admin.Do(t, http.MethodPut, "/api/regions/iceland", map[string]any{"name": "Iceland"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
