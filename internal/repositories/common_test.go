package repositories

import (
	"strings"
	"testing"
	"time"

	"greentech_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func faroeRegion() *models.Region {
	return &models.Region{BaseModel: models.BaseModel{ID: "region-1"}, Slug: "faroe-islands", Name: "Faroe Islands"}
}

func TestRegionLegacyNames(t *testing.T) {
	assert.Equal(t, []string{"faroe-islands", "faroe islands"}, RegionLegacyNames(faroeRegion()))
	assert.Equal(t, []string{"norway"}, RegionLegacyNames(&models.Region{Slug: "norway", Name: " Norway "}))
}

func TestActiveJobsInRegion_GroupsMatchersUnderStatus(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var jobs []models.Job
		return activeJobsInRegion(tx.Model(&models.Job{}), faroeRegion()).Find(&jobs)
	})

	assert.Contains(t, sql, "jobs.status = 'active' AND (jobs.startup_id IN (SELECT")
	assert.Contains(t, sql, "startups.region_id = 'region-1' OR lower(startups.country) IN ('faroe-islands','faroe islands')")
	assert.True(t, strings.HasSuffix(sql, "OR lower(jobs.location_country) IN ('faroe-islands','faroe islands'))"), sql)
}

func TestContentInRegion_GroupsMatchersBeforeDate(t *testing.T) {
	db := newDryRunDB(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var events []models.Event
		return contentInRegion(tx.Model(&models.Event{}), "events", faroeRegion()).
			Where("events.event_date > ?", now).
			Find(&events)
	})

	assert.Contains(t, sql, "WHERE (events.region_id = 'region-1' OR lower(events.region) IN ('faroe-islands','faroe islands')) AND events.event_date >")
}

func TestStartupsInRegion_MatchesReferenceOrCountry(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var startups []models.Startup
		return startupsInRegion(tx.Model(&models.Startup{}), faroeRegion()).Find(&startups)
	})

	assert.Contains(t, sql, "WHERE startups.region_id = 'region-1' OR lower(startups.country) IN ('faroe-islands','faroe islands')")
}
