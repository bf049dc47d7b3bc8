package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB returns a handle that is never connected; the fakes below ignore it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable",
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

type fakeStatsRepo struct {
	regions   []models.Region
	employees map[string][]string
	jobs      map[string]int64
	events    map[string]int64
	failFor   map[string]bool
	listErr   error
	stats     map[string]*models.RegionStats
	eventsNow time.Time
}

func newFakeStatsRepo(regions ...models.Region) *fakeStatsRepo {
	return &fakeStatsRepo{
		regions:   regions,
		employees: map[string][]string{},
		jobs:      map[string]int64{},
		events:    map[string]int64{},
		failFor:   map[string]bool{},
		stats:     map[string]*models.RegionStats{},
	}
}

func (f *fakeStatsRepo) ListRegions(*gorm.DB) ([]models.Region, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Region(nil), f.regions...), nil
}

func (f *fakeStatsRepo) FindRegionBySlug(_ *gorm.DB, slug string) (*models.Region, error) {
	for i := range f.regions {
		if f.regions[i].Slug == slug {
			r := f.regions[i]
			return &r, nil
		}
	}
	return nil, repositories.ErrRegionNotFound
}

func (f *fakeStatsRepo) StartupEmployeeValues(_ *gorm.DB, r *models.Region) ([]string, error) {
	if f.failFor[r.Slug] {
		return nil, errors.New("connection reset")
	}
	return f.employees[r.Slug], nil
}

func (f *fakeStatsRepo) CountActiveJobs(_ *gorm.DB, r *models.Region) (int64, error) {
	return f.jobs[r.Slug], nil
}

func (f *fakeStatsRepo) CountUpcomingEvents(_ *gorm.DB, r *models.Region, now time.Time) (int64, error) {
	f.eventsNow = now
	return f.events[r.Slug], nil
}

func (f *fakeStatsRepo) UpsertCounts(_ *gorm.DB, regionID string, c repositories.RegionCounts, refreshedAt time.Time) error {
	row, ok := f.stats[regionID]
	if !ok {
		row = &models.RegionStats{RegionID: regionID}
		f.stats[regionID] = row
	}
	row.Startups = c.Startups
	row.Employees = c.Employees
	row.Jobs = c.Jobs
	row.Events = c.Events
	at := refreshedAt
	row.RefreshedAt = &at
	return nil
}

func (f *fakeStatsRepo) FindStats(_ *gorm.DB, regionID string) (*models.RegionStats, error) {
	row, ok := f.stats[regionID]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

// fakeStartupRepo implements the calls the service tests make; anything else
// hits the nil embedded interface and panics.
type fakeStartupRepo struct {
	repositories.StartupRepository
	startups map[string]*models.Startup
	claimErr error
	claimed  []string
	created  []*models.Startup
	taken    map[string]bool
	updates  []map[string]interface{}
}

func newFakeStartupRepo(startups ...models.Startup) *fakeStartupRepo {
	f := &fakeStartupRepo{startups: map[string]*models.Startup{}, taken: map[string]bool{}}
	for i := range startups {
		s := startups[i]
		f.startups[s.ID] = &s
		f.taken[s.Slug] = true
	}
	return f
}

func (f *fakeStartupRepo) FindByID(_ *gorm.DB, id string) (*models.Startup, error) {
	if s, ok := f.startups[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, repositories.ErrStartupNotFound
}

func (f *fakeStartupRepo) FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.Startup, error) {
	for _, s := range f.startups {
		if s.ID == idOrSlug || s.Slug == idOrSlug {
			return f.FindByID(db, s.ID)
		}
	}
	return nil, repositories.ErrStartupNotFound
}

func (f *fakeStartupRepo) SlugExists(_ *gorm.DB, slug string) (bool, error) {
	return f.taken[slug], nil
}

func (f *fakeStartupRepo) Create(_ *gorm.DB, s *models.Startup) error {
	s.ID = "created-" + s.Slug
	f.created = append(f.created, s)
	f.taken[s.Slug] = true
	return nil
}

func (f *fakeStartupRepo) Claim(_ *gorm.DB, id, userID string) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	s, ok := f.startups[id]
	if !ok {
		return repositories.ErrStartupNotFound
	}
	if s.UserID != nil {
		return repositories.ErrStartupAlreadyClaimed
	}
	s.UserID = &userID
	f.claimed = append(f.claimed, id)
	return nil
}

func (f *fakeStartupRepo) Update(_ *gorm.DB, id string, updates map[string]interface{}) error {
	if _, ok := f.startups[id]; !ok {
		return repositories.ErrStartupNotFound
	}
	f.updates = append(f.updates, updates)
	return nil
}

func (f *fakeStartupRepo) FindDetail(db *gorm.DB, idOrSlug string) (*models.Startup, error) {
	return f.FindByIDOrSlug(db, idOrSlug)
}

type fakeRegionRepo struct {
	repositories.RegionRepository
	bySlug    map[string]*models.Region
	updateErr error
	updated   []map[string]interface{}
}

func (f *fakeRegionRepo) FindBySlug(_ *gorm.DB, slug string) (*models.Region, error) {
	if r, ok := f.bySlug[slug]; ok {
		return r, nil
	}
	return nil, repositories.ErrRegionNotFound
}

func (f *fakeRegionRepo) FindByID(_ *gorm.DB, id string) (*models.Region, error) {
	for _, r := range f.bySlug {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repositories.ErrRegionNotFound
}

func (f *fakeRegionRepo) FindDetailBySlug(db *gorm.DB, slug string) (*models.Region, error) {
	return f.FindBySlug(db, slug)
}

func (f *fakeRegionRepo) Update(_ *gorm.DB, _ string, updates map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, updates)
	return nil
}

type fakeJobRepo struct {
	repositories.JobRepository
	jobs map[string]*models.Job
}

func (f *fakeJobRepo) FindByID(_ *gorm.DB, id string) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		copied := *j
		return &copied, nil
	}
	return nil, repositories.ErrJobNotFound
}

type fakeAnalyticsRepo struct {
	repositories.AnalyticsRepository
	created []*models.AnalyticsEvent
}

func (f *fakeAnalyticsRepo) Create(_ *gorm.DB, event *models.AnalyticsEvent) error {
	f.created = append(f.created, event)
	return nil
}

// recordingNotifications captures calls instead of sending mail.
type recordingNotifications struct {
	welcomed []string
	claimed  []string
}

func (r *recordingNotifications) SendWelcome(_ context.Context, user *models.User) {
	r.welcomed = append(r.welcomed, user.Email)
}

func (r *recordingNotifications) SendStartupClaimed(_ context.Context, to, _ string, startup *models.Startup) {
	r.claimed = append(r.claimed, to+":"+startup.Slug)
}
