package repositories

import (
	"errors"
	"time"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegionCounts are the four recomputed figures of one region.
type RegionCounts struct {
	Startups  int
	Employees int
	Jobs      int
	Events    int
}

// RegionStatsRepository holds the queries behind the stats recompute job.
type RegionStatsRepository interface {
	ListRegions(db *gorm.DB) ([]models.Region, error)
	FindRegionBySlug(db *gorm.DB, slug string) (*models.Region, error)
	// StartupEmployeeValues returns the raw employees string of every startup in the region.
	StartupEmployeeValues(db *gorm.DB, region *models.Region) ([]string, error)
	CountActiveJobs(db *gorm.DB, region *models.Region) (int64, error)
	CountUpcomingEvents(db *gorm.DB, region *models.Region, now time.Time) (int64, error)
	// UpsertCounts writes the counts and refreshed_at; total_investment is left alone.
	UpsertCounts(db *gorm.DB, regionID string, counts RegionCounts, refreshedAt time.Time) error
	FindStats(db *gorm.DB, regionID string) (*models.RegionStats, error)
}

type RegionStatsRepositoryImpl struct{}

func NewRegionStatsRepository() RegionStatsRepository {
	return &RegionStatsRepositoryImpl{}
}

func (r *RegionStatsRepositoryImpl) ListRegions(db *gorm.DB) ([]models.Region, error) {
	var regions []models.Region
	err := db.Order("name").Find(&regions).Error
	return regions, err
}

func (r *RegionStatsRepositoryImpl) FindRegionBySlug(db *gorm.DB, slug string) (*models.Region, error) {
	var region models.Region
	err := db.First(&region, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *RegionStatsRepositoryImpl) StartupEmployeeValues(db *gorm.DB, region *models.Region) ([]string, error) {
	var values []string
	err := startupsInRegion(db.Model(&models.Startup{}), region).
		Pluck("startups.employees", &values).Error
	return values, err
}

func (r *RegionStatsRepositoryImpl) CountActiveJobs(db *gorm.DB, region *models.Region) (int64, error) {
	var count int64
	err := activeJobsInRegion(db.Model(&models.Job{}), region).Count(&count).Error
	return count, err
}

func (r *RegionStatsRepositoryImpl) CountUpcomingEvents(db *gorm.DB, region *models.Region, now time.Time) (int64, error) {
	var count int64
	err := contentInRegion(db.Model(&models.Event{}), "events", region).
		Where("events.event_date > ?", now).
		Count(&count).Error
	return count, err
}

func (r *RegionStatsRepositoryImpl) UpsertCounts(db *gorm.DB, regionID string, counts RegionCounts, refreshedAt time.Time) error {
	stats := models.RegionStats{
		RegionID:    regionID,
		Startups:    counts.Startups,
		Employees:   counts.Employees,
		Jobs:        counts.Jobs,
		Events:      counts.Events,
		RefreshedAt: &refreshedAt,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"startups", "employees", "jobs", "events", "refreshed_at", "updated_at"}),
	}).Create(&stats).Error
}

func (r *RegionStatsRepositoryImpl) FindStats(db *gorm.DB, regionID string) (*models.RegionStats, error) {
	var stats models.RegionStats
	err := db.First(&stats, "region_id = ?", regionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}
