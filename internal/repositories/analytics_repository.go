package repositories

import (
	"time"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Create(db *gorm.DB, event *models.AnalyticsEvent) error
	// FindForStartup returns events of the startup or of its jobs created at or after since.
	FindForStartup(db *gorm.DB, startupID string, since time.Time) ([]models.AnalyticsEvent, error)
}

type analyticsRepository struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) Create(db *gorm.DB, event *models.AnalyticsEvent) error {
	return db.Create(event).Error
}

func (r *analyticsRepository) FindForStartup(db *gorm.DB, startupID string, since time.Time) ([]models.AnalyticsEvent, error) {
	jobIDs := db.Session(&gorm.Session{NewDB: true}).Model(&models.Job{}).Select("id").Where("startup_id = ?", startupID)

	var events []models.AnalyticsEvent
	err := db.Where("(startup_id = ? OR job_id IN (?)) AND created_at >= ?", startupID, jobIDs, since).
		Order("created_at").
		Find(&events).Error
	return events, err
}
