package repositories

import (
	"errors"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	StartupID       string
	Type            string
	ExperienceLevel string
	Country         string
	Status          string
	Search          string
	Pagination
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error)
	FindActiveByRegion(db *gorm.DB, region *models.Region, limit int) ([]models.Job, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	IncrementViews(db *gorm.DB, id string) error
	IncrementApplications(db *gorm.DB, id string) error
	SumViewsByStartup(db *gorm.DB, startupID string) (int64, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Startup").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{})

	if filter.StartupID != "" {
		query = query.Where("jobs.startup_id = ?", filter.StartupID)
	}
	if filter.Type != "" {
		query = query.Where("jobs.type = ?", filter.Type)
	}
	if filter.ExperienceLevel != "" {
		query = query.Where("jobs.experience_level = ?", filter.ExperienceLevel)
	}
	if filter.Country != "" {
		query = query.Where("lower(jobs.location_country) = lower(?)", filter.Country)
	}
	if filter.Status != "" {
		query = query.Where("jobs.status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("lower(jobs.title) LIKE ? OR lower(jobs.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := paginate(query.Preload("Startup"), filter.Pagination).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) FindActiveByRegion(db *gorm.DB, region *models.Region, limit int) ([]models.Job, error) {
	var jobs []models.Job
	query := activeJobsInRegion(db.Model(&models.Job{}), region).
		Preload("Startup").
		Order("jobs.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.Model(&models.Job{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if err := db.Model(&models.AnalyticsEvent{}).Where("job_id = ?", id).Update("job_id", nil).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return r.increment(db, id, "views")
}

func (r *JobRepositoryImpl) IncrementApplications(db *gorm.DB, id string) error {
	return r.increment(db, id, "applications")
}

func (r *JobRepositoryImpl) increment(db *gorm.DB, id, column string) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) SumViewsByStartup(db *gorm.DB, startupID string) (int64, error) {
	var total int64
	err := db.Model(&models.Job{}).
		Where("startup_id = ?", startupID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}
