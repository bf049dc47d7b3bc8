package repositories

import (
	"errors"

	"greentech_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrStartupNotFound       = errors.New("startup not found")
	ErrStartupAlreadyClaimed = errors.New("startup already claimed")
	ErrTeamMemberNotFound    = errors.New("team member not found")
	ErrGalleryImageNotFound  = errors.New("gallery image not found")
)

type StartupFilter struct {
	Region  *models.Region
	Country string
	Tag     string
	Search  string
	Claimed *bool
	Pagination
}

type StartupRepository interface {
	Create(db *gorm.DB, startup *models.Startup) error
	FindByID(db *gorm.DB, id string) (*models.Startup, error)
	FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.Startup, error)
	FindDetail(db *gorm.DB, idOrSlug string) (*models.Startup, error)
	FindWithFilter(db *gorm.DB, filter StartupFilter) ([]models.Startup, int64, error)
	FindByOwner(db *gorm.DB, userID string) ([]models.Startup, error)
	FindByRegion(db *gorm.DB, region *models.Region, limit int) ([]models.Startup, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	DeleteCascade(db *gorm.DB, id string) error
	Claim(db *gorm.DB, id, userID string) error

	// Team members
	CreateTeamMember(db *gorm.DB, member *models.TeamMember) error
	FindTeamMember(db *gorm.DB, startupID, memberID string) (*models.TeamMember, error)
	UpdateTeamMember(db *gorm.DB, startupID, memberID string, updates map[string]interface{}) error
	DeleteTeamMember(db *gorm.DB, startupID, memberID string) error

	// Gallery
	CreateGalleryImage(db *gorm.DB, image *models.GalleryImage) error
	DeleteGalleryImage(db *gorm.DB, startupID, imageID string) error
}

type StartupRepositoryImpl struct{}

func NewStartupRepository() StartupRepository {
	return &StartupRepositoryImpl{}
}

func (r *StartupRepositoryImpl) Create(db *gorm.DB, startup *models.Startup) error {
	return db.Create(startup).Error
}

func (r *StartupRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Startup, error) {
	var startup models.Startup
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrStartupNotFound
	}
	err := db.First(&startup, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

func byIDOrSlug(db *gorm.DB, table, idOrSlug string) *gorm.DB {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return db.Where(table+".id = ?", idOrSlug)
	}
	return db.Where(table+".slug = ?", idOrSlug)
}

func (r *StartupRepositoryImpl) FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.Startup, error) {
	var startup models.Startup
	err := byIDOrSlug(db, "startups", idOrSlug).First(&startup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

// FindDetail loads the startup with region, team, gallery and active jobs.
func (r *StartupRepositoryImpl) FindDetail(db *gorm.DB, idOrSlug string) (*models.Startup, error) {
	var startup models.Startup
	err := byIDOrSlug(db, "startups", idOrSlug).
		Preload("Region").
		Preload("TeamMembers", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.created_at")
		}).
		Preload("Gallery", func(db *gorm.DB) *gorm.DB {
			return db.Order("gallery_images.sort_order, gallery_images.created_at")
		}).
		Preload("Jobs", "status = ?", models.JobStatusActive).
		First(&startup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

func (r *StartupRepositoryImpl) FindWithFilter(db *gorm.DB, filter StartupFilter) ([]models.Startup, int64, error) {
	query := db.Model(&models.Startup{})

	if filter.Region != nil {
		query = startupsInRegion(query, filter.Region)
	}
	if filter.Country != "" {
		query = query.Where("lower(startups.country) = lower(?)", filter.Country)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(startups.tags)", filter.Tag)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("lower(startups.name) LIKE ? OR lower(startups.description) LIKE ?", pattern, pattern)
	}
	if filter.Claimed != nil {
		if *filter.Claimed {
			query = query.Where("startups.user_id IS NOT NULL")
		} else {
			query = query.Where("startups.user_id IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var startups []models.Startup
	err := paginate(query.Preload("Region"), filter.Pagination).
		Order("startups.name").
		Find(&startups).Error
	return startups, total, err
}

func (r *StartupRepositoryImpl) FindByOwner(db *gorm.DB, userID string) ([]models.Startup, error) {
	var startups []models.Startup
	err := db.Where("user_id = ?", userID).Order("name").Find(&startups).Error
	return startups, err
}

func (r *StartupRepositoryImpl) FindByRegion(db *gorm.DB, region *models.Region, limit int) ([]models.Startup, error) {
	var startups []models.Startup
	query := startupsInRegion(db.Model(&models.Startup{}), region).Order("startups.name")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&startups).Error
	return startups, err
}

func (r *StartupRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Startup{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *StartupRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.Model(&models.Startup{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStartupNotFound
	}
	return nil
}

// DeleteCascade removes the startup and everything hanging off it. The caller
// supplies a transaction.
func (r *StartupRepositoryImpl) DeleteCascade(db *gorm.DB, id string) error {
	jobIDs := db.Session(&gorm.Session{NewDB: true}).Model(&models.Job{}).Select("id").Where("startup_id = ?", id)
	if err := db.Where("startup_id = ? OR job_id IN (?)", id, jobIDs).Delete(&models.AnalyticsEvent{}).Error; err != nil {
		return err
	}
	for _, model := range []interface{}{&models.Job{}, &models.TeamMember{}, &models.GalleryImage{}, &models.BlogPost{}} {
		if err := db.Where("startup_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}

	result := db.Delete(&models.Startup{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStartupNotFound
	}
	return nil
}

// Claim sets the owner only if there is none. The check and the write are one statement.
func (r *StartupRepositoryImpl) Claim(db *gorm.DB, id, userID string) error {
	result := db.Model(&models.Startup{}).
		Where("id = ? AND user_id IS NULL", id).
		Update("user_id", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(db, id); err != nil {
			return err
		}
		return ErrStartupAlreadyClaimed
	}
	return nil
}

// Team members

func (r *StartupRepositoryImpl) CreateTeamMember(db *gorm.DB, member *models.TeamMember) error {
	return db.Create(member).Error
}

func (r *StartupRepositoryImpl) FindTeamMember(db *gorm.DB, startupID, memberID string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := db.First(&member, "id = ? AND startup_id = ?", memberID, startupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *StartupRepositoryImpl) UpdateTeamMember(db *gorm.DB, startupID, memberID string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.Model(&models.TeamMember{}).
		Where("id = ? AND startup_id = ?", memberID, startupID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}

func (r *StartupRepositoryImpl) DeleteTeamMember(db *gorm.DB, startupID, memberID string) error {
	result := db.Delete(&models.TeamMember{}, "id = ? AND startup_id = ?", memberID, startupID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}

// Gallery

func (r *StartupRepositoryImpl) CreateGalleryImage(db *gorm.DB, image *models.GalleryImage) error {
	return db.Create(image).Error
}

func (r *StartupRepositoryImpl) DeleteGalleryImage(db *gorm.DB, startupID, imageID string) error {
	result := db.Delete(&models.GalleryImage{}, "id = ? AND startup_id = ?", imageID, startupID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGalleryImageNotFound
	}
	return nil
}
