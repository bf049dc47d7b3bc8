package repositories

import (
	"errors"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNewsNotFound = errors.New("news not found")

type NewsFilter struct {
	Region *models.Region
	// RegionText matches the legacy column when no Region row exists for the filter value.
	RegionText string
	Tag        string
	Pagination
}

type NewsRepository interface {
	Create(db *gorm.DB, news *models.News) error
	FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.News, error)
	FindWithFilter(db *gorm.DB, filter NewsFilter) ([]models.News, int64, error)
	FindLatestByRegion(db *gorm.DB, region *models.Region, limit int) ([]models.News, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
}

type NewsRepositoryImpl struct{}

func NewNewsRepository() NewsRepository {
	return &NewsRepositoryImpl{}
}

func (r *NewsRepositoryImpl) Create(db *gorm.DB, news *models.News) error {
	return db.Create(news).Error
}

func (r *NewsRepositoryImpl) FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.News, error) {
	var news models.News
	err := byIDOrSlug(db, "news", idOrSlug).Preload("RegionRef").First(&news).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &news, nil
}

func (r *NewsRepositoryImpl) FindWithFilter(db *gorm.DB, filter NewsFilter) ([]models.News, int64, error) {
	query := db.Model(&models.News{})
	switch {
	case filter.Region != nil:
		query = contentInRegion(query, "news", filter.Region)
	case filter.RegionText != "":
		query = query.Where("lower(news.region) = lower(?)", filter.RegionText)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(news.tags)", filter.Tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.News
	err := paginate(query, filter.Pagination).
		Order("news.published_at DESC").
		Find(&items).Error
	return items, total, err
}

func (r *NewsRepositoryImpl) FindLatestByRegion(db *gorm.DB, region *models.Region, limit int) ([]models.News, error) {
	var items []models.News
	query := contentInRegion(db.Model(&models.News{}), "news", region).Order("news.published_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&items).Error
	return items, err
}

func (r *NewsRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.News{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *NewsRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.Model(&models.News{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.News{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}
