package repositories

import (
	"errors"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

type BlogRepository interface {
	Create(db *gorm.DB, post *models.BlogPost) error
	FindByID(db *gorm.DB, id string) (*models.BlogPost, error)
	FindBySlug(db *gorm.DB, slug string) (*models.BlogPost, error)
	FindByStartup(db *gorm.DB, startupID string, includeDrafts bool) ([]models.BlogPost, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
}

type BlogRepositoryImpl struct{}

func NewBlogRepository() BlogRepository {
	return &BlogRepositoryImpl{}
}

func (r *BlogRepositoryImpl) Create(db *gorm.DB, post *models.BlogPost) error {
	return db.Create(post).Error
}

func (r *BlogRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := db.Preload("Startup").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := db.Preload("Startup").First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepositoryImpl) FindByStartup(db *gorm.DB, startupID string, includeDrafts bool) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	query := db.Where("startup_id = ?", startupID)
	if !includeDrafts {
		query = query.Where("published_at IS NOT NULL")
	}
	err := query.Order("published_at DESC NULLS FIRST, created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *BlogRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *BlogRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogPostNotFound
	}
	return nil
}

func (r *BlogRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlogPostNotFound
	}
	return nil
}
