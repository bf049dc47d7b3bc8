package repositories

import (
	"errors"
	"time"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegionNotFound      = errors.New("region not found")
	ErrRegionAlreadyExists = errors.New("region already exists")
	ErrInitiativeNotFound  = errors.New("initiative not found")
	ErrPartnerNotFound     = errors.New("partner not found")
)

type RegionRepository interface {
	ListWithStats(db *gorm.DB) ([]models.Region, error)
	FindByID(db *gorm.DB, id string) (*models.Region, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Region, error)
	FindDetailBySlug(db *gorm.DB, slug string) (*models.Region, error)
	Create(db *gorm.DB, region *models.Region) error
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	SetTotalInvestment(db *gorm.DB, regionID, totalInvestment string) error

	CreateInitiative(db *gorm.DB, initiative *models.RegionInitiative) error
	DeleteInitiative(db *gorm.DB, regionID, id string) error
	CreatePartner(db *gorm.DB, partner *models.EcosystemPartner) error
	DeletePartner(db *gorm.DB, regionID, id string) error
}

type RegionRepositoryImpl struct{}

func NewRegionRepository() RegionRepository {
	return &RegionRepositoryImpl{}
}

func (r *RegionRepositoryImpl) ListWithStats(db *gorm.DB) ([]models.Region, error) {
	var regions []models.Region
	err := db.Preload("Stats").Order("name").Find(&regions).Error
	return regions, err
}

func (r *RegionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Region, error) {
	var region models.Region
	err := db.First(&region, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *RegionRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Region, error) {
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

func (r *RegionRepositoryImpl) FindDetailBySlug(db *gorm.DB, slug string) (*models.Region, error) {
	var region models.Region
	err := db.Preload("Stats").
		Preload("Initiatives", func(db *gorm.DB) *gorm.DB {
			return db.Order("region_initiatives.created_at")
		}).
		Preload("Partners", func(db *gorm.DB) *gorm.DB {
			return db.Order("ecosystem_partners.name")
		}).
		First(&region, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *RegionRepositoryImpl) Create(db *gorm.DB, region *models.Region) error {
	var count int64
	if err := db.Model(&models.Region{}).Where("slug = ? OR name = ?", region.Slug, region.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrRegionAlreadyExists
	}
	return db.Create(region).Error
}

func (r *RegionRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if name, ok := updates["name"]; ok {
		var count int64
		if err := db.Model(&models.Region{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRegionAlreadyExists
		}
	}
	result := db.Model(&models.Region{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegionNotFound
	}
	return nil
}

// SetTotalInvestment upserts the stats row touching only total_investment.
// A freshly inserted row has no refreshed_at, so it reads as stale.
func (r *RegionRepositoryImpl) SetTotalInvestment(db *gorm.DB, regionID, totalInvestment string) error {
	stats := models.RegionStats{
		RegionID:        regionID,
		TotalInvestment: totalInvestment,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "region_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_investment": totalInvestment,
			"updated_at":       time.Now().UTC(),
		}),
	}).Create(&stats).Error
}

func (r *RegionRepositoryImpl) CreateInitiative(db *gorm.DB, initiative *models.RegionInitiative) error {
	return db.Create(initiative).Error
}

func (r *RegionRepositoryImpl) DeleteInitiative(db *gorm.DB, regionID, id string) error {
	result := db.Delete(&models.RegionInitiative{}, "id = ? AND region_id = ?", id, regionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInitiativeNotFound
	}
	return nil
}

func (r *RegionRepositoryImpl) CreatePartner(db *gorm.DB, partner *models.EcosystemPartner) error {
	return db.Create(partner).Error
}

func (r *RegionRepositoryImpl) DeletePartner(db *gorm.DB, regionID, id string) error {
	result := db.Delete(&models.EcosystemPartner{}, "id = ? AND region_id = ?", id, regionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPartnerNotFound
	}
	return nil
}
