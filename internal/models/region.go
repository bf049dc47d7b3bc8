package models

import "time"

type Region struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Country     string `json:"country"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"imageUrl"`

	Stats       *RegionStats       `gorm:"foreignKey:RegionID" json:"stats,omitempty"`
	Initiatives []RegionInitiative `gorm:"foreignKey:RegionID" json:"initiatives,omitempty"`
	Partners    []EcosystemPartner `gorm:"foreignKey:RegionID" json:"partners,omitempty"`
}

// RegionStats is the cached aggregate for one region. The four counts are
// written only by the recompute job; TotalInvestment only by admins.
type RegionStats struct {
	BaseModel
	RegionID        string     `gorm:"type:uuid;uniqueIndex;not null" json:"regionId"`
	Startups        int        `gorm:"not null;default:0" json:"startups"`
	Employees       int        `gorm:"not null;default:0" json:"employees"`
	Jobs            int        `gorm:"not null;default:0" json:"jobs"`
	Events          int        `gorm:"not null;default:0" json:"events"`
	TotalInvestment string     `gorm:"not null;default:''" json:"totalInvestment"`
	RefreshedAt     *time.Time `json:"refreshedAt,omitempty"`
}

func (RegionStats) TableName() string {
	return "region_stats"
}

// IsStale reports whether the counts were never computed or are older than maxAge.
func (s *RegionStats) IsStale(now time.Time, maxAge time.Duration) bool {
	if s == nil || s.RefreshedAt == nil {
		return true
	}
	return now.Sub(*s.RefreshedAt) > maxAge
}

type RegionInitiative struct {
	BaseModel
	RegionID    string `gorm:"type:uuid;not null;index" json:"regionId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	URL         string `json:"url"`
}

type EcosystemPartner struct {
	BaseModel
	RegionID string `gorm:"type:uuid;not null;index" json:"regionId"`
	Name     string `gorm:"not null" json:"name"`
	Type     string `json:"type"`
	LogoURL  string `json:"logoUrl"`
	Website  string `json:"website"`
}
