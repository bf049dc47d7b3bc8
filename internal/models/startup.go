package models

import "github.com/lib/pq"

type Startup struct {
	BaseModel
	Name             string         `gorm:"not null" json:"name"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string         `gorm:"type:text" json:"description"`
	ShortDescription string         `json:"shortDescription"`
	LogoURL          string         `json:"logoUrl"`
	ProfileImageURL  string         `json:"profileImageUrl"`
	Website          string         `json:"website"`
	Country          string         `json:"country"`
	RegionID         *string        `gorm:"type:uuid;index" json:"regionId,omitempty"`
	FoundedYear      *int           `json:"foundedYear,omitempty"`
	FundingStage     string         `json:"fundingStage"`
	FundingAmount    string         `json:"fundingAmount"`
	Employees        string         `json:"employees"`
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags"`
	UserID           *string        `gorm:"type:uuid;index" json:"userId,omitempty"`

	// Relations
	Region      *Region        `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Owner       *User          `gorm:"foreignKey:UserID" json:"-"`
	TeamMembers []TeamMember   `gorm:"foreignKey:StartupID" json:"teamMembers,omitempty"`
	Gallery     []GalleryImage `gorm:"foreignKey:StartupID" json:"gallery,omitempty"`
	Jobs        []Job          `gorm:"foreignKey:StartupID" json:"jobs,omitempty"`
}

// IsClaimed reports whether the startup has an owner.
func (s *Startup) IsClaimed() bool {
	return s.UserID != nil && *s.UserID != ""
}

// IsOwnedBy reports whether userID owns the startup.
func (s *Startup) IsOwnedBy(userID string) bool {
	return userID != "" && s.UserID != nil && *s.UserID == userID
}

type TeamMember struct {
	BaseModel
	StartupID   string `gorm:"type:uuid;not null;index" json:"startupId"`
	Name        string `gorm:"not null" json:"name"`
	Role        string `json:"role"`
	Bio         string `gorm:"type:text" json:"bio"`
	ImageURL    string `json:"imageUrl"`
	LinkedInURL string `gorm:"column:linkedin_url" json:"linkedinUrl"`
}

type GalleryImage struct {
	BaseModel
	StartupID string `gorm:"type:uuid;not null;index" json:"startupId"`
	URL       string `gorm:"not null" json:"url"`
	Caption   string `json:"caption"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}
