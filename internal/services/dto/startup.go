package dto

import "greentech_backend/internal/models"

// StartupListQuery - GET /api/startups filters. Claimed is "true", "false" or empty.
type StartupListQuery struct {
	Region  string `form:"region" validate:"omitempty,max=50"`
	Country string `form:"country" validate:"omitempty,max=100"`
	Tag     string `form:"tag" validate:"omitempty,max=50"`
	Search  string `form:"search" validate:"omitempty,max=100"`
	Claimed string `form:"claimed" validate:"omitempty,oneof=true false"`
}

type CreateStartupRequest struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription" validate:"max=300"`
	LogoURL          string   `json:"logoUrl" validate:"omitempty,url"`
	ProfileImageURL  string   `json:"profileImageUrl" validate:"omitempty,url"`
	Website          string   `json:"website" validate:"omitempty,url"`
	Country          string   `json:"country" validate:"max=100"`
	RegionID         *string  `json:"regionId" validate:"omitempty,uuid"`
	FoundedYear      *int     `json:"foundedYear" validate:"omitempty,founded_year"`
	FundingStage     string   `json:"fundingStage" validate:"max=50"`
	FundingAmount    string   `json:"fundingAmount" validate:"max=50"`
	Employees        string   `json:"employees" validate:"max=50"`
	Tags             []string `json:"tags"`
}

// UpdateStartupRequest - partial update, nil fields are left alone
type UpdateStartupRequest struct {
	Name             *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string    `json:"description"`
	ShortDescription *string    `json:"shortDescription" validate:"omitempty,max=300"`
	LogoURL          *string    `json:"logoUrl" validate:"omitempty,url"`
	ProfileImageURL  *string    `json:"profileImageUrl" validate:"omitempty,url"`
	Website          *string    `json:"website" validate:"omitempty,url"`
	Country          *string    `json:"country" validate:"omitempty,max=100"`
	RegionID         NullableID `json:"regionId"`
	FoundedYear      *int       `json:"foundedYear" validate:"omitempty,founded_year"`
	FundingStage     *string    `json:"fundingStage" validate:"omitempty,max=50"`
	FundingAmount    *string    `json:"fundingAmount" validate:"omitempty,max=50"`
	Employees        *string    `json:"employees" validate:"omitempty,max=50"`
	Tags             *[]string  `json:"tags"`
}

type StartupListResponse struct {
	Startups []models.Startup `json:"startups"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

type TeamMemberRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Role        string `json:"role" validate:"max=120"`
	Bio         string `json:"bio"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	LinkedInURL string `json:"linkedinUrl" validate:"omitempty,url"`
}

type UpdateTeamMemberRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Role        *string `json:"role" validate:"omitempty,max=120"`
	Bio         *string `json:"bio"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	LinkedInURL *string `json:"linkedinUrl" validate:"omitempty,url"`
}

type GalleryImageRequest struct {
	URL       string `json:"url" validate:"required,url"`
	Caption   string `json:"caption" validate:"max=300"`
	SortOrder int    `json:"sortOrder" validate:"min=0"`
}
