package dto

import (
	"time"

	"greentech_backend/internal/models"
)

// ContentListQuery - region is a slug or a legacy free-text region name
type ContentListQuery struct {
	Region   string `form:"region" validate:"omitempty,max=100"`
	Tag      string `form:"tag" validate:"omitempty,max=50"`
	Upcoming bool   `form:"upcoming"`
}

// ============================================
// News
// ============================================

type CreateNewsRequest struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Slug        string     `json:"slug" validate:"omitempty,slug,max=200"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"imageUrl" validate:"omitempty,url"`
	Source      string     `json:"source" validate:"max=200"`
	SourceURL   string     `json:"sourceUrl" validate:"omitempty,url"`
	RegionID    *string    `json:"regionId" validate:"omitempty,uuid"`
	Region      string     `json:"region" validate:"max=100"`
	PublishedAt *time.Time `json:"publishedAt"`
	Tags        []string   `json:"tags"`
}

type UpdateNewsRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=300"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
	Source      *string    `json:"source" validate:"omitempty,max=200"`
	SourceURL   *string    `json:"sourceUrl" validate:"omitempty,url"`
	RegionID    NullableID `json:"regionId"`
	Region      *string    `json:"region" validate:"omitempty,max=100"`
	PublishedAt *time.Time `json:"publishedAt"`
	Tags        *[]string  `json:"tags"`
}

type NewsListResponse struct {
	News  []models.News `json:"news"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

// ============================================
// Events
// ============================================

type CreateEventRequest struct {
	Title           string     `json:"title" validate:"required,max=300"`
	Slug            string     `json:"slug" validate:"omitempty,slug,max=200"`
	Description     string     `json:"description"`
	Location        string     `json:"location" validate:"max=200"`
	EventDate       time.Time  `json:"eventDate" validate:"required"`
	EndDate         *time.Time `json:"endDate"`
	RegionID        *string    `json:"regionId" validate:"omitempty,uuid"`
	Region          string     `json:"region" validate:"max=100"`
	Tags            []string   `json:"tags"`
	MaxAttendees    *int       `json:"maxAttendees" validate:"omitempty,min=1"`
	RegistrationURL string     `json:"registrationUrl" validate:"omitempty,url"`
	ImageURL        string     `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=300"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location" validate:"omitempty,max=200"`
	EventDate       *time.Time `json:"eventDate"`
	EndDate         *time.Time `json:"endDate"`
	RegionID        NullableID `json:"regionId"`
	Region          *string    `json:"region" validate:"omitempty,max=100"`
	Tags            *[]string  `json:"tags"`
	MaxAttendees    *int       `json:"maxAttendees" validate:"omitempty,min=1"`
	RegistrationURL *string    `json:"registrationUrl" validate:"omitempty,url"`
	ImageURL        *string    `json:"imageUrl" validate:"omitempty,url"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
}

// ============================================
// Blog
// ============================================

// CreateBlogPostRequest - Publish stamps publishedAt with the current time
type CreateBlogPostRequest struct {
	Title         string   `json:"title" validate:"required,max=300"`
	Excerpt       string   `json:"excerpt" validate:"max=500"`
	Content       string   `json:"content"`
	CoverImageURL string   `json:"coverImageUrl" validate:"omitempty,url"`
	Tags          []string `json:"tags"`
	Publish       bool     `json:"publish"`
}

// UpdateBlogPostRequest - Publish=false unpublishes, nil leaves the state alone
type UpdateBlogPostRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=1,max=300"`
	Excerpt       *string   `json:"excerpt" validate:"omitempty,max=500"`
	Content       *string   `json:"content"`
	CoverImageURL *string   `json:"coverImageUrl" validate:"omitempty,url"`
	Tags          *[]string `json:"tags"`
	Publish       *bool     `json:"publish"`
}
