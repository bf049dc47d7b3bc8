package models

import (
	"time"

	"github.com/lib/pq"
)

// News and Event keep the legacy free-text Region next to the RegionID reference;
// region queries match either.
type News struct {
	BaseModel
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Summary     string         `json:"summary"`
	Content     string         `gorm:"type:text" json:"content"`
	ImageURL    string         `json:"imageUrl"`
	Source      string         `json:"source"`
	SourceURL   string         `json:"sourceUrl"`
	RegionID    *string        `gorm:"type:uuid;index" json:"regionId,omitempty"`
	Region      string         `json:"region"`
	PublishedAt time.Time      `gorm:"not null;default:now();index" json:"publishedAt"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`

	RegionRef *Region `gorm:"foreignKey:RegionID" json:"regionRef,omitempty"`
}

type Event struct {
	BaseModel
	Title           string         `gorm:"not null" json:"title"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description     string         `gorm:"type:text" json:"description"`
	Location        string         `json:"location"`
	EventDate       time.Time      `gorm:"not null;index" json:"eventDate"`
	EndDate         *time.Time     `json:"endDate,omitempty"`
	RegionID        *string        `gorm:"type:uuid;index" json:"regionId,omitempty"`
	Region          string         `json:"region"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	Attendees       int            `gorm:"not null;default:0" json:"attendees"`
	MaxAttendees    *int           `json:"maxAttendees,omitempty"`
	RegistrationURL string         `json:"registrationUrl"`
	ImageURL        string         `json:"imageUrl"`

	RegionRef *Region `gorm:"foreignKey:RegionID" json:"regionRef,omitempty"`
}

func (e *Event) IsFull() bool {
	return e.MaxAttendees != nil && e.Attendees >= *e.MaxAttendees
}

func (e *Event) IsPast(now time.Time) bool {
	return !e.EventDate.After(now)
}

type BlogPost struct {
	BaseModel
	StartupID     string         `gorm:"type:uuid;not null;index" json:"startupId"`
	AuthorID      *string        `gorm:"type:uuid" json:"authorId,omitempty"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt       string         `json:"excerpt"`
	Content       string         `gorm:"type:text" json:"content"`
	CoverImageURL string         `json:"coverImageUrl"`
	PublishedAt   *time.Time     `json:"publishedAt,omitempty"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`

	Startup *Startup `gorm:"foreignKey:StartupID" json:"startup,omitempty"`
}

func (p *BlogPost) IsPublished() bool {
	return p.PublishedAt != nil
}
