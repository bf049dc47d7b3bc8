package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalyticsEvent is append-only; it has no UpdatedAt.
type AnalyticsEvent struct {
	ID        string             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Type      AnalyticsEventType `gorm:"type:varchar(20);not null;index" json:"type"`
	StartupID *string            `gorm:"type:uuid;index" json:"startupId,omitempty"`
	JobID     *string            `gorm:"type:uuid;index" json:"jobId,omitempty"`
	Metadata  datatypes.JSON     `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time          `gorm:"default:now();index" json:"createdAt"`
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
