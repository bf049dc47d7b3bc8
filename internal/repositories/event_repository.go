package repositories

import (
	"errors"
	"time"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEventFull     = errors.New("event is full")
	ErrEventPast     = errors.New("event is in the past")
)

type EventFilter struct {
	Region     *models.Region
	RegionText string
	Upcoming   bool
	Now        time.Time
	Pagination
}

type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.Event, error)
	FindWithFilter(db *gorm.DB, filter EventFilter) ([]models.Event, int64, error)
	FindUpcomingByRegion(db *gorm.DB, region *models.Region, now time.Time, limit int) ([]models.Event, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Update(db *gorm.DB, id string, updates map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	Attend(db *gorm.DB, id string, now time.Time) error
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.Event) error {
	return db.Create(event).Error
}

func (r *EventRepositoryImpl) FindByIDOrSlug(db *gorm.DB, idOrSlug string) (*models.Event, error) {
	var event models.Event
	err := byIDOrSlug(db, "events", idOrSlug).Preload("RegionRef").First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindWithFilter(db *gorm.DB, filter EventFilter) ([]models.Event, int64, error) {
	query := db.Model(&models.Event{})
	switch {
	case filter.Region != nil:
		query = contentInRegion(query, "events", filter.Region)
	case filter.RegionText != "":
		query = query.Where("lower(events.region) = lower(?)", filter.RegionText)
	}
	if filter.Upcoming {
		query = query.Where("events.event_date > ?", filter.Now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := paginate(query, filter.Pagination).
		Order("events.event_date ASC").
		Find(&events).Error
	return events, total, err
}

func (r *EventRepositoryImpl) FindUpcomingByRegion(db *gorm.DB, region *models.Region, now time.Time, limit int) ([]models.Event, error) {
	var events []models.Event
	query := contentInRegion(db.Model(&models.Event{}), "events", region).
		Where("events.event_date > ?", now).
		Order("events.event_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Event{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *EventRepositoryImpl) Update(db *gorm.DB, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := db.Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Attend increments attendees when the event is upcoming and has room, in one statement.
func (r *EventRepositoryImpl) Attend(db *gorm.DB, id string, now time.Time) error {
	result := db.Model(&models.Event{}).
		Where("id = ? AND event_date > ? AND (max_attendees IS NULL OR attendees < max_attendees)", id, now).
		UpdateColumn("attendees", gorm.Expr("attendees + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var event models.Event
	if err := db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.IsPast(now) {
		return ErrEventPast
	}
	return ErrEventFull
}
