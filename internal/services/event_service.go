package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EventService interface {
	ListEvents(ctx context.Context, db *gorm.DB, query *dto.ContentListQuery, page, pageSize int) (*dto.EventListResponse, error)
	GetEvent(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.Event, error)
	CreateEvent(ctx context.Context, db *gorm.DB, req *dto.CreateEventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, db *gorm.DB, idOrSlug string, req *dto.UpdateEventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, db *gorm.DB, idOrSlug string) error
	// Attend fails with 409 on past or fully booked events.
	Attend(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.Event, error)
}

type eventService struct {
	eventRepo  repositories.EventRepository
	regionRepo repositories.RegionRepository
	now        func() time.Time
}

func NewEventService(eventRepo repositories.EventRepository, regionRepo repositories.RegionRepository) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		regionRepo: regionRepo,
		now:        utcNow,
	}
}

func (s *eventService) ListEvents(ctx context.Context, db *gorm.DB, query *dto.ContentListQuery, page, pageSize int) (*dto.EventListResponse, error) {
	db = db.WithContext(ctx)

	region, regionText, err := resolveRegionFilter(db, s.regionRepo, query.Region)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	events, total, err := s.eventRepo.FindWithFilter(db, repositories.EventFilter{
		Region:     region,
		RegionText: regionText,
		Upcoming:   query.Upcoming,
		Now:        s.now(),
		Pagination: repositories.Pagination{Page: page, PageSize: pageSize},
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return &dto.EventListResponse{
		Events: events,
		Total:  total,
		Page:   page,
		Pages:  dto.Pages(total, pageSize),
	}, nil
}

func (s *eventService) GetEvent(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.Event, error) {
	event, err := s.eventRepo.FindByIDOrSlug(db.WithContext(ctx), idOrSlug)
	if err != nil {
		return nil, eventError(err)
	}
	return event, nil
}

func (s *eventService) CreateEvent(ctx context.Context, db *gorm.DB, req *dto.CreateEventRequest) (*models.Event, error) {
	db = db.WithContext(ctx)

	if req.EventDate.IsZero() {
		return nil, apperrors.ValidationError(map[string]string{"eventDate": "This field is required"})
	}
	if err := checkEventDates(req.EventDate, req.EndDate); err != nil {
		return nil, err
	}

	if err := checkRegionID(db, s.regionRepo, req.RegionID); err != nil {
		return nil, err
	}

	base := req.Slug
	if base == "" {
		base = Slugify(req.Title)
	}
	slug, err := uniqueSlug(db, base, s.eventRepo.SlugExists)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	event := &models.Event{
		Title:           strings.TrimSpace(req.Title),
		Slug:            slug,
		Description:     req.Description,
		Location:        req.Location,
		EventDate:       req.EventDate.UTC(),
		EndDate:         utcPtr(req.EndDate),
		RegionID:        req.RegionID,
		Region:          strings.ToLower(strings.TrimSpace(req.Region)),
		Tags:            stringArray(req.Tags),
		MaxAttendees:    req.MaxAttendees,
		RegistrationURL: req.RegistrationURL,
		ImageURL:        req.ImageURL,
	}
	if err := s.eventRepo.Create(db, event); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Event created", "event_id", event.ID, "slug", event.Slug)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, db *gorm.DB, idOrSlug string, req *dto.UpdateEventRequest) (*models.Event, error) {
	db = db.WithContext(ctx)

	event, err := s.eventRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return nil, eventError(err)
	}

	start, end := event.EventDate, event.EndDate
	if req.EventDate != nil {
		start = *req.EventDate
	}
	if req.EndDate != nil {
		end = req.EndDate
	}
	if err := checkEventDates(start, end); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.EventDate != nil {
		updates["event_date"] = req.EventDate.UTC()
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate.UTC()
	}
	if err := regionIDUpdate(db, s.regionRepo, req.RegionID, updates); err != nil {
		return nil, err
	}
	if req.Region != nil {
		updates["region"] = strings.ToLower(strings.TrimSpace(*req.Region))
	}
	if req.Tags != nil {
		updates["tags"] = stringArray(*req.Tags)
	}
	if req.MaxAttendees != nil {
		updates["max_attendees"] = *req.MaxAttendees
	}
	if req.RegistrationURL != nil {
		updates["registration_url"] = *req.RegistrationURL
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if err := s.eventRepo.Update(db, event.ID, updates); err != nil {
		return nil, eventError(err)
	}
	return s.GetEvent(ctx, db, event.ID)
}

func (s *eventService) DeleteEvent(ctx context.Context, db *gorm.DB, idOrSlug string) error {
	db = db.WithContext(ctx)

	event, err := s.eventRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return eventError(err)
	}
	if err := s.eventRepo.Delete(db, event.ID); err != nil {
		return eventError(err)
	}
	return nil
}

func (s *eventService) Attend(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.Event, error) {
	db = db.WithContext(ctx)

	event, err := s.eventRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return nil, eventError(err)
	}
	if err := s.eventRepo.Attend(db, event.ID, s.now()); err != nil {
		return nil, eventError(err)
	}
	return s.GetEvent(ctx, db, event.ID)
}

func checkEventDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return apperrors.ErrInvalidEventDates
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func eventError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrEventNotFound):
		return apperrors.ErrEventNotFound
	case errors.Is(err, repositories.ErrEventFull):
		return apperrors.ErrEventFull
	case errors.Is(err, repositories.ErrEventPast):
		return apperrors.ErrEventPast
	}
	return apperrors.InternalError(err)
}
