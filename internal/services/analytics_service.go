package services

import (
	"context"
	"encoding/json"
	"time"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultAnalyticsDays = 30
	MaxAnalyticsDays     = 365

	// DirectTrafficSource is used for view events without metadata.source.
	DirectTrafficSource = "direct"
)

type AnalyticsService interface {
	Track(ctx context.Context, db *gorm.DB, req *dto.TrackRequest) (*models.AnalyticsEvent, error)
	StartupAnalytics(ctx context.Context, db *gorm.DB, session *auth.Session, startupIDOrSlug string, days int) (*dto.StartupAnalytics, error)
}

type analyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	startupRepo   repositories.StartupRepository
	jobRepo       repositories.JobRepository
	now           func() time.Time
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	startupRepo repositories.StartupRepository,
	jobRepo repositories.JobRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		startupRepo:   startupRepo,
		jobRepo:       jobRepo,
		now:           utcNow,
	}
}

func (s *analyticsService) Track(ctx context.Context, db *gorm.DB, req *dto.TrackRequest) (*models.AnalyticsEvent, error) {
	if req.StartupID == nil && req.JobID == nil {
		return nil, apperrors.ErrAnalyticsTargetRequired
	}
	db = db.WithContext(ctx)

	event := &models.AnalyticsEvent{Type: models.AnalyticsEventType(req.Type)}

	if req.JobID != nil {
		job, err := s.jobRepo.FindByID(db, *req.JobID)
		if err != nil {
			return nil, jobError(err)
		}
		jobID, startupID := job.ID, job.StartupID
		event.JobID = &jobID
		event.StartupID = &startupID
	}
	switch {
	case req.StartupID != nil && event.StartupID != nil:
		if *req.StartupID != *event.StartupID {
			return nil, apperrors.ValidationError(map[string]string{"startupId": "Does not match the startup of the job"})
		}
	case req.StartupID != nil:
		startup, err := s.startupRepo.FindByID(db, *req.StartupID)
		if err != nil {
			return nil, startupError(err)
		}
		startupID := startup.ID
		event.StartupID = &startupID
	}

	if len(req.Metadata) > 0 && string(req.Metadata) != "null" {
		var object map[string]interface{}
		if err := json.Unmarshal(req.Metadata, &object); err != nil {
			return nil, apperrors.ValidationError(map[string]string{"metadata": "Must be a JSON object"})
		}
		event.Metadata = datatypes.JSON(req.Metadata)
	}

	if err := s.analyticsRepo.Create(db, event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func (s *analyticsService) StartupAnalytics(ctx context.Context, db *gorm.DB, session *auth.Session, startupIDOrSlug string, days int) (*dto.StartupAnalytics, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	db = db.WithContext(ctx)

	startup, err := s.startupRepo.FindByIDOrSlug(db, startupIDOrSlug)
	if err != nil {
		return nil, startupError(err)
	}
	if err := authorizeStartup(session, startup, auth.PermViewAnalytics); err != nil {
		return nil, err
	}

	days = clampDays(days)
	now := s.now()
	since := windowStart(now, days)

	events, err := s.analyticsRepo.FindForStartup(db, startup.ID, since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobViews, err := s.jobRepo.SumViewsByStartup(db, startup.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := BuildStartupAnalytics(events, days, now)
	result.StartupID = startup.ID
	result.JobViews = jobViews
	return &result, nil
}

// BuildStartupAnalytics aggregates events into exactly days daily buckets
// ending on now's UTC date. Views are view events; every other type counts
// as an interaction. Traffic sources are taken from view events.
func BuildStartupAnalytics(events []models.AnalyticsEvent, days int, now time.Time) dto.StartupAnalytics {
	days = clampDays(days)
	start := windowStart(now, days)

	series := make([]dto.TimeSeriesPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		series[i] = dto.TimeSeriesPoint{Date: date}
		index[date] = i
	}

	result := dto.StartupAnalytics{
		Days:           days,
		TimeSeries:     series,
		TrafficSources: map[string]int{},
	}
	for _, e := range events {
		i, ok := index[e.CreatedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		if e.Type == models.AnalyticsView {
			series[i].Views++
			result.TotalViews++
			result.TrafficSources[trafficSource(e.Metadata)]++
		} else {
			series[i].Interactions++
			result.TotalInteractions++
		}
	}
	return result
}

func trafficSource(metadata datatypes.JSON) string {
	if len(metadata) == 0 {
		return DirectTrafficSource
	}
	var m struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(metadata, &m); err != nil || m.Source == "" {
		return DirectTrafficSource
	}
	return m.Source
}

func clampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultAnalyticsDays
	case days > MaxAnalyticsDays:
		return MaxAnalyticsDays
	}
	return days
}

// windowStart is midnight UTC of the first day of a days-long window ending today.
func windowStart(now time.Time, days int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}
