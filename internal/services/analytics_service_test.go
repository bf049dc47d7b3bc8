package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"greentech_backend/internal/models"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func analyticsEvent(kind models.AnalyticsEventType, at time.Time, metadata string) models.AnalyticsEvent {
	e := models.AnalyticsEvent{Type: kind, CreatedAt: at}
	if metadata != "" {
		e.Metadata = datatypes.JSON(metadata)
	}
	return e
}

func TestBuildStartupAnalytics_BucketsEndOnToday(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	result := BuildStartupAnalytics(nil, 7, now)

	require.Len(t, result.TimeSeries, 7)
	assert.Equal(t, "2025-06-04", result.TimeSeries[0].Date)
	assert.Equal(t, "2025-06-10", result.TimeSeries[6].Date)
	assert.Equal(t, 7, result.Days)
	assert.Zero(t, result.TotalViews)
	assert.NotNil(t, result.TrafficSources)
}

func TestBuildStartupAnalytics_CountsViewsAndInteractions(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	today := now.Add(-time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	events := []models.AnalyticsEvent{
		analyticsEvent(models.AnalyticsView, today, `{"source":"linkedin"}`),
		analyticsEvent(models.AnalyticsView, today, ""),
		analyticsEvent(models.AnalyticsView, yesterday, `{"source":"linkedin"}`),
		analyticsEvent(models.AnalyticsClick, today, `{"source":"newsletter"}`),
		analyticsEvent(models.AnalyticsApply, yesterday, ""),
		// outside the window
		analyticsEvent(models.AnalyticsView, now.AddDate(0, 0, -30), ""),
	}

	result := BuildStartupAnalytics(events, 3, now)

	require.Len(t, result.TimeSeries, 3)
	assert.Equal(t, dto.TimeSeriesPoint{Date: "2025-06-08"}, result.TimeSeries[0])
	assert.Equal(t, dto.TimeSeriesPoint{Date: "2025-06-09", Views: 1, Interactions: 1}, result.TimeSeries[1])
	assert.Equal(t, dto.TimeSeriesPoint{Date: "2025-06-10", Views: 2, Interactions: 1}, result.TimeSeries[2])

	assert.Equal(t, 3, result.TotalViews)
	assert.Equal(t, 2, result.TotalInteractions)
	assert.Equal(t, map[string]int{"linkedin": 2, DirectTrafficSource: 1}, result.TrafficSources)
}

func TestBuildStartupAnalytics_ClampsDays(t *testing.T) {
	now := time.Now().UTC()

	assert.Len(t, BuildStartupAnalytics(nil, 0, now).TimeSeries, DefaultAnalyticsDays)
	assert.Len(t, BuildStartupAnalytics(nil, -4, now).TimeSeries, DefaultAnalyticsDays)
	assert.Len(t, BuildStartupAnalytics(nil, 10000, now).TimeSeries, MaxAnalyticsDays)
}

func TestBuildStartupAnalytics_MalformedSourceIsDirect(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	events := []models.AnalyticsEvent{
		analyticsEvent(models.AnalyticsView, now, `{"source":""}`),
		analyticsEvent(models.AnalyticsView, now, `[1,2]`),
	}

	result := BuildStartupAnalytics(events, 1, now)
	assert.Equal(t, map[string]int{DirectTrafficSource: 2}, result.TrafficSources)
}

func TestTrack_RequiresTarget(t *testing.T) {
	svc := NewAnalyticsService(nil, nil, nil)

	_, err := svc.Track(context.Background(), newTestDB(t), &dto.TrackRequest{Type: string(models.AnalyticsView)})
	assert.ErrorIs(t, err, apperrors.ErrAnalyticsTargetRequired)
}

func TestStartupAnalytics_RequiresSession(t *testing.T) {
	svc := NewAnalyticsService(nil, nil, nil)

	_, err := svc.StartupAnalytics(context.Background(), newTestDB(t), nil, "any", 30)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestTrack_StartupMustMatchJob(t *testing.T) {
	const (
		jobID     = "0f2b5a7c-3d1e-4c8a-9b6f-2a4d6e8c0b13"
		startupID = "7c9e1f3a-5b2d-4e6f-8a0c-1d3f5b7e9a24"
		otherID   = "e4a6c8b0-2d4f-4a6c-8e0a-3c5e7a9c1e35"
	)
	jobs := &fakeJobRepo{jobs: map[string]*models.Job{
		jobID: {BaseModel: models.BaseModel{ID: jobID}, StartupID: startupID},
	}}

	t.Run("mismatch", func(t *testing.T) {
		analytics := &fakeAnalyticsRepo{}
		svc := NewAnalyticsService(analytics, newFakeStartupRepo(), jobs)

		_, err := svc.Track(context.Background(), newTestDB(t), &dto.TrackRequest{
			Type:      string(models.AnalyticsApply),
			JobID:     strPtr(jobID),
			StartupID: strPtr(otherID),
		})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
		assert.Empty(t, analytics.created)
	})

	t.Run("match", func(t *testing.T) {
		analytics := &fakeAnalyticsRepo{}
		svc := NewAnalyticsService(analytics, newFakeStartupRepo(), jobs)

		event, err := svc.Track(context.Background(), newTestDB(t), &dto.TrackRequest{
			Type:      string(models.AnalyticsApply),
			JobID:     strPtr(jobID),
			StartupID: strPtr(startupID),
		})
		require.NoError(t, err)
		require.Len(t, analytics.created, 1)
		require.NotNil(t, event.StartupID)
		assert.Equal(t, startupID, *event.StartupID)
	})

	t.Run("job alone fills startup", func(t *testing.T) {
		analytics := &fakeAnalyticsRepo{}
		svc := NewAnalyticsService(analytics, newFakeStartupRepo(), jobs)

		event, err := svc.Track(context.Background(), newTestDB(t), &dto.TrackRequest{
			Type:  string(models.AnalyticsView),
			JobID: strPtr(jobID),
		})
		require.NoError(t, err)
		require.NotNil(t, event.StartupID)
		assert.Equal(t, startupID, *event.StartupID)
	})
}
