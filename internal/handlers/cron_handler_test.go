package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStatsService struct {
	allCalls    int
	regionCalls []string
	result      *dto.RefreshResult
	err         error
}

func (f *fakeStatsService) RefreshAll(_ context.Context, _ *gorm.DB) (*dto.RefreshResult, error) {
	f.allCalls++
	return f.result, f.err
}

func (f *fakeStatsService) RefreshRegion(_ context.Context, _ *gorm.DB, slug string) (*dto.RefreshResult, error) {
	f.regionCalls = append(f.regionCalls, slug)
	return f.result, f.err
}

func serveCron(t *testing.T, stats *fakeStatsService, secret, query string) *httptest.ResponseRecorder {
	t.Helper()
	router, _ := newTestRouter(t)
	NewCronHandler(newTestBase(), stats, secret).RegisterRoutes(router.Group("/api"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cron/update-region-stats"+query, nil))
	return w
}

func TestCronHandler_RejectsBadKeys(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		query  string
	}{
		{"missing key", "s3cret", ""},
		{"wrong key", "s3cret", "?key=guess"},
		{"prefix of the secret", "s3cret", "?key=s3c"},
		{"no secret configured", "", "?key="},
		{"no secret configured with a key", "", "?key=anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &fakeStatsService{result: &dto.RefreshResult{Success: true}}
			w := serveCron(t, stats, tt.secret, tt.query)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
			assert.Zero(t, stats.allCalls)
			assert.Empty(t, stats.regionCalls)
		})
	}
}

func TestCronHandler_RefreshesAllRegions(t *testing.T) {
	stats := &fakeStatsService{result: &dto.RefreshResult{Success: true, Updated: 5, Failed: []string{}}}
	w := serveCron(t, stats, "s3cret", "?key=s3cret")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stats.allCalls)
	assert.Empty(t, stats.regionCalls)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(5), body["updated"])
	assert.Equal(t, []any{}, body["failed"])
	assert.Equal(t, "Region stats updated for 5 region(s)", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCronHandler_RefreshesOneRegion(t *testing.T) {
	stats := &fakeStatsService{result: &dto.RefreshResult{Success: true, Updated: 1, Failed: []string{}}}
	w := serveCron(t, stats, "s3cret", "?key=s3cret&region=norway")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, stats.allCalls)
	assert.Equal(t, []string{"norway"}, stats.regionCalls)
}

func TestCronHandler_ReportsPartialFailure(t *testing.T) {
	stats := &fakeStatsService{result: &dto.RefreshResult{Success: true, Updated: 4, Failed: []string{"iceland"}}}
	w := serveCron(t, stats, "s3cret", "?key=s3cret")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []any{"iceland"}, body["failed"])
	assert.Equal(t, "Region stats updated for 4 region(s), 1 failed", body["message"])
}

func TestCronHandler_MapsServiceErrors(t *testing.T) {
	t.Run("unknown region", func(t *testing.T) {
		stats := &fakeStatsService{err: apperrors.ErrRegionNotFound}
		w := serveCron(t, stats, "s3cret", "?key=s3cret&region=atlantis")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		stats := &fakeStatsService{err: errors.New("connection reset")}
		w := serveCron(t, stats, "s3cret", "?key=s3cret")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
