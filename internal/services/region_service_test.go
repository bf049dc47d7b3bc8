package services

import (
	"context"
	"net/http"
	"testing"

	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRegion_DuplicateNameIsConflict(t *testing.T) {
	regions := regionsWithOslo()
	regions.updateErr = repositories.ErrRegionAlreadyExists
	svc := NewRegionService(regions, nil, nil, nil, nil, nil, nil, RegionServiceConfig{})

	_, err := svc.UpdateRegion(context.Background(), newTestDB(t), "norway", &dto.UpdateRegionRequest{Name: strPtr("Iceland")})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestUpdateRegion_TrimsName(t *testing.T) {
	regions := regionsWithOslo()
	svc := NewRegionService(regions, nil, nil, nil, nil, nil, nil, RegionServiceConfig{})

	summary, err := svc.UpdateRegion(context.Background(), newTestDB(t), "Norway ", &dto.UpdateRegionRequest{Name: strPtr("  Norge ")})
	require.NoError(t, err)
	require.Len(t, regions.updated, 1)
	assert.Equal(t, "Norge", regions.updated[0]["name"])
	assert.Equal(t, "norway", summary.Slug)
}
