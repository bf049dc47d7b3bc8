package services

import (
	"context"
	"net/http"
	"testing"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob_RejectsInvertedSalaryRange(t *testing.T) {
	owner := "user-1"
	startups := newFakeStartupRepo(testStartup("s-1", "aurora", &owner))
	svc := NewJobService(nil, startups, nil)

	_, err := svc.CreateJob(context.Background(), newTestDB(t), &auth.Session{UserID: owner}, &dto.CreateJobRequest{
		StartupID: "s-1",
		Title:     "Grid engineer",
		Type:      "full-time",
		SalaryMin: intPtr(90000),
		SalaryMax: intPtr(60000),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSalaryRange)
}

func TestCreateJob_RequiresOwnershipOrPermission(t *testing.T) {
	owner := "user-1"
	startups := newFakeStartupRepo(testStartup("s-1", "aurora", &owner))
	svc := NewJobService(nil, startups, nil)

	_, err := svc.CreateJob(context.Background(), newTestDB(t), &auth.Session{UserID: "user-2"}, &dto.CreateJobRequest{
		StartupID: "s-1",
		Title:     "Grid engineer",
		Type:      "full-time",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestCreateJob_UnknownStartup(t *testing.T) {
	svc := NewJobService(nil, newFakeStartupRepo(), nil)

	_, err := svc.CreateJob(context.Background(), newTestDB(t), &auth.Session{UserID: "user-1"}, &dto.CreateJobRequest{
		StartupID: "s-404",
		Title:     "Grid engineer",
		Type:      "full-time",
	})
	assert.ErrorIs(t, err, apperrors.ErrStartupNotFound)
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	svc := NewUserService(nil, nil)

	err := svc.DeleteUser(context.Background(), newTestDB(t), &auth.Session{UserID: "admin-1"}, "admin-1")
	assert.ErrorIs(t, err, apperrors.ErrCannotModifySelf)
}
