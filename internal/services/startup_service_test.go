package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/models"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStartup(id, slug string, owner *string) models.Startup {
	return models.Startup{BaseModel: models.BaseModel{ID: id}, Name: slug, Slug: slug, UserID: owner}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Aurora Wind":          "aurora-wind",
		"  Hydro   Power AS  ": "hydro-power-as",
		"Ørsted & Co.":         "orsted-co",
		"Ålborg Æble":          "alborg-aeble",
		"Malmö Vätgas":         "malmo-vatgas",
		"Þórshöfn Orka":        "thorshofn-orka",
		"Suomen Tuulivoima Oy": "suomen-tuulivoima-oy",
		"2050 Carbon-Zero!!":   "2050-carbon-zero",
		"***":                  "item",
		"":                     "item",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestAuthorizeStartup(t *testing.T) {
	owner := "user-1"
	startup := testStartup("s-1", "aurora", &owner)

	assert.ErrorIs(t, authorizeStartup(nil, &startup, auth.PermEditStartup), apperrors.ErrNotAuthenticated)
	assert.NoError(t, authorizeStartup(&auth.Session{UserID: owner}, &startup, auth.PermEditStartup))
	assert.NoError(t, authorizeStartup(&auth.Session{UserID: "admin", Permissions: []string{auth.PermEditStartup}}, &startup, auth.PermEditStartup))

	err := authorizeStartup(&auth.Session{UserID: "someone-else"}, &startup, auth.PermEditStartup)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestClaimStartup(t *testing.T) {
	repo := newFakeStartupRepo(testStartup("s-1", "aurora", nil))
	notifications := &recordingNotifications{}
	svc := NewStartupService(repo, nil, notifications)
	session := &auth.Session{UserID: "user-1", Email: "founder@example.com", Name: "Founder"}

	startup, err := svc.ClaimStartup(context.Background(), newTestDB(t), session, "aurora")
	require.NoError(t, err)

	require.NotNil(t, startup.UserID)
	assert.Equal(t, "user-1", *startup.UserID)
	assert.Equal(t, []string{"s-1"}, repo.claimed)
	assert.Equal(t, []string{"founder@example.com:aurora"}, notifications.claimed)
}

func TestClaimStartup_AlreadyClaimed(t *testing.T) {
	owner := "user-1"
	repo := newFakeStartupRepo(testStartup("s-1", "aurora", &owner))
	notifications := &recordingNotifications{}
	svc := NewStartupService(repo, nil, notifications)

	_, err := svc.ClaimStartup(context.Background(), newTestDB(t), &auth.Session{UserID: "user-2"}, "s-1")

	assert.ErrorIs(t, err, apperrors.ErrStartupAlreadyClaimed)
	assert.Empty(t, notifications.claimed)
	assert.Equal(t, "user-1", *repo.startups["s-1"].UserID)
}

func TestClaimStartup_Unknown(t *testing.T) {
	svc := NewStartupService(newFakeStartupRepo(), nil, &recordingNotifications{})

	_, err := svc.ClaimStartup(context.Background(), newTestDB(t), &auth.Session{UserID: "user-1"}, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrStartupNotFound)
}

func TestClaimStartup_RequiresSession(t *testing.T) {
	svc := NewStartupService(newFakeStartupRepo(), nil, &recordingNotifications{})

	_, err := svc.ClaimStartup(context.Background(), newTestDB(t), nil, "aurora")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestListStartups_UnknownRegionIsEmpty(t *testing.T) {
	regions := &fakeRegionRepo{bySlug: map[string]*models.Region{}}
	svc := NewStartupService(newFakeStartupRepo(), regions, &recordingNotifications{})

	resp, err := svc.ListStartups(context.Background(), newTestDB(t), &dto.StartupListQuery{Region: "atlantis"}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, resp.Startups)
	assert.NotNil(t, resp.Startups)
	assert.Zero(t, resp.Total)
}

func TestCreateStartup_UsesUniqueSlugAndOwner(t *testing.T) {
	repo := newFakeStartupRepo(testStartup("s-1", "aurora-wind", nil))
	svc := NewStartupService(repo, nil, &recordingNotifications{})

	session := &auth.Session{UserID: "user-9", Permissions: []string{auth.PermCreateStartup}}
	startup, err := svc.CreateStartup(context.Background(), newTestDB(t), session, &dto.CreateStartupRequest{
		Name: "Aurora Wind",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "aurora-wind", startup.Slug)
	assert.Regexp(t, `^aurora-wind-[0-9a-f]{8}$`, startup.Slug)
	require.NotNil(t, startup.UserID)
	assert.Equal(t, "user-9", *startup.UserID)
	assert.Len(t, repo.created, 1)
}

func TestCreateStartup_RequiresCreatePermission(t *testing.T) {
	repo := newFakeStartupRepo()
	svc := NewStartupService(repo, nil, &recordingNotifications{})

	_, err := svc.CreateStartup(context.Background(), newTestDB(t), &auth.Session{UserID: "user-9"}, &dto.CreateStartupRequest{
		Name: "Aurora Wind",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
	assert.Empty(t, repo.created)
}

const osloRegionID = "5b0e8a4e-8d7c-4f4e-9a51-0c1f6d2b7a10"

func regionsWithOslo() *fakeRegionRepo {
	return &fakeRegionRepo{bySlug: map[string]*models.Region{
		"norway": {BaseModel: models.BaseModel{ID: osloRegionID}, Name: "Norway", Slug: "norway"},
	}}
}

func TestCreateStartup_ChecksRegionExists(t *testing.T) {
	session := &auth.Session{UserID: "user-9", Permissions: []string{auth.PermCreateStartup}}

	t.Run("unknown region", func(t *testing.T) {
		repo := newFakeStartupRepo()
		svc := NewStartupService(repo, regionsWithOslo(), &recordingNotifications{})

		_, err := svc.CreateStartup(context.Background(), newTestDB(t), session, &dto.CreateStartupRequest{
			Name:     "Aurora Wind",
			RegionID: strPtr("9d6f3c52-1111-4a2b-8c3d-4e5f6a7b8c9d"),
		})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
		assert.Empty(t, repo.created)
	})

	t.Run("known region", func(t *testing.T) {
		repo := newFakeStartupRepo()
		svc := NewStartupService(repo, regionsWithOslo(), &recordingNotifications{})

		startup, err := svc.CreateStartup(context.Background(), newTestDB(t), session, &dto.CreateStartupRequest{
			Name:     "Aurora Wind",
			RegionID: strPtr(osloRegionID),
		})
		require.NoError(t, err)
		require.NotNil(t, startup.RegionID)
		assert.Equal(t, osloRegionID, *startup.RegionID)
	})
}

func TestUpdateStartup_RegionID(t *testing.T) {
	owner := "user-1"
	session := &auth.Session{UserID: owner}

	cases := []struct {
		name      string
		body      string
		wantCode  int
		wantValue interface{}
		wantSet   bool
	}{
		{name: "absent leaves region", body: `{"name":"Aurora"}`},
		{name: "null clears region", body: `{"regionId":null}`, wantSet: true, wantValue: nil},
		{name: "known region is set", body: `{"regionId":"` + osloRegionID + `"}`, wantSet: true, wantValue: osloRegionID},
		{name: "unknown region", body: `{"regionId":"9d6f3c52-1111-4a2b-8c3d-4e5f6a7b8c9d"}`, wantCode: http.StatusBadRequest},
		{name: "malformed region", body: `{"regionId":""}`, wantCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeStartupRepo(testStartup("s-1", "aurora", &owner))
			svc := NewStartupService(repo, regionsWithOslo(), &recordingNotifications{})

			var req dto.UpdateStartupRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))

			_, err := svc.UpdateStartup(context.Background(), newTestDB(t), session, "aurora", &req)
			if tc.wantCode != 0 {
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tc.wantCode, appErr.HTTPCode)
				assert.Empty(t, repo.updates)
				return
			}
			require.NoError(t, err)
			require.Len(t, repo.updates, 1)
			value, set := repo.updates[0]["region_id"]
			assert.Equal(t, tc.wantSet, set)
			if tc.wantSet {
				if tc.wantValue == nil {
					assert.Nil(t, value)
				} else {
					assert.Equal(t, tc.wantValue, value)
				}
			}
		})
	}
}
