package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"greentech_backend/internal/cache"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RegionStatsService recomputes the cached per-region aggregates. Runs are not
// locked against each other; the upsert makes overlapping runs harmless.
type RegionStatsService interface {
	RefreshAll(ctx context.Context, db *gorm.DB) (*dto.RefreshResult, error)
	RefreshRegion(ctx context.Context, db *gorm.DB, slug string) (*dto.RefreshResult, error)
}

type regionStatsService struct {
	repo  repositories.RegionStatsRepository
	cache cache.Cache
	now   func() time.Time
}

func NewRegionStatsService(repo repositories.RegionStatsRepository, c cache.Cache) RegionStatsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &regionStatsService{
		repo:  repo,
		cache: c,
		now:   utcNow,
	}
}

// ParseEmployeeCount reads the leading decimal integer of the trimmed value:
// "10" is 10, "11-50" is 11, and anything not starting with a digit is 0.
func ParseEmployeeCount(value string) int {
	value = strings.TrimSpace(value)
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return n
}

func (s *regionStatsService) RefreshAll(ctx context.Context, db *gorm.DB) (*dto.RefreshResult, error) {
	db = db.WithContext(ctx)

	regions, err := s.repo.ListRegions(db)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("list regions: %w", err))
	}

	result := &dto.RefreshResult{Failed: []string{}}
	slugs := make([]string, 0, len(regions))
	for i := range regions {
		region := &regions[i]
		slugs = append(slugs, region.Slug)
		if err := s.refresh(db, region); err != nil {
			logger.CtxWithError(ctx, "Region stats refresh failed", err, "region", region.Slug)
			result.Failed = append(result.Failed, region.Slug)
			continue
		}
		result.Updated++
	}
	result.Success = len(regions) == 0 || result.Updated > 0

	invalidateRegionCache(ctx, s.cache, slugs...)

	logger.CtxInfo(ctx, "Region stats refreshed",
		"regions", len(regions),
		"updated", result.Updated,
		"failed", len(result.Failed),
	)
	return result, nil
}

func (s *regionStatsService) RefreshRegion(ctx context.Context, db *gorm.DB, slug string) (*dto.RefreshResult, error) {
	db = db.WithContext(ctx)
	slug = strings.ToLower(strings.TrimSpace(slug))

	region, err := s.repo.FindRegionBySlug(db, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrRegionNotFound) {
			return nil, apperrors.ErrRegionNotFound.WithDetails(map[string]string{"region": slug})
		}
		return nil, apperrors.InternalError(err)
	}

	result := &dto.RefreshResult{Failed: []string{}}
	if err := s.refresh(db, region); err != nil {
		logger.CtxWithError(ctx, "Region stats refresh failed", err, "region", region.Slug)
		result.Failed = append(result.Failed, region.Slug)
	} else {
		result.Updated = 1
		result.Success = true
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)
	return result, nil
}

// refresh computes the four counts for one region and stores them. The
// investment figure is curated by hand and left untouched.
func (s *regionStatsService) refresh(db *gorm.DB, region *models.Region) error {
	employeeValues, err := s.repo.StartupEmployeeValues(db, region)
	if err != nil {
		return fmt.Errorf("startups: %w", err)
	}

	counts := repositories.RegionCounts{Startups: len(employeeValues)}
	for _, v := range employeeValues {
		counts.Employees += ParseEmployeeCount(v)
	}

	jobs, err := s.repo.CountActiveJobs(db, region)
	if err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	counts.Jobs = int(jobs)

	now := s.now()
	events, err := s.repo.CountUpcomingEvents(db, region, now)
	if err != nil {
		return fmt.Errorf("events: %w", err)
	}
	counts.Events = int(events)

	if err := s.repo.UpsertCounts(db, region.ID, counts, now); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}
