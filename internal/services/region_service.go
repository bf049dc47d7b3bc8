package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"greentech_backend/internal/cache"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Section sizes of the region landing page.
const (
	RegionPageStartups = 12
	RegionPageNews     = 6
	RegionPageEvents   = 6
	RegionPageJobs     = 10
)

type RegionService interface {
	ListRegions(ctx context.Context, db *gorm.DB) ([]dto.RegionSummary, error)
	GetRegionPage(ctx context.Context, db *gorm.DB, slug string) (*dto.RegionPage, error)
	CreateRegion(ctx context.Context, db *gorm.DB, req *dto.CreateRegionRequest) (*dto.RegionSummary, error)
	UpdateRegion(ctx context.Context, db *gorm.DB, slug string, req *dto.UpdateRegionRequest) (*dto.RegionSummary, error)
	SetTotalInvestment(ctx context.Context, db *gorm.DB, slug string, req *dto.UpdateInvestmentRequest) (*dto.StatsView, error)

	AddInitiative(ctx context.Context, db *gorm.DB, slug string, req *dto.InitiativeRequest) (*models.RegionInitiative, error)
	DeleteInitiative(ctx context.Context, db *gorm.DB, slug, initiativeID string) error
	AddPartner(ctx context.Context, db *gorm.DB, slug string, req *dto.PartnerRequest) (*models.EcosystemPartner, error)
	DeletePartner(ctx context.Context, db *gorm.DB, slug, partnerID string) error
}

// RegionServiceConfig carries the cache and freshness settings.
type RegionServiceConfig struct {
	CacheTTL   time.Duration
	StaleAfter time.Duration
}

type regionService struct {
	regionRepo  repositories.RegionRepository
	statsRepo   repositories.RegionStatsRepository
	startupRepo repositories.StartupRepository
	newsRepo    repositories.NewsRepository
	eventRepo   repositories.EventRepository
	jobRepo     repositories.JobRepository
	cache       cache.Cache
	cfg         RegionServiceConfig
	now         func() time.Time
}

func NewRegionService(
	regionRepo repositories.RegionRepository,
	statsRepo repositories.RegionStatsRepository,
	startupRepo repositories.StartupRepository,
	newsRepo repositories.NewsRepository,
	eventRepo repositories.EventRepository,
	jobRepo repositories.JobRepository,
	c cache.Cache,
	cfg RegionServiceConfig,
) RegionService {
	if c == nil {
		c = cache.Noop{}
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 24 * time.Hour
	}
	return &regionService{
		regionRepo:  regionRepo,
		statsRepo:   statsRepo,
		startupRepo: startupRepo,
		newsRepo:    newsRepo,
		eventRepo:   eventRepo,
		jobRepo:     jobRepo,
		cache:       c,
		cfg:         cfg,
		now:         utcNow,
	}
}

// ---------------- Reads ----------------

func (s *regionService) ListRegions(ctx context.Context, db *gorm.DB) ([]dto.RegionSummary, error) {
	var cached []dto.RegionSummary
	if s.cacheGet(ctx, cache.RegionListKey, &cached) {
		return s.restamp(cached), nil
	}

	regions, err := s.regionRepo.ListWithStats(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.RegionSummary, 0, len(regions))
	for i := range regions {
		summaries = append(summaries, s.summary(&regions[i]))
	}

	s.cacheSet(ctx, cache.RegionListKey, summaries)
	return summaries, nil
}

// GetRegionPage loads the region and its four content sections concurrently.
func (s *regionService) GetRegionPage(ctx context.Context, db *gorm.DB, slug string) (*dto.RegionPage, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	key := cache.RegionPageKey(slug)

	var cached dto.RegionPage
	if s.cacheGet(ctx, key, &cached) {
		cached.Region.Stats = s.restampView(cached.Region.Stats)
		return &cached, nil
	}

	region, err := s.regionRepo.FindDetailBySlug(db.WithContext(ctx), slug)
	if err != nil {
		return nil, regionError(err)
	}

	page := &dto.RegionPage{
		Region:      s.summary(region),
		Initiatives: nonNil(region.Initiatives),
		Partners:    nonNil(region.Partners),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startups, err := s.startupRepo.FindByRegion(db.WithContext(gctx), region, RegionPageStartups)
		page.Startups = nonNil(startups)
		return err
	})
	g.Go(func() error {
		news, err := s.newsRepo.FindLatestByRegion(db.WithContext(gctx), region, RegionPageNews)
		page.News = nonNil(news)
		return err
	})
	g.Go(func() error {
		events, err := s.eventRepo.FindUpcomingByRegion(db.WithContext(gctx), region, s.now(), RegionPageEvents)
		page.Events = nonNil(events)
		return err
	})
	g.Go(func() error {
		jobs, err := s.jobRepo.FindActiveByRegion(db.WithContext(gctx), region, RegionPageJobs)
		page.Jobs = nonNil(jobs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.cacheSet(ctx, key, page)
	return page, nil
}

// ---------------- Writes ----------------

func (s *regionService) CreateRegion(ctx context.Context, db *gorm.DB, req *dto.CreateRegionRequest) (*dto.RegionSummary, error) {
	region := &models.Region{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.ToLower(strings.TrimSpace(req.Slug)),
		Country:     req.Country,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.regionRepo.Create(db.WithContext(ctx), region); err != nil {
		return nil, regionError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)
	logger.CtxInfo(ctx, "Region created", "region", region.Slug)

	summary := s.summary(region)
	return &summary, nil
}

func (s *regionService) UpdateRegion(ctx context.Context, db *gorm.DB, slug string, req *dto.UpdateRegionRequest) (*dto.RegionSummary, error) {
	db = db.WithContext(ctx)

	region, err := s.findRegion(db, slug)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if err := s.regionRepo.Update(db, region.ID, updates); err != nil {
		return nil, regionError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)

	updated, err := s.regionRepo.FindDetailBySlug(db, region.Slug)
	if err != nil {
		return nil, regionError(err)
	}
	summary := s.summary(updated)
	return &summary, nil
}

func (s *regionService) SetTotalInvestment(ctx context.Context, db *gorm.DB, slug string, req *dto.UpdateInvestmentRequest) (*dto.StatsView, error) {
	db = db.WithContext(ctx)

	region, err := s.findRegion(db, slug)
	if err != nil {
		return nil, err
	}
	if err := s.regionRepo.SetTotalInvestment(db, region.ID, strings.TrimSpace(req.TotalInvestment)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)

	stats, err := s.statsRepo.FindStats(db, region.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	view := dto.NewStatsView(stats, s.now(), s.cfg.StaleAfter)
	return &view, nil
}

func (s *regionService) AddInitiative(ctx context.Context, db *gorm.DB, slug string, req *dto.InitiativeRequest) (*models.RegionInitiative, error) {
	db = db.WithContext(ctx)

	region, err := s.findRegion(db, slug)
	if err != nil {
		return nil, err
	}
	initiative := &models.RegionInitiative{
		RegionID:    region.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		URL:         req.URL,
	}
	if err := s.regionRepo.CreateInitiative(db, initiative); err != nil {
		return nil, apperrors.InternalError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)
	return initiative, nil
}

func (s *regionService) DeleteInitiative(ctx context.Context, db *gorm.DB, slug, initiativeID string) error {
	db = db.WithContext(ctx)

	region, err := s.findRegion(db, slug)
	if err != nil {
		return err
	}
	if err := s.regionRepo.DeleteInitiative(db, region.ID, initiativeID); err != nil {
		return regionError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)
	return nil
}

func (s *regionService) AddPartner(ctx context.Context, db *gorm.DB, slug string, req *dto.PartnerRequest) (*models.EcosystemPartner, error) {
	db = db.WithContext(ctx)

	region, err := s.findRegion(db, slug)
	if err != nil {
		return nil, err
	}
	partner := &models.EcosystemPartner{
		RegionID: region.ID,
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		LogoURL:  req.LogoURL,
		Website:  req.Website,
	}
	if err := s.regionRepo.CreatePartner(db, partner); err != nil {
		return nil, apperrors.InternalError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)
	return partner, nil
}

func (s *regionService) DeletePartner(ctx context.Context, db *gorm.DB, slug, partnerID string) error {
	db = db.WithContext(ctx)

	region, err := s.findRegion(db, slug)
	if err != nil {
		return err
	}
	if err := s.regionRepo.DeletePartner(db, region.ID, partnerID); err != nil {
		return regionError(err)
	}

	invalidateRegionCache(ctx, s.cache, region.Slug)
	return nil
}

// ---------------- Helpers ----------------

func (s *regionService) findRegion(db *gorm.DB, slug string) (*models.Region, error) {
	region, err := s.regionRepo.FindBySlug(db, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, regionError(err)
	}
	return region, nil
}

func (s *regionService) summary(r *models.Region) dto.RegionSummary {
	return dto.RegionSummary{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Country:     r.Country,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Stats:       dto.NewStatsView(r.Stats, s.now(), s.cfg.StaleAfter),
	}
}

// restamp recomputes isStale on cached summaries; the flag depends on the
// read time, not the time the entry was cached.
func (s *regionService) restamp(summaries []dto.RegionSummary) []dto.RegionSummary {
	for i := range summaries {
		summaries[i].Stats = s.restampView(summaries[i].Stats)
	}
	return summaries
}

func (s *regionService) restampView(view dto.StatsView) dto.StatsView {
	view.IsStale = view.RefreshedAt == nil || s.now().Sub(*view.RefreshedAt) > s.cfg.StaleAfter
	return view
}

func (s *regionService) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.CtxWithError(ctx, "Region cache read failed", err, "key", key)
		return false
	}
	return found
}

func (s *regionService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		logger.CtxWithError(ctx, "Region cache write failed", err, "key", key)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func regionError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrRegionNotFound):
		return apperrors.ErrRegionNotFound
	case errors.Is(err, repositories.ErrRegionAlreadyExists):
		return apperrors.ErrRegionAlreadyExists
	case errors.Is(err, repositories.ErrInitiativeNotFound):
		return apperrors.ErrInitiativeNotFound
	case errors.Is(err, repositories.ErrPartnerNotFound):
		return apperrors.ErrPartnerNotFound
	}
	return apperrors.InternalError(err)
}
