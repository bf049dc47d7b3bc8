package services

import (
	"context"
	"errors"
	"strings"

	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// NewsService - permission checks for writes happen in the router
type NewsService interface {
	ListNews(ctx context.Context, db *gorm.DB, query *dto.ContentListQuery, page, pageSize int) (*dto.NewsListResponse, error)
	GetNews(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.News, error)
	CreateNews(ctx context.Context, db *gorm.DB, req *dto.CreateNewsRequest) (*models.News, error)
	UpdateNews(ctx context.Context, db *gorm.DB, idOrSlug string, req *dto.UpdateNewsRequest) (*models.News, error)
	DeleteNews(ctx context.Context, db *gorm.DB, idOrSlug string) error
}

type newsService struct {
	newsRepo   repositories.NewsRepository
	regionRepo repositories.RegionRepository
}

func NewNewsService(newsRepo repositories.NewsRepository, regionRepo repositories.RegionRepository) NewsService {
	return &newsService{
		newsRepo:   newsRepo,
		regionRepo: regionRepo,
	}
}

func (s *newsService) ListNews(ctx context.Context, db *gorm.DB, query *dto.ContentListQuery, page, pageSize int) (*dto.NewsListResponse, error) {
	db = db.WithContext(ctx)

	region, regionText, err := resolveRegionFilter(db, s.regionRepo, query.Region)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items, total, err := s.newsRepo.FindWithFilter(db, repositories.NewsFilter{
		Region:     region,
		RegionText: regionText,
		Tag:        strings.TrimSpace(query.Tag),
		Pagination: repositories.Pagination{Page: page, PageSize: pageSize},
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if items == nil {
		items = []models.News{}
	}

	return &dto.NewsListResponse{
		News:  items,
		Total: total,
		Page:  page,
		Pages: dto.Pages(total, pageSize),
	}, nil
}

func (s *newsService) GetNews(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.News, error) {
	news, err := s.newsRepo.FindByIDOrSlug(db.WithContext(ctx), idOrSlug)
	if err != nil {
		return nil, newsError(err)
	}
	return news, nil
}

func (s *newsService) CreateNews(ctx context.Context, db *gorm.DB, req *dto.CreateNewsRequest) (*models.News, error) {
	db = db.WithContext(ctx)

	if err := checkRegionID(db, s.regionRepo, req.RegionID); err != nil {
		return nil, err
	}

	base := req.Slug
	if base == "" {
		base = Slugify(req.Title)
	}
	slug, err := uniqueSlug(db, base, s.newsRepo.SlugExists)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	news := &models.News{
		Title:     strings.TrimSpace(req.Title),
		Slug:      slug,
		Summary:   req.Summary,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Source:    req.Source,
		SourceURL: req.SourceURL,
		RegionID:  req.RegionID,
		Region:    strings.ToLower(strings.TrimSpace(req.Region)),
		Tags:      stringArray(req.Tags),
	}
	if req.PublishedAt != nil {
		news.PublishedAt = req.PublishedAt.UTC()
	} else {
		news.PublishedAt = utcNow()
	}

	if err := s.newsRepo.Create(db, news); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "News created", "news_id", news.ID, "slug", news.Slug)
	return news, nil
}

func (s *newsService) UpdateNews(ctx context.Context, db *gorm.DB, idOrSlug string, req *dto.UpdateNewsRequest) (*models.News, error) {
	db = db.WithContext(ctx)

	news, err := s.newsRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return nil, newsError(err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Source != nil {
		updates["source"] = *req.Source
	}
	if req.SourceURL != nil {
		updates["source_url"] = *req.SourceURL
	}
	if err := regionIDUpdate(db, s.regionRepo, req.RegionID, updates); err != nil {
		return nil, err
	}
	if req.Region != nil {
		updates["region"] = strings.ToLower(strings.TrimSpace(*req.Region))
	}
	if req.PublishedAt != nil {
		updates["published_at"] = req.PublishedAt.UTC()
	}
	if req.Tags != nil {
		updates["tags"] = stringArray(*req.Tags)
	}

	if err := s.newsRepo.Update(db, news.ID, updates); err != nil {
		return nil, newsError(err)
	}
	return s.GetNews(ctx, db, news.ID)
}

func (s *newsService) DeleteNews(ctx context.Context, db *gorm.DB, idOrSlug string) error {
	db = db.WithContext(ctx)

	news, err := s.newsRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return newsError(err)
	}
	if err := s.newsRepo.Delete(db, news.ID); err != nil {
		return newsError(err)
	}
	return nil
}

func newsError(err error) error {
	if errors.Is(err, repositories.ErrNewsNotFound) {
		return apperrors.ErrNewsNotFound
	}
	return apperrors.InternalError(err)
}
