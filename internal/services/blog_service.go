package services

import (
	"context"
	"errors"
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// BlogService manages startup blog posts. Drafts are visible only to those
// who may edit the startup.
type BlogService interface {
	ListForStartup(ctx context.Context, db *gorm.DB, session *auth.Session, startupIDOrSlug string) ([]models.BlogPost, error)
	GetBySlug(ctx context.Context, db *gorm.DB, session *auth.Session, slug string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, db *gorm.DB, session *auth.Session, startupIDOrSlug string, req *dto.CreateBlogPostRequest) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, db *gorm.DB, session *auth.Session, postID string, req *dto.UpdateBlogPostRequest) (*models.BlogPost, error)
	DeletePost(ctx context.Context, db *gorm.DB, session *auth.Session, postID string) error
}

type blogService struct {
	blogRepo    repositories.BlogRepository
	startupRepo repositories.StartupRepository
}

func NewBlogService(blogRepo repositories.BlogRepository, startupRepo repositories.StartupRepository) BlogService {
	return &blogService{
		blogRepo:    blogRepo,
		startupRepo: startupRepo,
	}
}

func (s *blogService) ListForStartup(ctx context.Context, db *gorm.DB, session *auth.Session, startupIDOrSlug string) ([]models.BlogPost, error) {
	db = db.WithContext(ctx)

	startup, err := s.startupRepo.FindByIDOrSlug(db, startupIDOrSlug)
	if err != nil {
		return nil, startupError(err)
	}

	includeDrafts := session != nil && authorizeStartup(session, startup, auth.PermEditStartup) == nil
	posts, err := s.blogRepo.FindByStartup(db, startup.ID, includeDrafts)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return nonNil(posts), nil
}

func (s *blogService) GetBySlug(ctx context.Context, db *gorm.DB, session *auth.Session, slug string) (*models.BlogPost, error) {
	post, err := s.blogRepo.FindBySlug(db.WithContext(ctx), slug)
	if err != nil {
		return nil, blogError(err)
	}
	if !post.IsPublished() {
		if post.Startup == nil || session == nil || authorizeStartup(session, post.Startup, auth.PermEditStartup) != nil {
			return nil, apperrors.ErrBlogPostNotFound
		}
	}
	return post, nil
}

func (s *blogService) CreatePost(ctx context.Context, db *gorm.DB, session *auth.Session, startupIDOrSlug string, req *dto.CreateBlogPostRequest) (*models.BlogPost, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	db = db.WithContext(ctx)

	startup, err := s.startupRepo.FindByIDOrSlug(db, startupIDOrSlug)
	if err != nil {
		return nil, startupError(err)
	}
	if err := authorizeStartup(session, startup, auth.PermEditStartup); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(db, Slugify(req.Title), s.blogRepo.SlugExists)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	author := session.UserID
	post := &models.BlogPost{
		StartupID:     startup.ID,
		AuthorID:      &author,
		Title:         strings.TrimSpace(req.Title),
		Slug:          slug,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		Tags:          stringArray(req.Tags),
	}
	if req.Publish {
		now := utcNow()
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Create(db, post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func (s *blogService) UpdatePost(ctx context.Context, db *gorm.DB, session *auth.Session, postID string, req *dto.UpdateBlogPostRequest) (*models.BlogPost, error) {
	db = db.WithContext(ctx)

	post, err := s.authorized(db, session, postID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.Tags != nil {
		updates["tags"] = stringArray(*req.Tags)
	}
	if req.Publish != nil {
		switch {
		case *req.Publish && !post.IsPublished():
			updates["published_at"] = utcNow()
		case !*req.Publish:
			updates["published_at"] = nil
		}
	}

	if err := s.blogRepo.Update(db, post.ID, updates); err != nil {
		return nil, blogError(err)
	}

	updated, err := s.blogRepo.FindByID(db, post.ID)
	if err != nil {
		return nil, blogError(err)
	}
	return updated, nil
}

func (s *blogService) DeletePost(ctx context.Context, db *gorm.DB, session *auth.Session, postID string) error {
	db = db.WithContext(ctx)

	post, err := s.authorized(db, session, postID)
	if err != nil {
		return err
	}
	if err := s.blogRepo.Delete(db, post.ID); err != nil {
		return blogError(err)
	}
	return nil
}

func (s *blogService) authorized(db *gorm.DB, session *auth.Session, postID string) (*models.BlogPost, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	post, err := s.blogRepo.FindByID(db, postID)
	if err != nil {
		return nil, blogError(err)
	}
	startup := post.Startup
	if startup == nil {
		if startup, err = s.startupRepo.FindByID(db, post.StartupID); err != nil {
			return nil, startupError(err)
		}
	}
	if err := authorizeStartup(session, startup, auth.PermEditStartup); err != nil {
		return nil, err
	}
	return post, nil
}

func blogError(err error) error {
	if errors.Is(err, repositories.ErrBlogPostNotFound) {
		return apperrors.ErrBlogPostNotFound
	}
	return apperrors.InternalError(err)
}
