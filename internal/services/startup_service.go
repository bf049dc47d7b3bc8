package services

import (
	"context"
	"errors"
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type StartupService interface {
	ListStartups(ctx context.Context, db *gorm.DB, query *dto.StartupListQuery, page, pageSize int) (*dto.StartupListResponse, error)
	GetStartup(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.Startup, error)
	ListMyStartups(ctx context.Context, db *gorm.DB, session *auth.Session) ([]models.Startup, error)
	CreateStartup(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateStartupRequest) (*models.Startup, error)
	UpdateStartup(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string, req *dto.UpdateStartupRequest) (*models.Startup, error)
	DeleteStartup(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string) error
	ClaimStartup(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string) (*models.Startup, error)

	// Team
	AddTeamMember(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string, req *dto.TeamMemberRequest) (*models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug, memberID string, req *dto.UpdateTeamMemberRequest) (*models.TeamMember, error)
	DeleteTeamMember(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug, memberID string) error

	// Gallery
	AddGalleryImage(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string, req *dto.GalleryImageRequest) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug, imageID string) error
}

type startupService struct {
	startupRepo   repositories.StartupRepository
	regionRepo    repositories.RegionRepository
	notifications NotificationService
}

func NewStartupService(
	startupRepo repositories.StartupRepository,
	regionRepo repositories.RegionRepository,
	notifications NotificationService,
) StartupService {
	return &startupService{
		startupRepo:   startupRepo,
		regionRepo:    regionRepo,
		notifications: notifications,
	}
}

// ---------------- Reads ----------------

func (s *startupService) ListStartups(ctx context.Context, db *gorm.DB, query *dto.StartupListQuery, page, pageSize int) (*dto.StartupListResponse, error) {
	db = db.WithContext(ctx)

	empty := &dto.StartupListResponse{Startups: []models.Startup{}, Page: page}

	filter := repositories.StartupFilter{
		Country:    strings.TrimSpace(query.Country),
		Tag:        strings.TrimSpace(query.Tag),
		Search:     strings.TrimSpace(query.Search),
		Pagination: repositories.Pagination{Page: page, PageSize: pageSize},
	}
	if query.Claimed != "" {
		claimed := query.Claimed == "true"
		filter.Claimed = &claimed
	}
	if slug := strings.ToLower(strings.TrimSpace(query.Region)); slug != "" {
		region, err := s.regionRepo.FindBySlug(db, slug)
		if err != nil {
			if errors.Is(err, repositories.ErrRegionNotFound) {
				return empty, nil
			}
			return nil, apperrors.InternalError(err)
		}
		filter.Region = region
	}

	startups, total, err := s.startupRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if startups == nil {
		startups = []models.Startup{}
	}

	return &dto.StartupListResponse{
		Startups: startups,
		Total:    total,
		Page:     page,
		Pages:    dto.Pages(total, pageSize),
	}, nil
}

func (s *startupService) GetStartup(ctx context.Context, db *gorm.DB, idOrSlug string) (*models.Startup, error) {
	startup, err := s.startupRepo.FindDetail(db.WithContext(ctx), idOrSlug)
	if err != nil {
		return nil, startupError(err)
	}
	return startup, nil
}

func (s *startupService) ListMyStartups(ctx context.Context, db *gorm.DB, session *auth.Session) ([]models.Startup, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	startups, err := s.startupRepo.FindByOwner(db.WithContext(ctx), session.UserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if startups == nil {
		startups = []models.Startup{}
	}
	return startups, nil
}

// ---------------- Writes ----------------

func (s *startupService) CreateStartup(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateStartupRequest) (*models.Startup, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	if !session.Can(auth.PermCreateStartup) {
		return nil, apperrors.ErrInsufficientPermissions.WithDetails(map[string]string{"required": auth.PermCreateStartup})
	}
	db = db.WithContext(ctx)

	if err := checkRegionID(db, s.regionRepo, req.RegionID); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(db, Slugify(req.Name), s.startupRepo.SlugExists)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	owner := session.UserID
	startup := &models.Startup{
		Name:             strings.TrimSpace(req.Name),
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		LogoURL:          req.LogoURL,
		ProfileImageURL:  req.ProfileImageURL,
		Website:          req.Website,
		Country:          strings.TrimSpace(req.Country),
		RegionID:         req.RegionID,
		FoundedYear:      req.FoundedYear,
		FundingStage:     req.FundingStage,
		FundingAmount:    req.FundingAmount,
		Employees:        strings.TrimSpace(req.Employees),
		Tags:             stringArray(req.Tags),
		UserID:           &owner,
	}
	if err := s.startupRepo.Create(db, startup); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Startup created", "startup_id", startup.ID, "slug", startup.Slug)
	return startup, nil
}

func (s *startupService) UpdateStartup(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string, req *dto.UpdateStartupRequest) (*models.Startup, error) {
	db = db.WithContext(ctx)

	startup, err := s.authorized(db, session, idOrSlug, auth.PermEditStartup)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = strings.TrimSpace(*v)
		}
	}
	setString("name", req.Name)
	setString("short_description", req.ShortDescription)
	setString("logo_url", req.LogoURL)
	setString("profile_image_url", req.ProfileImageURL)
	setString("website", req.Website)
	setString("country", req.Country)
	setString("funding_stage", req.FundingStage)
	setString("funding_amount", req.FundingAmount)
	setString("employees", req.Employees)
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := regionIDUpdate(db, s.regionRepo, req.RegionID, updates); err != nil {
		return nil, err
	}
	if req.FoundedYear != nil {
		updates["founded_year"] = *req.FoundedYear
	}
	if req.Tags != nil {
		updates["tags"] = stringArray(*req.Tags)
	}

	if err := s.startupRepo.Update(db, startup.ID, updates); err != nil {
		return nil, startupError(err)
	}
	return s.GetStartup(ctx, db, startup.ID)
}

func (s *startupService) DeleteStartup(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		startup, err := s.authorized(tx, session, idOrSlug, auth.PermDeleteStartup)
		if err != nil {
			return err
		}
		if err := s.startupRepo.DeleteCascade(tx, startup.ID); err != nil {
			return startupError(err)
		}
		logger.CtxInfo(ctx, "Startup deleted", "startup_id", startup.ID, "by", session.UserID)
		return nil
	})
}

func (s *startupService) ClaimStartup(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string) (*models.Startup, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	db = db.WithContext(ctx)

	startup, err := s.startupRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return nil, startupError(err)
	}

	if err := s.startupRepo.Claim(db, startup.ID, session.UserID); err != nil {
		return nil, startupError(err)
	}
	owner := session.UserID
	startup.UserID = &owner

	logger.CtxInfo(ctx, "Startup claimed", "startup_id", startup.ID, "user_id", session.UserID)
	s.notifications.SendStartupClaimed(ctx, session.Email, session.Name, startup)

	return startup, nil
}

// ---------------- Team ----------------

func (s *startupService) AddTeamMember(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string, req *dto.TeamMemberRequest) (*models.TeamMember, error) {
	db = db.WithContext(ctx)

	startup, err := s.authorized(db, session, idOrSlug, auth.PermEditStartup)
	if err != nil {
		return nil, err
	}

	member := &models.TeamMember{
		StartupID:   startup.ID,
		Name:        strings.TrimSpace(req.Name),
		Role:        req.Role,
		Bio:         req.Bio,
		ImageURL:    req.ImageURL,
		LinkedInURL: req.LinkedInURL,
	}
	if err := s.startupRepo.CreateTeamMember(db, member); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return member, nil
}

func (s *startupService) UpdateTeamMember(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug, memberID string, req *dto.UpdateTeamMemberRequest) (*models.TeamMember, error) {
	db = db.WithContext(ctx)

	startup, err := s.authorized(db, session, idOrSlug, auth.PermEditStartup)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.LinkedInURL != nil {
		updates["linkedin_url"] = *req.LinkedInURL
	}

	if err := s.startupRepo.UpdateTeamMember(db, startup.ID, memberID, updates); err != nil {
		return nil, startupError(err)
	}
	member, err := s.startupRepo.FindTeamMember(db, startup.ID, memberID)
	if err != nil {
		return nil, startupError(err)
	}
	return member, nil
}

func (s *startupService) DeleteTeamMember(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug, memberID string) error {
	db = db.WithContext(ctx)

	startup, err := s.authorized(db, session, idOrSlug, auth.PermEditStartup)
	if err != nil {
		return err
	}
	if err := s.startupRepo.DeleteTeamMember(db, startup.ID, memberID); err != nil {
		return startupError(err)
	}
	return nil
}

// ---------------- Gallery ----------------

func (s *startupService) AddGalleryImage(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug string, req *dto.GalleryImageRequest) (*models.GalleryImage, error) {
	db = db.WithContext(ctx)

	startup, err := s.authorized(db, session, idOrSlug, auth.PermEditStartup)
	if err != nil {
		return nil, err
	}

	image := &models.GalleryImage{
		StartupID: startup.ID,
		URL:       req.URL,
		Caption:   req.Caption,
		SortOrder: req.SortOrder,
	}
	if err := s.startupRepo.CreateGalleryImage(db, image); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return image, nil
}

func (s *startupService) DeleteGalleryImage(ctx context.Context, db *gorm.DB, session *auth.Session, idOrSlug, imageID string) error {
	db = db.WithContext(ctx)

	startup, err := s.authorized(db, session, idOrSlug, auth.PermEditStartup)
	if err != nil {
		return err
	}
	if err := s.startupRepo.DeleteGalleryImage(db, startup.ID, imageID); err != nil {
		return startupError(err)
	}
	return nil
}

// ---------------- Helpers ----------------

// authorized loads the startup and checks the caller may act on it.
func (s *startupService) authorized(db *gorm.DB, session *auth.Session, idOrSlug, permission string) (*models.Startup, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	startup, err := s.startupRepo.FindByIDOrSlug(db, idOrSlug)
	if err != nil {
		return nil, startupError(err)
	}
	if err := authorizeStartup(session, startup, permission); err != nil {
		return nil, err
	}
	return startup, nil
}

func startupError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrStartupNotFound):
		return apperrors.ErrStartupNotFound
	case errors.Is(err, repositories.ErrStartupAlreadyClaimed):
		return apperrors.ErrStartupAlreadyClaimed
	case errors.Is(err, repositories.ErrTeamMemberNotFound):
		return apperrors.ErrTeamMemberNotFound
	case errors.Is(err, repositories.ErrGalleryImageNotFound):
		return apperrors.ErrGalleryImageNotFound
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
