package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	ListJobs(ctx context.Context, db *gorm.DB, query *dto.JobListQuery, page, pageSize int) (*dto.JobListResponse, error)
	// GetJob counts a view before returning the job.
	GetJob(ctx context.Context, db *gorm.DB, jobID string) (*models.Job, error)
	CreateJob(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string) error
	Apply(ctx context.Context, db *gorm.DB, jobID string, req *dto.ApplyRequest) (*models.Job, error)
}

type jobService struct {
	jobRepo       repositories.JobRepository
	startupRepo   repositories.StartupRepository
	analyticsRepo repositories.AnalyticsRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	startupRepo repositories.StartupRepository,
	analyticsRepo repositories.AnalyticsRepository,
) JobService {
	return &jobService{
		jobRepo:       jobRepo,
		startupRepo:   startupRepo,
		analyticsRepo: analyticsRepo,
	}
}

func (s *jobService) ListJobs(ctx context.Context, db *gorm.DB, query *dto.JobListQuery, page, pageSize int) (*dto.JobListResponse, error) {
	status := query.Status
	if status == "" {
		status = string(models.JobStatusActive)
	}

	jobs, total, err := s.jobRepo.FindWithFilter(db.WithContext(ctx), repositories.JobFilter{
		StartupID:       query.StartupID,
		Type:            query.Type,
		ExperienceLevel: query.ExperienceLevel,
		Country:         strings.TrimSpace(query.Country),
		Status:          status,
		Search:          strings.TrimSpace(query.Search),
		Pagination:      repositories.Pagination{Page: page, PageSize: pageSize},
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	return &dto.JobListResponse{
		Jobs:  jobs,
		Total: total,
		Page:  page,
		Pages: dto.Pages(total, pageSize),
	}, nil
}

func (s *jobService) GetJob(ctx context.Context, db *gorm.DB, jobID string) (*models.Job, error) {
	db = db.WithContext(ctx)

	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, jobError(err)
	}

	if err := s.jobRepo.IncrementViews(db, job.ID); err != nil {
		logger.CtxWithError(ctx, "Failed to count job view", err, "job_id", job.ID)
	} else {
		job.Views++
	}
	return job, nil
}

func (s *jobService) CreateJob(ctx context.Context, db *gorm.DB, session *auth.Session, req *dto.CreateJobRequest) (*models.Job, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	db = db.WithContext(ctx)

	startup, err := s.startupRepo.FindByID(db, req.StartupID)
	if err != nil {
		return nil, startupError(err)
	}
	if err := authorizeStartup(session, startup, auth.PermCreateJob); err != nil {
		return nil, err
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, apperrors.ErrInvalidSalaryRange
	}

	status := models.JobStatus(req.Status)
	if status == "" {
		status = models.JobStatusActive
	}

	job := &models.Job{
		StartupID:        startup.ID,
		Title:            strings.TrimSpace(req.Title),
		Type:             models.JobType(req.Type),
		ExperienceLevel:  models.ExperienceLevel(req.ExperienceLevel),
		LocationType:     models.LocationType(req.LocationType),
		LocationCity:     req.LocationCity,
		LocationCountry:  req.LocationCountry,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryCurrency:   strings.ToUpper(req.SalaryCurrency),
		Description:      req.Description,
		Requirements:     stringArray(req.Requirements),
		Responsibilities: stringArray(req.Responsibilities),
		Skills:           stringArray(req.Skills),
		Status:           status,
	}
	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Job created", "job_id", job.ID, "startup_id", startup.ID)
	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	db = db.WithContext(ctx)

	job, err := s.authorized(db, session, jobID, auth.PermEditJob)
	if err != nil {
		return nil, err
	}

	salaryMin, salaryMax := job.SalaryMin, job.SalaryMax
	if req.SalaryMin != nil {
		salaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		salaryMax = req.SalaryMax
	}
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return nil, apperrors.ErrInvalidSalaryRange
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.ExperienceLevel != nil {
		updates["experience_level"] = *req.ExperienceLevel
	}
	if req.LocationType != nil {
		updates["location_type"] = *req.LocationType
	}
	if req.LocationCity != nil {
		updates["location_city"] = *req.LocationCity
	}
	if req.LocationCountry != nil {
		updates["location_country"] = *req.LocationCountry
	}
	if req.SalaryMin != nil {
		updates["salary_min"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		updates["salary_max"] = *req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		updates["salary_currency"] = strings.ToUpper(*req.SalaryCurrency)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Requirements != nil {
		updates["requirements"] = stringArray(*req.Requirements)
	}
	if req.Responsibilities != nil {
		updates["responsibilities"] = stringArray(*req.Responsibilities)
	}
	if req.Skills != nil {
		updates["skills"] = stringArray(*req.Skills)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := s.jobRepo.Update(db, job.ID, updates); err != nil {
		return nil, jobError(err)
	}

	updated, err := s.jobRepo.FindByID(db, job.ID)
	if err != nil {
		return nil, jobError(err)
	}
	return updated, nil
}

func (s *jobService) DeleteJob(ctx context.Context, db *gorm.DB, session *auth.Session, jobID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := s.authorized(tx, session, jobID, auth.PermDeleteJob)
		if err != nil {
			return err
		}
		if err := s.jobRepo.Delete(tx, job.ID); err != nil {
			return jobError(err)
		}
		return nil
	})
}

// Apply records an application on an active job. The counter and the
// analytics event are written together.
func (s *jobService) Apply(ctx context.Context, db *gorm.DB, jobID string, req *dto.ApplyRequest) (*models.Job, error) {
	var job *models.Job
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		job, err = s.jobRepo.FindByID(tx, jobID)
		if err != nil {
			return jobError(err)
		}
		if !job.IsActive() {
			return apperrors.ErrJobNotActive.WithDetails(map[string]string{"status": string(job.Status)})
		}

		if err := s.jobRepo.IncrementApplications(tx, job.ID); err != nil {
			return jobError(err)
		}

		var metadata datatypes.JSON
		if req != nil && req.Source != "" {
			raw, err := json.Marshal(map[string]string{"source": req.Source})
			if err != nil {
				return apperrors.InternalError(err)
			}
			metadata = raw
		}
		startupID, id := job.StartupID, job.ID
		event := &models.AnalyticsEvent{
			Type:      models.AnalyticsApply,
			StartupID: &startupID,
			JobID:     &id,
			Metadata:  metadata,
		}
		if err := s.analyticsRepo.Create(tx, event); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	job.Applications++
	return job, nil
}

func (s *jobService) authorized(db *gorm.DB, session *auth.Session, jobID, permission string) (*models.Job, error) {
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, jobError(err)
	}

	startup := job.Startup
	if startup == nil {
		if startup, err = s.startupRepo.FindByID(db, job.StartupID); err != nil {
			return nil, startupError(err)
		}
	}
	if err := authorizeStartup(session, startup, permission); err != nil {
		return nil, err
	}
	return job, nil
}

func jobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
