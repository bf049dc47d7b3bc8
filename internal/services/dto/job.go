package dto

import "greentech_backend/internal/models"

// JobListQuery - status defaults to active when empty
type JobListQuery struct {
	StartupID       string `form:"startupId" validate:"omitempty,uuid"`
	Type            string `form:"type" validate:"omitempty,is-job-type"`
	ExperienceLevel string `form:"experienceLevel" validate:"omitempty,is-experience-level"`
	Country         string `form:"country" validate:"omitempty,max=100"`
	Status          string `form:"status" validate:"omitempty,is-job-status"`
	Search          string `form:"search" validate:"omitempty,max=100"`
}

type CreateJobRequest struct {
	StartupID        string   `json:"startupId" validate:"required,uuid"`
	Title            string   `json:"title" validate:"required,max=200"`
	Type             string   `json:"type" validate:"required,is-job-type"`
	ExperienceLevel  string   `json:"experienceLevel" validate:"omitempty,is-experience-level"`
	LocationType     string   `json:"locationType" validate:"omitempty,is-location-type"`
	LocationCity     string   `json:"locationCity" validate:"max=100"`
	LocationCountry  string   `json:"locationCountry" validate:"max=100"`
	SalaryMin        *int     `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax        *int     `json:"salaryMax" validate:"omitempty,min=0"`
	SalaryCurrency   string   `json:"salaryCurrency" validate:"omitempty,len=3"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Skills           []string `json:"skills"`
	Status           string   `json:"status" validate:"omitempty,is-job-status"`
}

type UpdateJobRequest struct {
	Title            *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Type             *string   `json:"type" validate:"omitempty,is-job-type"`
	ExperienceLevel  *string   `json:"experienceLevel" validate:"omitempty,is-experience-level"`
	LocationType     *string   `json:"locationType" validate:"omitempty,is-location-type"`
	LocationCity     *string   `json:"locationCity" validate:"omitempty,max=100"`
	LocationCountry  *string   `json:"locationCountry" validate:"omitempty,max=100"`
	SalaryMin        *int      `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax        *int      `json:"salaryMax" validate:"omitempty,min=0"`
	SalaryCurrency   *string   `json:"salaryCurrency" validate:"omitempty,len=3"`
	Description      *string   `json:"description"`
	Requirements     *[]string `json:"requirements"`
	Responsibilities *[]string `json:"responsibilities"`
	Skills           *[]string `json:"skills"`
	Status           *string   `json:"status" validate:"omitempty,is-job-status"`
}

// ApplyRequest - optional metadata recorded on the apply analytics event
type ApplyRequest struct {
	Source string `json:"source" validate:"max=100"`
}

type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}
