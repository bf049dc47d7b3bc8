package dto

import (
	"time"

	"greentech_backend/internal/models"
)

type CreateRegionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug,nordic_region"`
	Country     string `json:"country" validate:"max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateRegionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateInvestmentRequest - the only way total investment is ever written
type UpdateInvestmentRequest struct {
	TotalInvestment string `json:"totalInvestment" validate:"required,max=100"`
}

type InitiativeRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
}

type PartnerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Type    string `json:"type" validate:"max=100"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
	Website string `json:"website" validate:"omitempty,url"`
}

// StatsView is the read model of a region's cached statistics.
type StatsView struct {
	Startups        int        `json:"startups"`
	Employees       int        `json:"employees"`
	Jobs            int        `json:"jobs"`
	Events          int        `json:"events"`
	TotalInvestment string     `json:"totalInvestment"`
	RefreshedAt     *time.Time `json:"refreshedAt"`
	IsStale         bool       `json:"isStale"`
}

// NewStatsView never substitutes live counts for missing ones; a region
// without a stats row reads as zeros flagged stale.
func NewStatsView(stats *models.RegionStats, now time.Time, staleAfter time.Duration) StatsView {
	view := StatsView{IsStale: stats.IsStale(now, staleAfter)}
	if stats == nil {
		return view
	}
	view.Startups = stats.Startups
	view.Employees = stats.Employees
	view.Jobs = stats.Jobs
	view.Events = stats.Events
	view.TotalInvestment = stats.TotalInvestment
	view.RefreshedAt = stats.RefreshedAt
	return view
}

type RegionSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Stats       StatsView `json:"stats"`
}

// RegionPage is everything the region landing page renders.
type RegionPage struct {
	Region      RegionSummary             `json:"region"`
	Initiatives []models.RegionInitiative `json:"initiatives"`
	Partners    []models.EcosystemPartner `json:"partners"`
	Startups    []models.Startup          `json:"startups"`
	News        []models.News             `json:"news"`
	Events      []models.Event            `json:"events"`
	Jobs        []models.Job              `json:"jobs"`
}

// RefreshResult - success is false only when regions exist and all of them failed
type RefreshResult struct {
	Success bool     `json:"success"`
	Updated int      `json:"updated"`
	Failed  []string `json:"failed"`
}

// CronRefreshResponse is the body of a successful cron trigger.
type CronRefreshResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Updated   int       `json:"updated"`
	Failed    []string  `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}
