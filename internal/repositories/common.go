package repositories

import (
	"strings"

	"greentech_backend/internal/models"

	"gorm.io/gorm"
)

// Pagination is 1-based.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

func paginate(db *gorm.DB, p Pagination) *gorm.DB {
	if p.PageSize <= 0 {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.PageSize)
}

// RegionLegacyNames are the lower-cased strings a legacy free-text country or
// region column must equal to belong to r: its slug and its name.
func RegionLegacyNames(r *models.Region) []string {
	slug := strings.ToLower(strings.TrimSpace(r.Slug))
	name := strings.ToLower(strings.TrimSpace(r.Name))
	if slug == name {
		return []string{slug}
	}
	return []string{slug, name}
}

// startupsInRegion matches startups by reference or by the legacy country string.
func startupsInRegion(db *gorm.DB, r *models.Region) *gorm.DB {
	return db.Where("startups.region_id = ? OR lower(startups.country) IN ?", r.ID, RegionLegacyNames(r))
}

// activeJobsInRegion matches active jobs whose startup is in the region or whose
// location country names it.
func activeJobsInRegion(db *gorm.DB, r *models.Region) *gorm.DB {
	startupIDs := startupsInRegion(db.Session(&gorm.Session{NewDB: true}).Model(&models.Startup{}), r).Select("startups.id")
	return db.Where("jobs.status = ?", models.JobStatusActive).
		Where("jobs.startup_id IN (?) OR lower(jobs.location_country) IN ?", startupIDs, RegionLegacyNames(r))
}

// contentInRegion matches news and events by reference or by the legacy region string.
func contentInRegion(db *gorm.DB, table string, r *models.Region) *gorm.DB {
	return db.Where(table+".region_id = ? OR lower("+table+".region) IN ?", r.ID, RegionLegacyNames(r))
}

func likePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
