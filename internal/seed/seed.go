// Package seed loads the reference data set (permissions, roles, regions and
// unclaimed startups) from a YAML document. Applying a document twice leaves
// the database unchanged.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/services"

	"github.com/lib/pq"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Document struct {
	Permissions []Permission `yaml:"permissions"`
	Roles       []Role       `yaml:"roles"`
	Regions     []Region     `yaml:"regions"`
	Startups    []Startup    `yaml:"startups"`
}

type Permission struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Role struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Permissions []string `yaml:"permissions"`
}

type Region struct {
	Name            string `yaml:"name"`
	Slug            string `yaml:"slug"`
	Country         string `yaml:"country"`
	Description     string `yaml:"description"`
	ImageURL        string `yaml:"image_url"`
	TotalInvestment string `yaml:"total_investment"`
}

type Startup struct {
	Name             string   `yaml:"name"`
	Slug             string   `yaml:"slug"`
	Region           string   `yaml:"region"`
	Country          string   `yaml:"country"`
	ShortDescription string   `yaml:"short_description"`
	Description      string   `yaml:"description"`
	Website          string   `yaml:"website"`
	FoundedYear      int      `yaml:"founded_year"`
	Employees        string   `yaml:"employees"`
	FundingStage     string   `yaml:"funding_stage"`
	Tags             []string `yaml:"tags"`
}

// Result counts the rows written by Apply.
type Result struct {
	Permissions int
	Roles       int
	Regions     int
	Startups    int
	Skipped     int
}

// Parse decodes and checks a seed document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate rejects documents that would fail half way through Apply.
func (d *Document) Validate() error {
	known := make(map[string]bool, len(auth.AllPermissions)+len(d.Permissions))
	for _, p := range auth.AllPermissions {
		known[p.Name] = true
	}
	for _, p := range d.Permissions {
		if p.Name == "" {
			return errors.New("permission without a name")
		}
		known[p.Name] = true
	}
	for _, r := range d.Roles {
		if r.Name == "" {
			return errors.New("role without a name")
		}
		for _, p := range r.Permissions {
			if !known[p] {
				return fmt.Errorf("role %s: unknown permission %s", r.Name, p)
			}
		}
	}

	regions := make(map[string]bool, len(d.Regions))
	for _, r := range d.Regions {
		slug := strings.ToLower(r.Slug)
		if r.Name == "" || slug == "" {
			return fmt.Errorf("region %q: name and slug are required", r.Name)
		}
		if regions[slug] {
			return fmt.Errorf("region %s listed twice", slug)
		}
		regions[slug] = true
	}

	startups := make(map[string]bool, len(d.Startups))
	for _, s := range d.Startups {
		slug := s.slug()
		if s.Name == "" {
			return errors.New("startup without a name")
		}
		if startups[slug] {
			return fmt.Errorf("startup %s listed twice", slug)
		}
		startups[slug] = true
		if s.Region != "" && !regions[strings.ToLower(s.Region)] {
			return fmt.Errorf("startup %s: region %s is not in the document", slug, s.Region)
		}
	}
	return nil
}

func (s Startup) slug() string {
	if s.Slug != "" {
		return strings.ToLower(s.Slug)
	}
	return services.Slugify(s.Name)
}

type Seeder struct {
	roleService services.RoleService
	roleRepo    repositories.RoleRepository
	regionRepo  repositories.RegionRepository
	startupRepo repositories.StartupRepository
}

func NewSeeder(
	roleService services.RoleService,
	roleRepo repositories.RoleRepository,
	regionRepo repositories.RegionRepository,
	startupRepo repositories.StartupRepository,
) *Seeder {
	return &Seeder{
		roleService: roleService,
		roleRepo:    roleRepo,
		regionRepo:  regionRepo,
		startupRepo: startupRepo,
	}
}

// Apply upserts the document in one transaction. Existing startups are left
// alone so claims and owner edits survive a re-seed.
func (s *Seeder) Apply(ctx context.Context, db *gorm.DB, doc *Document) (*Result, error) {
	result := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.roleService.EnsureDefaults(ctx, tx); err != nil {
			return fmt.Errorf("default roles: %w", err)
		}
		if err := s.applyPermissions(tx, doc.Permissions, result); err != nil {
			return err
		}
		if err := s.applyRoles(tx, doc.Roles, result); err != nil {
			return err
		}
		regionIDs, err := s.applyRegions(tx, doc.Regions, result)
		if err != nil {
			return err
		}
		return s.applyStartups(tx, doc.Startups, regionIDs, result)
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Seed applied",
		"permissions", result.Permissions,
		"roles", result.Roles,
		"regions", result.Regions,
		"startups", result.Startups,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *Seeder) applyPermissions(tx *gorm.DB, permissions []Permission, result *Result) error {
	for _, p := range permissions {
		if err := s.roleRepo.UpsertPermission(tx, &models.Permission{Name: p.Name, Description: p.Description}); err != nil {
			return fmt.Errorf("permission %s: %w", p.Name, err)
		}
		result.Permissions++
	}
	return nil
}

func (s *Seeder) applyRoles(tx *gorm.DB, roles []Role, result *Result) error {
	for _, r := range roles {
		role, err := s.roleRepo.FindRoleByName(tx, r.Name)
		switch {
		case errors.Is(err, repositories.ErrRoleNotFound):
			role = &models.Role{Name: r.Name, Description: r.Description}
			if err := s.roleRepo.CreateRole(tx, role); err != nil {
				return fmt.Errorf("role %s: %w", r.Name, err)
			}
		case err != nil:
			return fmt.Errorf("role %s: %w", r.Name, err)
		default:
			if err := s.roleRepo.UpdateRole(tx, role.ID, map[string]interface{}{"description": r.Description}); err != nil {
				return fmt.Errorf("role %s: %w", r.Name, err)
			}
		}

		permissions, err := s.roleRepo.FindPermissionsByNames(tx, r.Permissions)
		if err != nil {
			return fmt.Errorf("role %s permissions: %w", r.Name, err)
		}
		if err := s.roleRepo.ReplacePermissions(tx, role, permissions); err != nil {
			return fmt.Errorf("role %s permissions: %w", r.Name, err)
		}
		result.Roles++
	}
	return nil
}

func (s *Seeder) applyRegions(tx *gorm.DB, regions []Region, result *Result) (map[string]string, error) {
	ids := make(map[string]string, len(regions))
	for _, r := range regions {
		region := &models.Region{
			Name:        r.Name,
			Slug:        strings.ToLower(r.Slug),
			Country:     r.Country,
			Description: r.Description,
			ImageURL:    r.ImageURL,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "country", "description", "image_url", "updated_at"}),
		}).Create(region).Error
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", region.Slug, err)
		}

		// The upsert does not report the id of an existing row.
		stored, err := s.regionRepo.FindBySlug(tx, region.Slug)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", region.Slug, err)
		}
		ids[stored.Slug] = stored.ID

		if r.TotalInvestment != "" {
			if err := s.regionRepo.SetTotalInvestment(tx, stored.ID, r.TotalInvestment); err != nil {
				return nil, fmt.Errorf("region %s investment: %w", region.Slug, err)
			}
		}
		result.Regions++
	}
	return ids, nil
}

func (s *Seeder) applyStartups(tx *gorm.DB, startups []Startup, regionIDs map[string]string, result *Result) error {
	for _, st := range startups {
		slug := st.slug()
		exists, err := s.startupRepo.SlugExists(tx, slug)
		if err != nil {
			return fmt.Errorf("startup %s: %w", slug, err)
		}
		if exists {
			result.Skipped++
			continue
		}

		startup := &models.Startup{
			Name:             st.Name,
			Slug:             slug,
			Country:          st.Country,
			ShortDescription: st.ShortDescription,
			Description:      st.Description,
			Website:          st.Website,
			Employees:        st.Employees,
			FundingStage:     st.FundingStage,
			Tags:             pq.StringArray(st.Tags),
		}
		if id, ok := regionIDs[strings.ToLower(st.Region)]; ok {
			startup.RegionID = &id
		}
		if st.FoundedYear > 0 {
			year := st.FoundedYear
			startup.FoundedYear = &year
		}
		if err := s.startupRepo.Create(tx, startup); err != nil {
			return fmt.Errorf("startup %s: %w", slug, err)
		}
		result.Startups++
	}
	return nil
}
