package validator

import (
	"log"
	"regexp"
	"strings"
	"time"

	"greentech_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// NordicRegions are the region slugs the directory knows about.
var NordicRegions = []string{"norway", "sweden", "denmark", "finland", "iceland"}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("slug", validateSlug)
	mustRegister("nordic_region", validateNordicRegion)
	mustRegister("founded_year", validateFoundedYear)
	mustRegister("is-job-type", validateJobType)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-location-type", validateLocationType)
	mustRegister("is-experience-level", validateExperienceLevel)
	mustRegister("is-analytics-type", validateAnalyticsType)
}

// Empty values pass every rule below; "required" handles presence.

func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return slugPattern.MatchString(value)
}

func validateNordicRegion(fl validator.FieldLevel) bool {
	value := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	if value == "" {
		return true
	}
	for _, r := range NordicRegions {
		if r == value {
			return true
		}
	}
	return false
}

func validateFoundedYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year >= 1900 && year <= int64(time.Now().Year())
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.JobType(value).Valid()
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.JobStatus(value).Valid()
}

func validateLocationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.LocationType(value).Valid()
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ExperienceLevel(value).Valid()
}

func validateAnalyticsType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.AnalyticsEventType(value).Valid()
}
