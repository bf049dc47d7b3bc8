package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Email       string  `json:"email" validate:"required,email"`
	Slug        string  `json:"slug" validate:"omitempty,slug"`
	Region      string  `json:"region" validate:"omitempty,nordic_region"`
	FoundedYear *int    `json:"foundedYear" validate:"omitempty,founded_year"`
	JobType     string  `json:"type" validate:"omitempty,is-job-type"`
	Website     *string `json:"website" validate:"omitempty,url"`
}

func TestValidate_OK(t *testing.T) {
	year := 2019
	v := New()
	err := v.Validate(&sampleRequest{
		Name:        "Aurora Wind",
		Email:       "team@aurora.no",
		Slug:        "aurora-wind",
		Region:      "Norway",
		FoundedYear: &year,
		JobType:     "full-time",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	year := 1850
	v := New()
	err := v.Validate(&sampleRequest{
		Name:        "A",
		Email:       "not-an-email",
		Slug:        "Bad Slug",
		Region:      "germany",
		FoundedYear: &year,
		JobType:     "gig",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "name")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "slug")
	assert.Contains(t, vErr.Errors, "region")
	assert.Contains(t, vErr.Errors, "foundedYear")
	assert.Contains(t, vErr.Errors, "type")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
}
