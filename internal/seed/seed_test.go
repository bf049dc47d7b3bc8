package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `
permissions:
  - name: PUBLISH_REPORTS
    description: Publish quarterly reports
roles:
  - name: EDITOR
    description: Newsroom editor
    permissions: [CREATE_NEWS, EDIT_NEWS, PUBLISH_REPORTS]
regions:
  - name: Norway
    slug: Norway
    country: NO
    total_investment: "EUR 1.2B"
startups:
  - name: Aurora Wind
    region: norway
    founded_year: 2021
    employees: "11-50"
    tags: [wind, offshore]
`

func TestParse_ValidDocument(t *testing.T) {
	doc, err := Parse([]byte(validDocument))
	require.NoError(t, err)

	require.Len(t, doc.Roles, 1)
	assert.Equal(t, []string{"CREATE_NEWS", "EDIT_NEWS", "PUBLISH_REPORTS"}, doc.Roles[0].Permissions)
	require.Len(t, doc.Regions, 1)
	assert.Equal(t, "EUR 1.2B", doc.Regions[0].TotalInvestment)
	require.Len(t, doc.Startups, 1)
	assert.Equal(t, "aurora-wind", doc.Startups[0].slug())
	assert.Equal(t, []string{"wind", "offshore"}, doc.Startups[0].Tags)
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "regionz: []"},
		{"unknown permission", "roles:\n  - name: EDITOR\n    permissions: [FLY]"},
		{"region without slug", "regions:\n  - name: Norway"},
		{"duplicate region", "regions:\n  - {name: Norway, slug: norway}\n  - {name: Norge, slug: NORWAY}"},
		{"startup in unknown region", "startups:\n  - {name: Aurora, region: mars}"},
		{"duplicate startup", "startups:\n  - {name: Aurora Wind}\n  - {name: Aurora, slug: aurora-wind}"},
		{"startup without name", "startups:\n  - {slug: nameless}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
