package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_Render(t *testing.T) {
	tm := NewDefaultTemplateManager()

	out, err := tm.Render(TemplateStartupClaimed, TemplateData{
		"Name":        "Ingrid",
		"StartupName": "Aurora <Wind>",
		"StartupSlug": "aurora-wind",
		"SiteURL":     "https://greentechnordics.com",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Aurora &lt;Wind&gt;")
	assert.Contains(t, out, "https://greentechnordics.com/startups/aurora-wind")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "no-reply@example.com"}, nil)
	assert.NoError(t, p.Validate())
	assert.Error(t, p.SendTemplate([]string{"a@example.com"}, "hi", TemplateWelcome, nil))
}
