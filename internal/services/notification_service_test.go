package services

import (
	"context"
	"errors"
	"testing"

	"greentech_backend/internal/email"
	"greentech_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SendWelcome(t *testing.T) {
	provider := &email.MockProvider{}
	svc := NewNotificationService(provider, "https://greentech.example/")

	svc.SendWelcome(context.Background(), &models.User{Name: "Ingrid", Email: "ingrid@example.com"})

	require.Equal(t, 1, provider.TemplateCount())
	sent := provider.Templates[0]
	assert.Equal(t, []string{"ingrid@example.com"}, sent.To)
	assert.Equal(t, email.TemplateWelcome, sent.Template)
	assert.Equal(t, "https://greentech.example", sent.Data["SiteURL"])
}

func TestNotificationService_SendStartupClaimed(t *testing.T) {
	provider := &email.MockProvider{}
	svc := NewNotificationService(provider, "https://greentech.example")

	svc.SendStartupClaimed(context.Background(), "founder@example.com", "Lars",
		&models.Startup{Name: "Fjord Current", Slug: "fjord-current"})

	require.Equal(t, 1, provider.TemplateCount())
	sent := provider.Templates[0]
	assert.Equal(t, "You now manage Fjord Current", sent.Subject)
	assert.Equal(t, email.TemplateStartupClaimed, sent.Template)
	assert.Equal(t, "fjord-current", sent.Data["StartupSlug"])
}

func TestNotificationService_FailuresAreSwallowed(t *testing.T) {
	provider := &email.MockProvider{Err: errors.New("smtp down")}
	svc := NewNotificationService(provider, "")

	assert.NotPanics(t, func() {
		svc.SendWelcome(context.Background(), &models.User{Email: "x@example.com"})
	})
	assert.Zero(t, provider.TemplateCount())
}
