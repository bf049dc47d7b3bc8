package services

import (
	"context"
	"strings"

	"greentech_backend/internal/email"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/models"
)

// NotificationService sends transactional emails. Delivery is best-effort:
// failures are logged and never returned to the caller.
type NotificationService interface {
	SendWelcome(ctx context.Context, user *models.User)
	SendStartupClaimed(ctx context.Context, to, name string, startup *models.Startup)
}

type notificationService struct {
	provider email.Provider
	siteURL  string
}

func NewNotificationService(provider email.Provider, siteURL string) NotificationService {
	if provider == nil {
		provider = email.LogProvider{}
	}
	return &notificationService{
		provider: provider,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
	}
}

func (s *notificationService) SendWelcome(ctx context.Context, user *models.User) {
	data := email.TemplateData{
		"Name":    user.Name,
		"SiteURL": s.siteURL,
	}
	if err := s.provider.SendTemplate([]string{user.Email}, "Welcome to GreenTech Nordics", email.TemplateWelcome, data); err != nil {
		logger.CtxWithError(ctx, "Failed to send welcome email", err, "user_id", user.ID)
	}
}

func (s *notificationService) SendStartupClaimed(ctx context.Context, to, name string, startup *models.Startup) {
	data := email.TemplateData{
		"Name":        name,
		"SiteURL":     s.siteURL,
		"StartupName": startup.Name,
		"StartupSlug": startup.Slug,
	}
	if err := s.provider.SendTemplate([]string{to}, "You now manage "+startup.Name, email.TemplateStartupClaimed, data); err != nil {
		logger.CtxWithError(ctx, "Failed to send claim email", err, "startup_id", startup.ID)
	}
}
