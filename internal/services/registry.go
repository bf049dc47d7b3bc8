package services

import (
	"greentech_backend/internal/auth"
	"greentech_backend/internal/email"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	RoleService         RoleService
	StartupService      StartupService
	JobService          JobService
	NewsService         NewsService
	EventService        EventService
	BlogService         BlogService
	RegionService       RegionService
	RegionStatsService  RegionStatsService
	AnalyticsService    AnalyticsService
	NotificationService NotificationService
	EmailService        email.Provider
	Tokens              *auth.TokenManager
}
