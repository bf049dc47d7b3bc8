package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/cache"
	"greentech_backend/internal/config"
	"greentech_backend/internal/database"
	"greentech_backend/internal/email"
	"greentech_backend/internal/handlers"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/middleware"
	"greentech_backend/internal/repositories"
	"greentech_backend/internal/routes"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"
	"greentech_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Env)
	defer logger.Sync()
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.OpenAndMigrate(cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	defer database.Close(gormDB)
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := initializeServices(ctx, cfg)
	defer func() {
		if err := container.EmailService.Close(); err != nil {
			logger.Warn("Failed to close email provider", "error", err)
		}
	}()

	if err := seedFirstAdmin(ctx, gormDB, cfg, container); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      SetupRouter(cfg, gormDB, container),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}

// SetupRouter wires handlers onto a fresh gin engine. The integration tests
// build their server through it as well.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, container *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(cfg, container)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, routes.SessionConfig{
		Tokens:     container.Tokens,
		CookieName: cfg.Session.CookieName,
	})
	return ginRouter
}

// NewServiceContainer builds every service with its infrastructure. Redis and
// SMTP are optional; without them the region cache is disabled and mail is
// only logged.
func NewServiceContainer(ctx context.Context, cfg *config.Config) *services.ServiceContainer {
	return initializeServices(ctx, cfg)
}

func initializeServices(ctx context.Context, cfg *config.Config) *services.ServiceContainer {
	regionCache := initializeCache(ctx, cfg)
	emailProvider := initializeEmail(cfg)
	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)

	// --- Repositories ---
	userRepo := repositories.NewUserRepository()
	roleRepo := repositories.NewRoleRepository()
	startupRepo := repositories.NewStartupRepository()
	jobRepo := repositories.NewJobRepository()
	newsRepo := repositories.NewNewsRepository()
	eventRepo := repositories.NewEventRepository()
	blogRepo := repositories.NewBlogRepository()
	regionRepo := repositories.NewRegionRepository()
	statsRepo := repositories.NewRegionStatsRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()

	// --- Services ---
	notificationService := services.NewNotificationService(emailProvider, cfg.Email.SiteURL)
	authService := services.NewAuthService(userRepo, roleRepo, tokens, notificationService)
	userService := services.NewUserService(userRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo, userRepo)
	startupService := services.NewStartupService(startupRepo, regionRepo, notificationService)
	jobService := services.NewJobService(jobRepo, startupRepo, analyticsRepo)
	newsService := services.NewNewsService(newsRepo, regionRepo)
	eventService := services.NewEventService(eventRepo, regionRepo)
	blogService := services.NewBlogService(blogRepo, startupRepo)
	regionService := services.NewRegionService(regionRepo, statsRepo, startupRepo, newsRepo, eventRepo, jobRepo, regionCache,
		services.RegionServiceConfig{
			CacheTTL:   cfg.Redis.TTL,
			StaleAfter: cfg.Stats.StaleAfter,
		})
	regionStatsService := services.NewRegionStatsService(statsRepo, regionCache)
	analyticsService := services.NewAnalyticsService(analyticsRepo, startupRepo, jobRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		RoleService:         roleService,
		StartupService:      startupService,
		JobService:          jobService,
		NewsService:         newsService,
		EventService:        eventService,
		BlogService:         blogService,
		RegionService:       regionService,
		RegionStatsService:  regionStatsService,
		AnalyticsService:    analyticsService,
		NotificationService: notificationService,
		EmailService:        emailProvider,
		Tokens:              tokens,
	}
}

func initializeCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, region cache is off")
		return cache.Noop{}
	}
	redisCache, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, region cache is off", "error", err)
		return cache.Noop{}
	}
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	return redisCache
}

func initializeEmail(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email disabled, messages are only logged")
		return email.LogProvider{}
	}

	smtpConfig := email.DefaultConfig()
	smtpConfig.Host = cfg.Email.SMTPHost
	smtpConfig.Port = cfg.Email.SMTPPort
	smtpConfig.Username = cfg.Email.SMTPUsername
	smtpConfig.Password = cfg.Email.SMTPPassword
	smtpConfig.FromEmail = cfg.Email.FromEmail
	smtpConfig.FromName = cfg.Email.FromName

	provider := email.NewSMTPProvider(smtpConfig, email.NewDefaultTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("Invalid SMTP configuration, messages are only logged", "error", err)
		return email.LogProvider{}
	}
	return provider
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	cookie := handlers.SessionCookie{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.Secure,
		TTL:    cfg.Session.TTL,
	}

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, container.AuthService, cookie),
		UserHandler:      handlers.NewUserHandler(baseHandler, container.UserService),
		RoleHandler:      handlers.NewRoleHandler(baseHandler, container.RoleService),
		StartupHandler:   handlers.NewStartupHandler(baseHandler, container.StartupService),
		JobHandler:       handlers.NewJobHandler(baseHandler, container.JobService),
		NewsHandler:      handlers.NewNewsHandler(baseHandler, container.NewsService),
		EventHandler:     handlers.NewEventHandler(baseHandler, container.EventService),
		RegionHandler:    handlers.NewRegionHandler(baseHandler, container.RegionService),
		BlogHandler:      handlers.NewBlogHandler(baseHandler, container.BlogService),
		AnalyticsHandler: handlers.NewAnalyticsHandler(baseHandler, container.AnalyticsService),
		CronHandler:      handlers.NewCronHandler(baseHandler, container.RegionStatsService, cfg.Cron.Secret),
		HealthHandler:    handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin makes sure the built-in permissions and roles exist and that
// the configured admin account holds the ADMIN role. It runs in one transaction.
func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, container *services.ServiceContainer) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole, err := container.RoleService.EnsureDefaults(ctx, tx)
		if err != nil {
			return fmt.Errorf("ensure default roles: %w", err)
		}

		if adminEmail == "" || adminPassword == "" {
			logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
			return nil
		}

		existing, err := repositories.NewUserRepository().FindByEmail(tx, adminEmail)
		switch {
		case err == nil:
			if existing.RoleID != nil && *existing.RoleID == adminRole.ID {
				logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
				return nil
			}
			logger.Warn("Existing admin account had no ADMIN role, restoring it", "email", adminEmail)
			_, err = container.UserService.UpdateUserRole(ctx, tx, existing.ID, &dto.UpdateUserRoleRequest{RoleID: &adminRole.ID})
			return err
		case !errors.Is(err, repositories.ErrUserNotFound):
			return fmt.Errorf("check for admin user: %w", err)
		}

		name := cfg.Admin.Name
		if name == "" {
			name = "Administrator"
		}
		if _, err := container.UserService.CreateUser(ctx, tx, &dto.CreateUserRequest{
			Name:     name,
			Email:    adminEmail,
			Password: adminPassword,
			RoleID:   &adminRole.ID,
		}); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail)
		return nil
	})
}
