package routes

import (
	"greentech_backend/internal/auth"
	"greentech_backend/internal/handlers"
	"greentech_backend/internal/logger"
	"greentech_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SessionConfig tells the session middleware where to find the token.
type SessionConfig struct {
	Tokens     *auth.TokenManager
	CookieName string
}

// RegisterRoutes mounts the health check, swagger UI and the /api tree. Every
// /api route runs the optional session middleware; handlers add
// RequireSession or RequirePermission where needed.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	session SessionConfig,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api")
	api.Use(middleware.SessionMiddleware(session.Tokens, session.CookieName))
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.RoleHandler.RegisterRoutes(api)
		appHandlers.StartupHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.NewsHandler.RegisterRoutes(api)
		appHandlers.EventHandler.RegisterRoutes(api)
		appHandlers.RegionHandler.RegisterRoutes(api)
		appHandlers.BlogHandler.RegisterRoutes(api)
		appHandlers.AnalyticsHandler.RegisterRoutes(api)
		appHandlers.CronHandler.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
