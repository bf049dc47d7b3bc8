package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	RoleHandler      *RoleHandler
	StartupHandler   *StartupHandler
	JobHandler       *JobHandler
	NewsHandler      *NewsHandler
	EventHandler     *EventHandler
	RegionHandler    *RegionHandler
	BlogHandler      *BlogHandler
	AnalyticsHandler *AnalyticsHandler
	CronHandler      *CronHandler
	HealthHandler    *HealthHandler
}
