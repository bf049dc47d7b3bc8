package auth

// Permission names. They are seeded into the permissions table and carried in sessions.
const (
	PermSiteAdmin = "SITE_ADMIN"
	PermViewJobs  = "VIEW_JOBS"

	PermCreateStartup = "CREATE_STARTUP"
	PermEditStartup   = "EDIT_STARTUP"
	PermDeleteStartup = "DELETE_STARTUP"

	PermCreateJob = "CREATE_JOB"
	PermEditJob   = "EDIT_JOB"
	PermDeleteJob = "DELETE_JOB"

	PermCreateNews = "CREATE_NEWS"
	PermEditNews   = "EDIT_NEWS"
	PermDeleteNews = "DELETE_NEWS"

	PermCreateEvent = "CREATE_EVENT"
	PermEditEvent   = "EDIT_EVENT"
	PermDeleteEvent = "DELETE_EVENT"

	PermManageRegions = "MANAGE_REGIONS"
	PermManageRoles   = "MANAGE_ROLES"
	PermManageUsers   = "MANAGE_USERS"
	PermViewAnalytics = "VIEW_ANALYTICS"
)

// AllPermissions lists every known permission with a description, in seed order.
var AllPermissions = []struct {
	Name        string
	Description string
}{
	{PermSiteAdmin, "Full administrative access"},
	{PermViewJobs, "View job listings"},
	{PermCreateStartup, "Create startups"},
	{PermEditStartup, "Edit any startup"},
	{PermDeleteStartup, "Delete any startup"},
	{PermCreateJob, "Create jobs for any startup"},
	{PermEditJob, "Edit any job"},
	{PermDeleteJob, "Delete any job"},
	{PermCreateNews, "Create news"},
	{PermEditNews, "Edit news"},
	{PermDeleteNews, "Delete news"},
	{PermCreateEvent, "Create events"},
	{PermEditEvent, "Edit events"},
	{PermDeleteEvent, "Delete events"},
	{PermManageRegions, "Manage regions, investment figures, initiatives and partners"},
	{PermManageRoles, "Manage roles and permissions"},
	{PermManageUsers, "Manage users"},
	{PermViewAnalytics, "View analytics of any startup"},
}

// PermissionNames returns the names from AllPermissions.
func PermissionNames() []string {
	names := make([]string, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		names = append(names, p.Name)
	}
	return names
}

// IsKnownPermission reports whether name is one of the constants above.
func IsKnownPermission(name string) bool {
	return HasPermission(PermissionNames(), name)
}

// HasPermission reports whether required is an element of held.
// Exact, case-sensitive match; no wildcards, no hierarchy.
func HasPermission(held []string, required string) bool {
	for _, p := range held {
		if p == required {
			return true
		}
	}
	return false
}
