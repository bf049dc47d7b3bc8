package apperrors

import (
	"net/http"
)

/*
Predefined domain errors. Services return these directly; repositories keep
their own sentinel errors which services translate.
*/

// ErrNotFound wraps a repository "not found" error into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation into a 409.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- auth ---

var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)

var ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid or expired session", http.StatusUnauthorized)

var ErrNotAuthenticated = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)

var ErrInsufficientPermissions = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)

var ErrInvalidCronKey = New(CodeInvalidCronKey, "cron", "Unauthorized", http.StatusUnauthorized)

// --- users & roles ---

var ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already in use", http.StatusConflict)

var ErrWeakPassword = New(CodeValidationFailed, "validation", "Password must be at least 8 characters long", http.StatusBadRequest)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

var ErrCannotModifySelf = New(CodeInvalidOperation, "user", "Operation on your own account is not allowed", http.StatusBadRequest)

var ErrRoleNotFound = New(CodeNotFound, "role", "Role not found", http.StatusNotFound)

var ErrRoleInUse = New(CodeConflict, "role", "Role is still assigned to users", http.StatusConflict)

var ErrRoleAlreadyExists = New(CodeAlreadyExists, "role", "Role already exists", http.StatusConflict)

var ErrPermissionAlreadyExists = New(CodeAlreadyExists, "permission", "Permission already exists", http.StatusConflict)

var ErrUnknownPermission = New(CodeValidationFailed, "permission", "Unknown permission", http.StatusBadRequest)

// --- startups ---

var ErrStartupNotFound = New(CodeNotFound, "startup", "Startup not found", http.StatusNotFound)

var ErrStartupAlreadyClaimed = New(CodeConflict, "startup", "Startup has already been claimed", http.StatusConflict)

var ErrTeamMemberNotFound = New(CodeNotFound, "startup", "Team member not found", http.StatusNotFound)

var ErrGalleryImageNotFound = New(CodeNotFound, "startup", "Gallery image not found", http.StatusNotFound)

// --- jobs ---

var ErrJobNotFound = New(CodeNotFound, "job", "Job not found", http.StatusNotFound)

var ErrJobNotActive = New(CodeInvalidStatus, "job", "Job is not accepting applications", http.StatusConflict)

var ErrInvalidSalaryRange = New(CodeValidationFailed, "job", "Minimum salary cannot exceed maximum salary", http.StatusBadRequest)

// --- content ---

var ErrNewsNotFound = New(CodeNotFound, "news", "News item not found", http.StatusNotFound)

var ErrEventNotFound = New(CodeNotFound, "event", "Event not found", http.StatusNotFound)

var ErrEventFull = New(CodeLimitExceeded, "event", "Event is fully booked", http.StatusConflict)

var ErrEventPast = New(CodeInvalidStatus, "event", "Event has already taken place", http.StatusConflict)

var ErrInvalidEventDates = New(CodeValidationFailed, "event", "End date cannot be before start date", http.StatusBadRequest)

var ErrBlogPostNotFound = New(CodeNotFound, "blog", "Blog post not found", http.StatusNotFound)

// --- regions ---

var ErrRegionNotFound = New(CodeNotFound, "region", "Region not found", http.StatusNotFound)

var ErrRegionAlreadyExists = New(CodeAlreadyExists, "region", "Region already exists", http.StatusConflict)

var ErrInitiativeNotFound = New(CodeNotFound, "region", "Initiative not found", http.StatusNotFound)

var ErrPartnerNotFound = New(CodeNotFound, "region", "Partner not found", http.StatusNotFound)

// --- analytics ---

var ErrAnalyticsTargetRequired = New(CodeValidationFailed, "analytics", "startupId or jobId is required", http.StatusBadRequest)
