package middleware

import (
	"strings"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/logger"
	"greentech_backend/pkg/apperrors"
	"greentech_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware is optional authentication: a valid cookie (or Bearer token)
// puts the *auth.Session into the context, anything else is ignored.
func SessionMiddleware(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := readToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		session, err := tokens.Parse(token)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "Ignoring invalid session token", "error", err)
			c.Next()
			return
		}

		c.Set(string(contextkeys.SessionContextKey), session)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), session.UserID))
		c.Next()
	}
}

func readToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// GetSession returns the session set by SessionMiddleware, or nil.
func GetSession(c *gin.Context) *auth.Session {
	val, ok := c.Get(string(contextkeys.SessionContextKey))
	if !ok {
		return nil
	}
	session, _ := val.(*auth.Session)
	return session
}

// RequireSession aborts with 401 when there is no session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}
		c.Next()
	}
}

// RequirePermission aborts with 401 without a session and 403 when the
// session lacks permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}
		if !auth.HasPermission(session.Permissions, permission) {
			logger.CtxWarn(c.Request.Context(), "Permission denied",
				"permission", permission,
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions.WithDetails(gin.H{"required": permission}))
			return
		}
		c.Next()
	}
}
