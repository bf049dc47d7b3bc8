package handlers

import (
	"net/http"
	"time"

	"greentech_backend/internal/logger"
	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services"
	"greentech_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SessionCookie describes the cookie that carries the signed session token.
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      SessionCookie
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie SessionCookie) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.GetSession)
		auth.POST("/refresh", middleware.RequireSession(), h.Refresh)
	}
}

// Register godoc
// @Summary Register an account
// @Description Creates a user with the default USER role and sends a welcome email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email already in use"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Verifies the password and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} auth.Session
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, token, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.TTL.Seconds()))
	logger.CtxInfo(c.Request.Context(), "User logged in", "user_id", session.UserID)

	c.JSON(http.StatusOK, session)
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// GetSession godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} auth.Session
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, ok := h.GetAndAuthorizeSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session)
}

// Refresh re-issues the cookie from the current database state of the user,
// so role changes apply without logging out.
func (h *AuthHandler) Refresh(c *gin.Context) {
	current, ok := h.GetAndAuthorizeSession(c)
	if !ok {
		return
	}

	session, token, err := h.authService.Refresh(c.Request.Context(), h.GetDB(c), current.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.TTL.Seconds()))
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
