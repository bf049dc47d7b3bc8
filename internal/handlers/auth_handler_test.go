package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"greentech_backend/internal/auth"
	"greentech_backend/internal/middleware"
	"greentech_backend/internal/services/dto"
	"greentech_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuthService struct {
	session  *auth.Session
	token    string
	loginErr error
	logins   []string
}

func (f *fakeAuthService) Register(_ context.Context, _ *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{Email: req.Email, Name: req.Name}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _ *gorm.DB, req *dto.LoginRequest) (*auth.Session, string, error) {
	f.logins = append(f.logins, req.Email)
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.session, f.token, nil
}

func (f *fakeAuthService) Refresh(_ context.Context, _ *gorm.DB, _ string) (*auth.Session, string, error) {
	return f.session, f.token, nil
}

func newAuthRouter(t *testing.T, tokens *auth.TokenManager, svc *fakeAuthService) http.Handler {
	t.Helper()
	router, _ := newTestRouter(t, middleware.SessionMiddleware(tokens, "session"))
	handler := NewAuthHandler(newTestBase(), svc, SessionCookie{Name: "session", TTL: time.Hour})
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	t.Run("sets the session cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			session: &auth.Session{UserID: "user-1", Email: "ada@example.com", Role: "USER"},
			token:   "signed-token",
		}
		router := newAuthRouter(t, tokens, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"ada@example.com","password":"correct horse"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", decodeBody(t, w)["id"])

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session", cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := &fakeAuthService{loginErr: apperrors.ErrInvalidCredentials}
		router := newAuthRouter(t, tokens, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"ada@example.com","password":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid body never reaches the service", func(t *testing.T) {
		svc := &fakeAuthService{}
		router := newAuthRouter(t, tokens, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, svc.logins)
	})
}

func TestAuthHandler_Session(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := newAuthRouter(t, tokens, &fakeAuthService{})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		token, err := tokens.Issue(auth.Session{UserID: "user-7", Email: "lin@example.com", Role: "ADMIN"})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "user-7", body["id"])
		assert.Equal(t, "ADMIN", body["role"])
	})
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	router := newAuthRouter(t, auth.NewTokenManager("test-secret", time.Hour), &fakeAuthService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
