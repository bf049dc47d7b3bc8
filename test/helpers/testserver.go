package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"greentech_backend/internal/app"
	"greentech_backend/internal/config"
	"greentech_backend/internal/database"
	"greentech_backend/internal/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	TestSessionSecret = "integration-session-secret"
	TestCronSecret    = "integration-cron-secret"
)

type TestServer struct {
	Server    *httptest.Server
	DB        *gorm.DB
	Config    *config.Config
	Container *services.ServiceContainer
}

// NewTestServer runs the full application against TEST_DATABASE_URL. The
// calling test is skipped when the variable is not set.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Server.Env = "test"
	cfg.Database.DSN = dsn
	cfg.Database.MaxOpenConns = 5
	cfg.Database.MaxIdleConns = 2
	cfg.Session.Secret = TestSessionSecret
	cfg.Session.TTL = time.Hour
	cfg.Session.CookieName = "session"
	cfg.Cron.Secret = TestCronSecret
	cfg.Redis.TTL = time.Minute
	cfg.Email.SiteURL = "http://localhost:3000"
	cfg.Stats.StaleAfter = 24 * time.Hour
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	db, err := database.OpenAndMigrate(cfg)
	require.NoError(t, err, "test database unavailable")

	container := app.NewServiceContainer(context.Background(), cfg)
	_, err = container.RoleService.EnsureDefaults(context.Background(), db)
	require.NoError(t, err)

	return &TestServer{
		Server:    httptest.NewServer(app.SetupRouter(cfg, db, container)),
		DB:        db,
		Config:    cfg,
		Container: container,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	database.Close(ts.DB)
}

// ClearTables empties every domain table. Roles and permissions are kept.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec(`TRUNCATE TABLE analytics_events, blog_posts, events, news, jobs,
		gallery_images, team_members, startups, ecosystem_partners, region_initiatives,
		region_stats, regions, users RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)
}

// Client is a browser-like client whose cookie jar keeps the session.
type Client struct {
	ts   *TestServer
	http *http.Client
}

func (ts *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	httpClient := ts.Server.Client()
	httpClient.Jar = jar
	return &Client{ts: ts, http: httpClient}
}

// Do sends body as JSON and returns the response with its body read.
func (c *Client) Do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.ts.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, data
}

// DoJSON is Do followed by decoding the body into out.
func (c *Client) DoJSON(t *testing.T, method, path string, body, out interface{}) *http.Response {
	t.Helper()
	res, data := c.Do(t, method, path, body)
	if out != nil && len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, out), string(data))
	}
	return res
}
