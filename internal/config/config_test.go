package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/greentech")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Stats.StaleAfter)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  env: staging
database:
  url: postgres://file/db
session:
  secret: from-file
cron:
  secret: file-cron
stats:
  stale_after: 6h
`)
	t.Setenv("CRON_SECRET", "env-cron")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.Equal(t, "postgres://file/db", cfg.Database.DSN)
	assert.Equal(t, "env-cron", cfg.Cron.Secret)
	assert.Equal(t, 6*time.Hour, cfg.Stats.StaleAfter)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Server.Port = 8080
		c.Database.DSN = "postgres://x"
		c.Session.Secret = "s"
		c.Stats.StaleAfter = time.Hour
		return c
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Database.DSN = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Session.Secret = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Server.Port = 70000
	assert.Error(t, c.Validate())

	c = valid()
	c.Server.Env = "production"
	assert.Error(t, c.Validate(), "production needs a cron secret")
	c.Cron.Secret = "cron"
	assert.NoError(t, c.Validate())

	c.Session.Secret = PlaceholderSessionSecret
	assert.Error(t, c.Validate(), "production rejects the shipped placeholder secret")
	c.Server.Env = "development"
	assert.NoError(t, c.Validate())
}
