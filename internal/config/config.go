package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Host         string        `mapstructure:"host"`
		Port         int           `mapstructure:"port"`
		Env          string        `mapstructure:"env"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"server"`

	Database struct {
		DSN          string `mapstructure:"url"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
		MaxIdleConns int    `mapstructure:"max_idle_conns"`
	} `mapstructure:"database"`

	Session struct {
		Secret       string        `mapstructure:"secret"`
		TTL          time.Duration `mapstructure:"ttl"`
		CookieName   string        `mapstructure:"cookie_name"`
		CookieDomain string        `mapstructure:"cookie_domain"`
		Secure       bool          `mapstructure:"secure"`
	} `mapstructure:"session"`

	Cron struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"cron"`

	Redis struct {
		Enabled  bool          `mapstructure:"enabled"`
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	Email struct {
		Enabled      bool   `mapstructure:"enabled"`
		SMTPHost     string `mapstructure:"smtp_host"`
		SMTPPort     int    `mapstructure:"smtp_port"`
		SMTPUsername string `mapstructure:"smtp_user"`
		SMTPPassword string `mapstructure:"smtp_password"`
		FromEmail    string `mapstructure:"from_email"`
		FromName     string `mapstructure:"from_name"`
		SiteURL      string `mapstructure:"site_url"`
	} `mapstructure:"email"`

	Admin struct {
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"admin"`

	Stats struct {
		StaleAfter time.Duration `mapstructure:"stale_after"`
	} `mapstructure:"stats"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

var (
	AppConfig *Config
	loadOnce  sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.cookie_domain", "")
	v.SetDefault("session.secure", false)

	v.SetDefault("cron.secret", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_email", "no-reply@greentechnordics.com")
	v.SetDefault("email.from_name", "GreenTech Nordics")
	v.SetDefault("email.site_url", "http://localhost:3000")

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.name", "Site Admin")

	v.SetDefault("stats.stale_after", "24h")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// Load reads the YAML file at path (optional), then environment variables.
// Env names are the upper-cased keys with "." replaced by "_", e.g. DATABASE_URL.
func Load(path string) (*Config, error) {
	// .env is optional; real env always wins over it.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads the global AppConfig from CONFIG_PATH (default config/config.yaml).
func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

// GetConfig returns AppConfig, loading it on first use. It panics on an invalid config.
func GetConfig() *Config {
	loadOnce.Do(func() {
		if AppConfig != nil {
			return
		}
		if _, err := LoadConfig(); err != nil {
			panic(err)
		}
	})
	return AppConfig
}

// PlaceholderSessionSecret is the value shipped in config/config.yaml.
const PlaceholderSessionSecret = "change-me-in-production"

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.DSN == "" {
		return errors.New("database url is required")
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required")
	}
	if c.IsProduction() && c.Session.Secret == PlaceholderSessionSecret {
		return errors.New("session secret must be changed in production")
	}
	if c.IsProduction() && c.Cron.Secret == "" {
		return errors.New("cron secret is required in production")
	}
	if c.Stats.StaleAfter <= 0 {
		return fmt.Errorf("invalid stats.stale_after: %s", c.Stats.StaleAfter)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
