package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendFile     = "file"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Budget Tracker"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"budgettracker"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Store struct {
		// Backend for records and title rules: postgres or memory.
		Backend string `envconfig:"STORE_BACKEND" default:"postgres"`
	}

	Settings struct {
		// Backend for flags: postgres or file.
		Backend string `envconfig:"SETTINGS_BACKEND" default:"postgres"`
		Path    string `envconfig:"SETTINGS_PATH" default:"settings.yaml"`
	}

	List struct {
		TodayLimit    int           `envconfig:"LIST_TODAY_LIMIT" default:"5"`
		PastLimit     int           `envconfig:"LIST_PAST_LIMIT" default:"3"`
		PastDays      int           `envconfig:"LIST_PAST_DAYS" default:"4"`
		ExpansionStep int           `envconfig:"LIST_EXPANSION_STEP" default:"10"`
		ExpandInPlace bool          `envconfig:"LIST_EXPAND_IN_PLACE" default:"false"`
		Sort          string        `envconfig:"LIST_SORT" default:"recency"`
		FocusDelay    time.Duration `envconfig:"UI_FOCUS_DELAY" default:"100ms"`
	}

	Money struct {
		Currency string `envconfig:"CURRENCY" default:"EUR"`
		Language string `envconfig:"LANGUAGE" default:"en"`
	}

	Auth struct {
		// HS256 secret; bearer auth is off when empty.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_ISSUER" default:"budgettracker"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// NeedsDatabase reports whether any backend is Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.Store.Backend == BackendPostgres || c.Settings.Backend == BackendPostgres
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Settings.Backend {
	case BackendPostgres, BackendFile:
	default:
		return fmt.Errorf("unknown SETTINGS_BACKEND %q", c.Settings.Backend)
	}

	if c.List.TodayLimit <= 0 || c.List.PastLimit <= 0 || c.List.ExpansionStep <= 0 {
		return fmt.Errorf("list limits must be positive")
	}

	if c.List.PastDays < 0 {
		return fmt.Errorf("LIST_PAST_DAYS must not be negative")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
