// Package config loads the server configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvFile is read when present. Real environment variables win.
const DefaultEnvFile = ".env"

// Coda holds the upstream tabular API settings.
type Coda struct {
	Token   string `envconfig:"CODA_API_TOKEN" required:"true"`
	DocID   string `envconfig:"CODA_DOC_ID" required:"true"`
	TableID string `envconfig:"CODA_TABLE_ID" default:"Portfolio"`
	BaseURL string `envconfig:"CODA_BASE_URL" default:"https://coda.io/apis/v1"`
}

// Theme holds thumbnail theming settings.
type Theme struct {
	DefaultMode  string   `envconfig:"STUDIO_DEFAULT_MODE" default:"dark"`
	Algorithm    string   `envconfig:"STUDIO_THEME_ALGORITHM" default:"prominent"`
	AllowedHosts []string `envconfig:"STUDIO_THEME_HOSTS"`
	AllowPrivate bool     `envconfig:"STUDIO_THEME_ALLOW_PRIVATE" default:"false"`
}

// Config is the full server configuration.
type Config struct {
	Coda          Coda          `ignored:"true"`
	Theme         Theme         `ignored:"true"`
	Addr          string        `envconfig:"STUDIO_ADDR" default:":8080"`
	LogLevel      string        `envconfig:"STUDIO_LOG_LEVEL" default:"info"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD"`
	HTTPTimeout   time.Duration `envconfig:"STUDIO_HTTP_TIMEOUT" default:"10s"`
	PurgeURL      string        `envconfig:"STUDIO_PURGE_URL"`
	BriefingURL   string        `envconfig:"STUDIO_BRIEFING_URL"`
}

// Load reads envFile (ignored when missing) and processes the environment.
// A missing CODA_API_TOKEN or CODA_DOC_ID is an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	_ = godotenv.Load(envFile)

	var cfg Config
	if err := envconfig.Process("", &cfg.Coda); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := envconfig.Process("", &cfg.Theme); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Coda.Token) == "" {
		return fmt.Errorf("invalid configuration: CODA_API_TOKEN is empty")
	}
	if strings.TrimSpace(c.Coda.DocID) == "" {
		return fmt.Errorf("invalid configuration: CODA_DOC_ID is empty")
	}
	switch strings.ToLower(c.Theme.DefaultMode) {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid configuration: STUDIO_DEFAULT_MODE must be dark or light, got %q", c.Theme.DefaultMode)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("invalid configuration: STUDIO_HTTP_TIMEOUT must not be negative")
	}
	return nil
}
