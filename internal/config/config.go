package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	HTTPAddr             string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	// Storage
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/moodflow.db"`
	DatabaseURL string `env:"DATABASE_URL"`
	StorageKey  string `env:"STORAGE_KEY" envDefault:"moodflow_data_v1"`
	Timezone    string `env:"TIMEZONE"`

	// Insight
	InsightProvider          string        `env:"INSIGHT_PROVIDER" envDefault:"gemini"`
	InsightModels            []string      `env:"INSIGHT_MODELS" envSeparator:"," envDefault:"gemini-1.5-flash,gemini-1.5-pro,gemini-pro"`
	InsightTimeout           time.Duration `env:"INSIGHT_TIMEOUT" envDefault:"15s"`
	InsightDiagnosticTimeout time.Duration `env:"INSIGHT_DIAGNOSTIC_TIMEOUT" envDefault:"10s"`
	InsightLanguage          string        `env:"INSIGHT_LANGUAGE" envDefault:"Traditional Chinese (繁體中文)"`
	InsightWindowDays        int           `env:"INSIGHT_WINDOW_DAYS" envDefault:"7"`
	InsightBaseURL           string        `env:"INSIGHT_BASE_URL"`
	RevealInterval           time.Duration `env:"REVEAL_INTERVAL" envDefault:"30ms"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.InsightProvider = strings.ToLower(strings.TrimSpace(c.InsightProvider))
	c.CORSAllowedOrigins = compact(c.CORSAllowedOrigins)
	c.InsightModels = compact(c.InsightModels)
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverFile, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("config: DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.InsightProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config: unknown INSIGHT_PROVIDER %q", c.InsightProvider)
	}

	if len(c.InsightModels) == 0 {
		return errors.New("config: INSIGHT_MODELS must list at least one model")
	}
	if c.InsightTimeout <= 0 || c.InsightDiagnosticTimeout <= 0 {
		return errors.New("config: insight timeouts must be positive")
	}
	if c.InsightWindowDays <= 0 {
		return errors.New("config: INSIGHT_WINDOW_DAYS must be positive")
	}
	if c.RevealInterval <= 0 {
		return errors.New("config: REVEAL_INTERVAL must be positive")
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("config: STORAGE_KEY must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TIMEZONE; empty means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
