package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverFile, cfg.StoreDriver)
	assert.Equal(t, "moodflow_data_v1", cfg.StorageKey)
	assert.Equal(t, ProviderGemini, cfg.InsightProvider)
	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"}, cfg.InsightModels)
	assert.Equal(t, 15*time.Second, cfg.InsightTimeout)
	assert.Equal(t, 7, cfg.InsightWindowDays)
	assert.Equal(t, 30*time.Millisecond, cfg.RevealInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("INSIGHT_MODELS", "a, ,b")
	t.Setenv("INSIGHT_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, []string{"a", "b"}, cfg.InsightModels)
	assert.Equal(t, 2*time.Second, cfg.InsightTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StoreDriver:              DriverMemory,
			StorageKey:               "k",
			InsightProvider:          ProviderGemini,
			InsightModels:            []string{"m"},
			InsightTimeout:           time.Second,
			InsightDiagnosticTimeout: time.Second,
			InsightWindowDays:        7,
			RevealInterval:           time.Millisecond,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("postgres needs database url", func(t *testing.T) {
		c := base()
		c.StoreDriver = DriverPostgres
		assert.Error(t, c.Validate())
		c.DatabaseURL = "postgres://localhost/moodflow"
		assert.NoError(t, c.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		c := base()
		c.StoreDriver = "redis"
		assert.Error(t, c.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		c := base()
		c.InsightProvider = "yandex"
		assert.Error(t, c.Validate())
	})

	t.Run("no candidates", func(t *testing.T) {
		c := base()
		c.InsightModels = nil
		assert.Error(t, c.Validate())
	})

	t.Run("bad timezone", func(t *testing.T) {
		c := base()
		c.Timezone = "Mars/Olympus"
		assert.Error(t, c.Validate())
	})
}
