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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
service:
  revalidate_secret: test-secret
content:
  mode: static
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "siteworks", cfg.Service.Name)
	assert.Equal(t, 8094, cfg.Service.Port)
	assert.Equal(t, ContentModeStatic, cfg.Content.Mode)
	assert.Equal(t, "snapshots", cfg.Content.SnapshotDir)
	assert.Equal(t, 10*time.Second, cfg.Content.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Content.SettingsTimeout)
	assert.Equal(t, 3, cfg.Content.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Content.RetryDelay)
	assert.Equal(t, 1000, cfg.Tracking.BufferSize)
	assert.Equal(t, 200, cfg.Tracking.FlushThreshold)
	assert.Equal(t, 2*time.Second, cfg.Tracking.FlushInterval)
	assert.Equal(t, 120, cfg.RateLimit.MaxEventsPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverridesWin(t *testing.T) {
	t.Setenv("SITEWORKS_PORT", "9001")
	t.Setenv("CONTENT_MODE", "api")
	t.Setenv("CONTENT_API_BASE_URL", "https://dashboard.example.com")
	t.Setenv("APP_DEBUG", "yes")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Service.Port)
	assert.Equal(t, ContentModeAPI, cfg.Content.Mode)
	assert.Equal(t, "https://dashboard.example.com", cfg.Content.APIBaseURL)
	assert.True(t, cfg.Service.Debug)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)
		return cfg
	}

	t.Run("valid static config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing revalidate secret", func(t *testing.T) {
		cfg := base()
		cfg.Service.RevalidateSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Service.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown content mode", func(t *testing.T) {
		cfg := base()
		cfg.Content.Mode = "hybrid"
		assert.Error(t, cfg.Validate())
	})

	t.Run("api mode requires base url", func(t *testing.T) {
		cfg := base()
		cfg.Content.Mode = ContentModeAPI
		cfg.Content.APIBaseURL = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		Database: "siteworks", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=pw dbname=siteworks sslmode=disable",
		db.DSN(),
	)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "config.yml", Path("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/siteworks/config.yml")
	assert.Equal(t, "/etc/siteworks/config.yml", Path("config.yml"))
}
