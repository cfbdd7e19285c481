package config

import (
	"fmt"
	"time"
)

// Content source modes.
const (
	ContentModeAPI    = "api"
	ContentModeStatic = "static"
)

// Default configuration values.
const (
	defaultServiceName  = "siteworks"
	defaultServicePort  = 8094
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"
	defaultLoggingFmt   = "json"
	defaultDBHost       = "localhost"
	defaultDBPort       = 5432
	defaultDBName       = "siteworks"
	defaultDBUser       = "postgres"
	defaultDBSSLMode    = "disable"

	defaultContentMode     = ContentModeStatic
	defaultSnapshotDir     = "snapshots"
	defaultRequestTimeout  = 10 * time.Second
	defaultSettingsTimeout = 15 * time.Second
	defaultMaxAttempts     = 3
	defaultRetryDelay      = 500 * time.Millisecond

	defaultCollectPath    = "/api/analytics"
	defaultBufferSize     = 1000
	defaultFlushThresh    = 200
	defaultFlushIntervalS = 2

	defaultMaxEventsPerMinute = 120
	defaultWindowSeconds      = 60

	defaultContactTimeout = 10 * time.Second
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Content   ContentConfig   `yaml:"content"`
	Database  DatabaseConfig  `yaml:"database"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Contact   ContactConfig   `yaml:"contact"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name             string `yaml:"name"`
	Version          string `yaml:"version"`
	Port             int    `env:"SITEWORKS_PORT"             yaml:"port"`
	Debug            bool   `env:"APP_DEBUG"                  yaml:"debug"`
	RevalidateSecret string `env:"SITEWORKS_REVALIDATE_SECRET" yaml:"revalidate_secret"`
}

// ContentConfig holds the content resolver configuration. Mode is fixed for
// the lifetime of the process.
type ContentConfig struct {
	Mode            string        `env:"CONTENT_MODE"         yaml:"mode"`
	APIBaseURL      string        `env:"CONTENT_API_BASE_URL" yaml:"api_base_url"`
	SnapshotDir     string        `env:"CONTENT_SNAPSHOT_DIR" yaml:"snapshot_dir"`
	SnapshotBaseURL string        `yaml:"snapshot_base_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	SettingsTimeout time.Duration `yaml:"settings_timeout"`
	MaxAttempts     int           `yaml:"max_attempts"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_SITEWORKS_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_SITEWORKS_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_SITEWORKS_USER"     yaml:"user"`
	Password string `env:"POSTGRES_SITEWORKS_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_SITEWORKS_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_SITEWORKS_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// TrackingConfig holds the analytics collection configuration.
// CanonicalOrigin gates event emission: events for any other origin are
// dropped so staging mirrors never pollute production analytics.
type TrackingConfig struct {
	CanonicalOrigin string        `env:"TRACKING_CANONICAL_ORIGIN" yaml:"canonical_origin"`
	CollectPath     string        `yaml:"collect_path"`
	BufferSize      int           `yaml:"buffer_size"`
	FlushInterval   time.Duration `yaml:"flush_interval"`
	FlushThreshold  int           `yaml:"flush_threshold"`
}

// ContactConfig holds the contact form pipeline configuration.
// SheetWebhookURL is the spreadsheet backend that receives submission rows.
type ContactConfig struct {
	SheetWebhookURL string        `env:"CONTACT_SHEET_WEBHOOK_URL" yaml:"sheet_webhook_url"`
	Timeout         time.Duration `yaml:"timeout"`
}

// RateLimitConfig holds rate limiting configuration for the collection endpoint.
type RateLimitConfig struct {
	MaxEventsPerMinute int `yaml:"max_events_per_minute"`
	WindowSeconds      int `yaml:"window_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setContentDefaults(&cfg.Content)
	setDatabaseDefaults(&cfg.Database)
	setTrackingDefaults(&cfg.Tracking)
	setContactDefaults(&cfg.Contact)
	setRateLimitDefaults(&cfg.RateLimit)
	setLoggingDefaults(&cfg.Logging)
}

// setServiceDefaults applies default values to ServiceConfig.
func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

// setContentDefaults applies default values to ContentConfig.
func setContentDefaults(c *ContentConfig) {
	if c.Mode == "" {
		c.Mode = defaultContentMode
	}
	if c.SnapshotDir == "" {
		c.SnapshotDir = defaultSnapshotDir
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.SettingsTimeout == 0 {
		c.SettingsTimeout = defaultSettingsTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaultRetryDelay
	}
}

// setDatabaseDefaults applies default values to DatabaseConfig.
func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

// setTrackingDefaults applies default values to TrackingConfig.
func setTrackingDefaults(tr *TrackingConfig) {
	if tr.CollectPath == "" {
		tr.CollectPath = defaultCollectPath
	}
	if tr.BufferSize == 0 {
		tr.BufferSize = defaultBufferSize
	}
	if tr.FlushInterval == 0 {
		tr.FlushInterval = defaultFlushIntervalS * time.Second
	}
	if tr.FlushThreshold == 0 {
		tr.FlushThreshold = defaultFlushThresh
	}
}

// setContactDefaults applies default values to ContactConfig.
func setContactDefaults(c *ContactConfig) {
	if c.Timeout == 0 {
		c.Timeout = defaultContactTimeout
	}
}

// setRateLimitDefaults applies default values to RateLimitConfig.
func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.MaxEventsPerMinute == 0 {
		rl.MaxEventsPerMinute = defaultMaxEventsPerMinute
	}
	if rl.WindowSeconds == 0 {
		rl.WindowSeconds = defaultWindowSeconds
	}
}

// setLoggingDefaults applies default values to LoggingConfig.
func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := validateRequired("service.revalidate_secret", c.Service.RevalidateSecret); err != nil {
		return err
	}
	if c.Content.Mode != ContentModeAPI && c.Content.Mode != ContentModeStatic {
		return &ValidationError{
			Field:   "content.mode",
			Message: `must be "api" or "static"`,
		}
	}
	if c.Content.Mode == ContentModeAPI && c.Content.APIBaseURL == "" {
		return &ValidationError{
			Field:   "content.api_base_url",
			Message: `is required when content.mode is "api"`,
		}
	}
	return nil
}
