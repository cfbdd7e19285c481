package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/northpointhomes/siteworks/internal/api"
	"github.com/northpointhomes/siteworks/internal/config"
	"github.com/northpointhomes/siteworks/internal/handler"
	"github.com/northpointhomes/siteworks/internal/httpclient"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
	"github.com/northpointhomes/siteworks/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	db, err := connectDatabase(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() { _ = db.Close() }()

	return runServer(cfg, log, db)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// connectDatabase opens and verifies the PostgreSQL connection.
func connectDatabase(cfg *config.Config, log logger.Logger) (*sqlx.DB, error) {
	db, err := storage.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	return db, nil
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, db *sqlx.DB) int {
	// Event buffer and batch store
	buf := storage.NewBuffer(cfg.Tracking.BufferSize)
	events := storage.NewEventStore(db.DB, buf, log, cfg.Tracking.FlushInterval, cfg.Tracking.FlushThreshold)
	events.Start()
	defer events.Stop()

	repo := storage.NewContentRepository(db)

	// The handlers fall back to the snapshot-and-defaults chain when the
	// database is unavailable, whatever mode the service runs in.
	fallbackCfg := cfg.Content
	fallbackCfg.Mode = config.ContentModeStatic
	fallback := resolver.New(fallbackCfg, log)

	// Snapshot refreshes pull through the configured source chain.
	snapshotter := resolver.NewSnapshotter(
		resolver.New(cfg.Content, log),
		cfg.Content.SnapshotDir,
		log,
	)

	contactClient := httpclient.NewWithTimeout(cfg.Contact.Timeout)

	handlers := api.Handlers{
		Health:     handler.NewHealthHandler(cfg.Service.Version, db),
		Content:    handler.NewContentHandler(repo, fallback, log),
		Analytics:  handler.NewAnalyticsHandler(buf, log),
		Contact:    handler.NewContactHandler(repo, cfg.Contact.SheetWebhookURL, contactClient, log),
		Revalidate: handler.NewRevalidateHandler(snapshotter, cfg.Service.RevalidateSecret, log),
	}

	// done stops the rate limiter cleanup goroutine on shutdown.
	done := make(chan struct{})
	defer close(done)

	rateLimitWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	server := api.NewServer(api.ServerConfig{
		Name:           cfg.Service.Name,
		Version:        cfg.Service.Version,
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		AllowedOrigins: []string{cfg.Tracking.CanonicalOrigin},
	}, log, func(router *gin.Engine) {
		api.SetupRoutes(router, handlers, cfg.RateLimit.MaxEventsPerMinute, rateLimitWindow, done)
	})

	log.Info("Siteworks starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("content_mode", cfg.Content.Mode),
	)

	if err := server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Siteworks exited cleanly")
	return 0
}
