// Command snapshot pulls every content kind from the remote API and writes
// the static snapshot files. Deploy pipelines run it at build time so
// static-mode deployments ship with current content.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/northpointhomes/siteworks/internal/config"
	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// snapshotTimeout bounds the whole refresh run.
const snapshotTimeout = 2 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}

	if cfg.Content.APIBaseURL == "" {
		fmt.Fprintln(os.Stderr, "content.api_base_url must be set to take a snapshot")
		return exitFailure
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = log.Sync() }()

	// Snapshots always come from the remote API, whatever mode the serving
	// config uses.
	sourceCfg := cfg.Content
	sourceCfg.Mode = config.ContentModeAPI

	snapshotter := resolver.NewSnapshotter(
		resolver.New(sourceCfg, log),
		cfg.Content.SnapshotDir,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	refreshed, err := snapshotter.Refresh(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Snapshot refresh failed: %v\n", err)
		return exitFailure
	}

	if len(refreshed) < len(content.AllKinds()) {
		fmt.Fprintf(os.Stderr, "Refreshed %d of %d kinds; the rest kept their previous snapshots\n",
			len(refreshed), len(content.AllKinds()))
		return exitFailure
	}

	fmt.Printf("Refreshed %d snapshots into %s\n", len(refreshed), cfg.Content.SnapshotDir)
	return exitSuccess
}
