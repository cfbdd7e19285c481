package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
)

const snapshotFileMode = 0o644

// Snapshotter refreshes the on-disk content snapshots from a resolver chain.
// It backs both the revalidation endpoint and the snapshot CLI.
type Snapshotter struct {
	resolver *Resolver
	dir      string
	log      logger.Logger
}

// NewSnapshotter creates a Snapshotter writing into dir.
func NewSnapshotter(r *Resolver, dir string, log logger.Logger) *Snapshotter {
	return &Snapshotter{
		resolver: r,
		dir:      dir,
		log:      log,
	}
}

// Refresh fetches and rewrites the snapshot for each kind. Kinds whose fetch
// fails keep their existing snapshot; the returned slice lists the kinds that
// were refreshed.
func (s *Snapshotter) Refresh(ctx context.Context, kinds ...content.Kind) ([]content.Kind, error) {
	if len(kinds) == 0 {
		kinds = content.AllKinds()
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	refreshed := make([]content.Kind, 0, len(kinds))
	for _, kind := range kinds {
		payload, ok := s.resolver.Raw(ctx, kind)
		if !ok {
			s.log.Warn("Snapshot refresh skipped, no source produced a payload",
				logger.String("kind", string(kind)),
			)
			continue
		}

		if err := s.write(kind, payload); err != nil {
			s.log.Error("Snapshot write failed",
				logger.String("kind", string(kind)),
				logger.Error(err),
			)
			continue
		}

		refreshed = append(refreshed, kind)
	}

	return refreshed, nil
}

// write replaces the snapshot file atomically so readers never observe a
// partial document.
func (s *Snapshotter) write(kind content.Kind, payload []byte) error {
	target := filepath.Join(s.dir, kind.SnapshotFile())
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, payload, snapshotFileMode); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
