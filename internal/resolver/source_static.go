package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/northpointhomes/siteworks/internal/content"
)

// StaticSource reads content snapshots named after the kind, e.g.
// "projects.json". Snapshots come from the local filesystem, or over HTTP
// when a base URL is configured (the static-asset case).
type StaticSource struct {
	dir     string
	baseURL string
	client  *http.Client
}

// NewStaticSource creates a static snapshot source. When baseURL is empty,
// snapshots are read from dir on the local filesystem.
func NewStaticSource(dir, baseURL string, client *http.Client) *StaticSource {
	return &StaticSource{
		dir:     dir,
		baseURL: baseURL,
		client:  client,
	}
}

// Name identifies the source in logs.
func (s *StaticSource) Name() string { return "static" }

// Fetch reads the snapshot document for the kind.
func (s *StaticSource) Fetch(ctx context.Context, kind content.Kind) ([]byte, error) {
	if s.baseURL != "" {
		return s.fetchHTTP(ctx, kind)
	}

	path := filepath.Join(s.dir, kind.SnapshotFile())
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return data, nil
}

// fetchHTTP reads the snapshot as a static asset over HTTP.
func (s *StaticSource) fetchHTTP(ctx context.Context, kind content.Kind) ([]byte, error) {
	url := s.baseURL + "/" + kind.SnapshotFile()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}

	return body, nil
}
