package resolver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
)

func TestStaticSourceReadsFromDir(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(`[{"slug":"portland","name":"Portland","active":true}]`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cities.json"), payload, 0o644))

	src := resolver.NewStaticSource(dir, "", nil)

	got, err := src.Fetch(context.Background(), content.KindCities)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestStaticSourceMissingFile(t *testing.T) {
	src := resolver.NewStaticSource(t.TempDir(), "", nil)

	_, err := src.Fetch(context.Background(), content.KindProjects)
	assert.Error(t, err)
}

func TestStaticSourceFetchesOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/faqs.json", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := resolver.NewStaticSource("", srv.URL, srv.Client())

	got, err := src.Fetch(context.Background(), content.KindFAQs)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestSnapshotterRefresh(t *testing.T) {
	dir := t.TempDir()
	src := &fakeSource{name: "api", payloads: map[content.Kind][]byte{}}
	for _, kind := range content.AllKinds() {
		src.payloads[kind] = []byte(`{"success":true,"data":[],"count":0}`)
	}

	snap := resolver.NewSnapshotter(resolver.NewWithSources(logger.NewNop(), src), dir, logger.NewNop())

	refreshed, err := snap.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, refreshed, len(content.AllKinds()))

	data, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data), "snapshots store the unwrapped payload")
}

func TestSnapshotterKeepsOldSnapshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	previous := []byte(`[{"slug":"kept"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cities.json"), previous, 0o644))

	failing := &fakeSource{name: "api", err: errSourceDown}
	snap := resolver.NewSnapshotter(resolver.NewWithSources(logger.NewNop(), failing), dir, logger.NewNop())

	refreshed, err := snap.Refresh(context.Background(), content.KindCities)
	require.NoError(t, err)
	assert.Empty(t, refreshed)

	data, err := os.ReadFile(filepath.Join(dir, "cities.json"))
	require.NoError(t, err)
	assert.Equal(t, previous, data)
}
