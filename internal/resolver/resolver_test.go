package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
)

// fakeSource serves canned payloads per kind, or a fixed error.
type fakeSource struct {
	name     string
	payloads map[content.Kind][]byte
	err      error
	fetches  int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, kind content.Kind) ([]byte, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	payload, ok := f.payloads[kind]
	if !ok {
		return nil, errors.New("no payload for kind")
	}
	return payload, nil
}

var errSourceDown = errors.New("connection refused")

func TestResolverUsesFirstSource(t *testing.T) {
	primary := &fakeSource{name: "api", payloads: map[content.Kind][]byte{
		content.KindCities: []byte(`{"success":true,"data":[{"slug":"portland","name":"Portland","active":true}],"count":1}`),
	}}
	secondary := &fakeSource{name: "static"}

	r := resolver.NewWithSources(logger.NewNop(), primary, secondary)

	cities := r.Cities(context.Background(), content.ActiveFilter)
	require.Len(t, cities, 1)
	assert.Equal(t, "portland", cities[0].Slug)
	assert.Zero(t, secondary.fetches, "fallback must not be consulted on success")
}

func TestResolverFallsBackOnSourceError(t *testing.T) {
	primary := &fakeSource{name: "api", err: errSourceDown}
	secondary := &fakeSource{name: "static", payloads: map[content.Kind][]byte{
		content.KindCities: []byte(`[{"slug":"brunswick","name":"Brunswick","active":true}]`),
	}}

	r := resolver.NewWithSources(logger.NewNop(), primary, secondary)

	cities := r.Cities(context.Background(), content.ActiveFilter)
	require.Len(t, cities, 1)
	assert.Equal(t, "brunswick", cities[0].Slug)
}

func TestResolverFallsBackOnMalformedPayload(t *testing.T) {
	primary := &fakeSource{name: "api", payloads: map[content.Kind][]byte{
		content.KindCities: []byte(`{"success":true,"data":"not an array"}`),
	}}
	secondary := &fakeSource{name: "static", payloads: map[content.Kind][]byte{
		content.KindCities: []byte(`[{"slug":"bangor","name":"Bangor","active":true}]`),
	}}

	r := resolver.NewWithSources(logger.NewNop(), primary, secondary)

	cities := r.Cities(context.Background(), content.ActiveFilter)
	require.Len(t, cities, 1)
	assert.Equal(t, "bangor", cities[0].Slug)
}

func TestResolverDefaultsWhenAllSourcesFail(t *testing.T) {
	r := resolver.NewWithSources(logger.NewNop(),
		&fakeSource{name: "api", err: errSourceDown},
		&fakeSource{name: "static", err: errSourceDown},
	)

	cities := r.Cities(context.Background(), content.ActiveFilter)
	assert.Equal(t, content.DefaultCities(), cities, "the defaults tier is the last resort")

	projects := r.Projects(context.Background(), content.ActiveFilter)
	assert.Empty(t, projects, "kinds without built-in content default to empty, not an error")
}

func TestResolverAppliesFilterToEveryTier(t *testing.T) {
	primary := &fakeSource{name: "static", payloads: map[content.Kind][]byte{
		content.KindProjects: []byte(`[
			{"slug":"a","active":true,"featured":false,"order_index":2},
			{"slug":"b","active":true,"featured":true,"order_index":1},
			{"slug":"c","active":false,"featured":true}
		]`),
	}}

	r := resolver.NewWithSources(logger.NewNop(), primary)

	projects := r.Projects(context.Background(), content.Filter{ActiveOnly: true, FeaturedOnly: true})
	require.Len(t, projects, 1)
	assert.Equal(t, "b", projects[0].Slug)
}

func TestCompanySettingsFallsBackToDefaults(t *testing.T) {
	r := resolver.NewWithSources(logger.NewNop(), &fakeSource{name: "api", err: errSourceDown})

	settings := r.CompanySettings(context.Background())
	assert.Equal(t, content.DefaultCompanySettings(), settings)
}

func TestCompanySettingsMalformedUsesDefaults(t *testing.T) {
	src := &fakeSource{name: "static", payloads: map[content.Kind][]byte{
		content.KindCompanySettings: []byte(`[1,2,3]`),
	}}

	r := resolver.NewWithSources(logger.NewNop(), src)

	settings := r.CompanySettings(context.Background())
	assert.Equal(t, content.DefaultCompanySettings(), settings)
}

func TestIsPageEnabled(t *testing.T) {
	src := &fakeSource{name: "static", payloads: map[content.Kind][]byte{
		content.KindPageConfigs: []byte(`[
			{"page_id":"gallery","page_name":"Gallery","enabled":false},
			{"page_id":"blog","page_name":"Blog","enabled":true}
		]`),
	}}

	r := resolver.NewWithSources(logger.NewNop(), src)
	ctx := context.Background()

	assert.False(t, r.IsPageEnabled(ctx, "gallery"))
	assert.True(t, r.IsPageEnabled(ctx, "blog"))
	assert.True(t, r.IsPageEnabled(ctx, "careers"), "unknown pages fail open")
}

func TestIsPageEnabledFailsOpenOnOutage(t *testing.T) {
	r := resolver.NewWithSources(logger.NewNop(), &fakeSource{name: "api", err: errSourceDown})

	assert.True(t, r.IsPageEnabled(context.Background(), "gallery"))
}

func TestRawUnwrapsEnvelope(t *testing.T) {
	src := &fakeSource{name: "api", payloads: map[content.Kind][]byte{
		content.KindFAQs: []byte(`{"success":true,"data":[{"question":"Q","answer":"A","active":true}],"count":1}`),
	}}

	r := resolver.NewWithSources(logger.NewNop(), src)

	raw, ok := r.Raw(context.Background(), content.KindFAQs)
	require.True(t, ok)
	assert.JSONEq(t, `[{"question":"Q","answer":"A","active":true}]`, string(raw))
}
