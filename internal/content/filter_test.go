package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpointhomes/siteworks/internal/content"
)

func intPtr(v int) *int { return &v }

func testProjects() []content.Project {
	return []content.Project{
		{Slug: "unordered-a", Active: true},
		{Slug: "third", Active: true, OrderIndex: intPtr(3)},
		{Slug: "first", Active: true, Featured: true, OrderIndex: intPtr(1), Category: "custom-homes"},
		{Slug: "hidden", Active: false, OrderIndex: intPtr(0)},
		{Slug: "unordered-b", Active: true, Category: "custom-homes"},
		{Slug: "second", Active: true, Featured: true, OrderIndex: intPtr(2)},
	}
}

func slugs(projects []content.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Slug
	}
	return out
}

func TestApplySortsByOrderIndex(t *testing.T) {
	got := content.Apply(testProjects(), content.ActiveFilter)

	assert.Equal(t, []string{"first", "second", "third", "unordered-a", "unordered-b"}, slugs(got))
}

func TestApplyUnorderedTiesKeepInputOrder(t *testing.T) {
	items := []content.Project{
		{Slug: "b", Active: true},
		{Slug: "a", Active: true},
		{Slug: "c", Active: true},
	}

	got := content.Apply(items, content.ActiveFilter)
	assert.Equal(t, []string{"b", "a", "c"}, slugs(got))
}

func TestApplyActiveOnly(t *testing.T) {
	got := content.Apply(testProjects(), content.ActiveFilter)

	for _, p := range got {
		assert.True(t, p.Active)
	}
	assert.NotContains(t, slugs(got), "hidden")
}

func TestApplyFeaturedOnly(t *testing.T) {
	got := content.Apply(testProjects(), content.Filter{ActiveOnly: true, FeaturedOnly: true})

	assert.Equal(t, []string{"first", "second"}, slugs(got))
}

func TestApplyFeaturedOnlyWithoutFlagReturnsNothing(t *testing.T) {
	cities := []content.City{
		{Slug: "portland", Name: "Portland", Active: true},
	}

	got := content.Apply(cities, content.Filter{FeaturedOnly: true})
	assert.Empty(t, got)
}

func TestApplyCategory(t *testing.T) {
	got := content.Apply(testProjects(), content.Filter{ActiveOnly: true, Category: "custom-homes"})

	assert.Equal(t, []string{"first", "unordered-b"}, slugs(got))
}

func TestApplyLimitAfterSort(t *testing.T) {
	got := content.Apply(testProjects(), content.Filter{ActiveOnly: true, Limit: 2})

	assert.Equal(t, []string{"first", "second"}, slugs(got))
}

func TestApplyZeroFilterKeepsEverything(t *testing.T) {
	got := content.Apply(testProjects(), content.Filter{})
	assert.Len(t, got, len(testProjects()))
}

func TestApplyEmptyInput(t *testing.T) {
	got := content.Apply([]content.Project{}, content.ActiveFilter)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEffectiveOrderSentinel(t *testing.T) {
	withIndex := content.Project{OrderIndex: intPtr(5)}
	without := content.Project{}

	assert.Equal(t, 5, withIndex.EffectiveOrder())
	assert.Equal(t, content.UnorderedSentinel, without.EffectiveOrder())
}

func TestDefaultsAreActive(t *testing.T) {
	cities := content.DefaultCities()
	require.NotEmpty(t, cities)
	for _, c := range cities {
		assert.True(t, c.IsActive())
	}

	packages := content.DefaultPackages()
	require.NotEmpty(t, packages)
	for _, p := range packages {
		assert.True(t, p.IsActive())
	}

	settings := content.DefaultCompanySettings()
	assert.NotEmpty(t, settings.CompanyName)
	assert.NotEmpty(t, settings.Phone)
}

func TestParseKind(t *testing.T) {
	kind, err := content.ParseKind("projects")
	require.NoError(t, err)
	assert.Equal(t, content.KindProjects, kind)

	_, err = content.ParseKind("widgets")
	assert.Error(t, err)
}

func TestKindPaths(t *testing.T) {
	assert.Equal(t, "page-configs.json", content.KindPageConfigs.SnapshotFile())
	assert.Equal(t, "/api/company-settings", content.KindCompanySettings.APIPath())
}
