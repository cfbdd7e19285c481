package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/handler"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
	"github.com/northpointhomes/siteworks/internal/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

func newContentRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := storage.NewContentRepository(sqlx.NewDb(db, "postgres"))

	// An empty source chain resolves straight to the defaults tier.
	fallback := resolver.NewWithSources(logger.NewNop())

	h := handler.NewContentHandler(repo, fallback, logger.NewNop())

	r := gin.New()
	r.GET("/api/projects", h.Projects)
	r.GET("/api/cities", h.Cities)
	r.GET("/api/company-settings", h.CompanySettings)
	r.GET("/api/page-configs", h.PageConfigs)
	return r, mock
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func projectRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "title", "description", "city", "category",
		"image_url", "featured", "active", "order_index",
	}).
		AddRow(1, "later", "Later", "", "Portland", "", "", false, true, 2).
		AddRow(2, "hidden", "Hidden", "", "Portland", "", "", false, false, 1).
		AddRow(3, "featured-first", "Featured First", "", "Portland", "", "", true, true, 1)
}

func TestProjectsServesSortedActiveRecords(t *testing.T) {
	r, mock := newContentRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM projects").WillReturnRows(projectRows())

	w := get(r, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, 2, env.Count)

	var projects []content.Project
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "featured-first", projects[0].Slug)
	assert.Equal(t, "later", projects[1].Slug)
}

func TestProjectsFeaturedAndLimitParams(t *testing.T) {
	r, mock := newContentRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM projects").WillReturnRows(projectRows())

	w := get(r, "/api/projects?featured=true&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var projects []content.Project
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "featured-first", projects[0].Slug)
}

func TestProjectsDatabaseFailureServesFallback(t *testing.T) {
	r, mock := newContentRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM projects").WillReturnError(sql.ErrConnDone)

	w := get(r, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code, "a data-source outage must not surface as a 5xx")

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, 0, env.Count)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestCitiesDatabaseFailureServesDefaults(t *testing.T) {
	r, mock := newContentRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM cities").WillReturnError(sql.ErrConnDone)

	w := get(r, "/api/cities")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var cities []content.City
	require.NoError(t, json.Unmarshal(env.Data, &cities))
	assert.Equal(t, len(content.DefaultCities()), len(cities))
	assert.Equal(t, "portland", cities[0].Slug)
}

func TestCompanySettingsDatabaseFailureServesDefaults(t *testing.T) {
	r, mock := newContentRouter(t)
	mock.ExpectQuery("SELECT (.+) FROM company_settings").WillReturnError(sql.ErrConnDone)

	w := get(r, "/api/company-settings")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var settings content.CompanySettings
	require.NoError(t, json.Unmarshal(env.Data, &settings))
	assert.Equal(t, content.DefaultCompanySettings(), settings)
}

func TestPageConfigsServesDisabledEntries(t *testing.T) {
	r, mock := newContentRouter(t)
	rows := sqlmock.NewRows([]string{"page_id", "page_name", "enabled", "description"}).
		AddRow("gallery", "Gallery", false, "")
	mock.ExpectQuery("SELECT (.+) FROM page_configs").WillReturnRows(rows)

	w := get(r, "/api/page-configs")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var configs []content.PageConfig
	require.NoError(t, json.Unmarshal(env.Data, &configs))
	require.Len(t, configs, 1)
	assert.False(t, configs[0].Enabled)
}
