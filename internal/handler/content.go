// Package handler holds the gin HTTP handlers for the public site API.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/resolver"
	"github.com/northpointhomes/siteworks/internal/storage"
)

// ContentHandler serves the editorial content endpoints. The database is the
// primary source; when it fails the handler falls through to the resolver's
// snapshot-and-defaults chain, so these endpoints never return a 5xx for a
// data-source outage.
type ContentHandler struct {
	repo     *storage.ContentRepository
	fallback *resolver.Resolver
	log      logger.Logger
}

// NewContentHandler creates a ContentHandler with the given dependencies.
func NewContentHandler(
	repo *storage.ContentRepository,
	fallback *resolver.Resolver,
	log logger.Logger,
) *ContentHandler {
	return &ContentHandler{
		repo:     repo,
		fallback: fallback,
		log:      log,
	}
}

// Projects serves GET /api/projects.
func (h *ContentHandler) Projects(c *gin.Context) {
	respondList(c, h, "projects", h.repo.Projects, h.fallback.Projects)
}

// Cities serves GET /api/cities.
func (h *ContentHandler) Cities(c *gin.Context) {
	respondList(c, h, "cities", h.repo.Cities, h.fallback.Cities)
}

// Packages serves GET /api/packages.
func (h *ContentHandler) Packages(c *gin.Context) {
	respondList(c, h, "packages", h.repo.Packages, h.fallback.Packages)
}

// Testimonials serves GET /api/testimonials.
func (h *ContentHandler) Testimonials(c *gin.Context) {
	respondList(c, h, "testimonials", h.repo.Testimonials, h.fallback.Testimonials)
}

// Gallery serves GET /api/gallery.
func (h *ContentHandler) Gallery(c *gin.Context) {
	respondList(c, h, "gallery", h.repo.Gallery, h.fallback.Gallery)
}

// FAQs serves GET /api/faqs.
func (h *ContentHandler) FAQs(c *gin.Context) {
	respondList(c, h, "faqs", h.repo.FAQs, h.fallback.FAQs)
}

// Blogs serves GET /api/blogs.
func (h *ContentHandler) Blogs(c *gin.Context) {
	respondList(c, h, "blogs", h.repo.Blogs, h.fallback.Blogs)
}

// PageConfigs serves GET /api/page-configs. Visibility flags are served
// verbatim; disabled pages stay in the list.
func (h *ContentHandler) PageConfigs(c *gin.Context) {
	configs, err := h.repo.PageConfigs(c.Request.Context())
	if err != nil {
		h.log.Warn("Page config query failed, using fallback chain", logger.Error(err))
		configs = h.fallback.PageConfigs(c.Request.Context())
	}

	respondData(c, configs, len(configs))
}

// CompanySettings serves GET /api/company-settings. The response is a single
// object; an unseeded or failing database yields the built-in profile.
func (h *ContentHandler) CompanySettings(c *gin.Context) {
	settings, err := h.repo.CompanySettings(c.Request.Context())
	if err != nil {
		h.log.Warn("Company settings query failed, using fallback chain", logger.Error(err))
		fallback := h.fallback.CompanySettings(c.Request.Context())
		settings = &fallback
	}

	respondData(c, settings, 1)
}

// respondList runs one list endpoint: parse the filter, query the database,
// fall through to the resolver chain on failure, and respond enveloped.
func respondList[T content.Record](
	c *gin.Context,
	h *ContentHandler,
	kind string,
	fromRepo func(context.Context) ([]T, error),
	fromFallback func(context.Context, content.Filter) []T,
) {
	ctx := c.Request.Context()
	filter := parseFilter(c)

	items, err := fromRepo(ctx)
	if err != nil {
		h.log.Warn("Content query failed, using fallback chain",
			logger.String("kind", kind),
			logger.Error(err),
		)
		respondItems(c, fromFallback(ctx, filter))
		return
	}

	respondItems(c, content.Apply(items, filter))
}

// parseFilter reads the list query parameters. Public endpoints serve
// published records only; there is no way to request inactive rows.
func parseFilter(c *gin.Context) content.Filter {
	filter := content.Filter{
		ActiveOnly:   true,
		FeaturedOnly: c.Query("featured") == "true",
		Category:     c.Query("category"),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	return filter
}

func respondItems[T content.Record](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	respondData(c, items, len(items))
}

// respondData writes the standard {success, data, count} envelope.
func respondData(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   count,
	})
}
