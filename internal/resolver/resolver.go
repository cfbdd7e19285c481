// Package resolver is the content access layer for page rendering and the
// operational tooling. It hides whether content comes from the remote API or
// a static snapshot, and it never lets a data-source failure surface to a
// caller: every operation returns its documented default instead.
package resolver

import (
	"context"
	"encoding/json"

	"github.com/northpointhomes/siteworks/internal/config"
	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/httpclient"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/retry"
)

// Source provides raw content documents for a kind.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Fetch returns the raw JSON document for the kind.
	Fetch(ctx context.Context, kind content.Kind) ([]byte, error)
}

// Resolver resolves typed content through an ordered source chain. The chain
// is fixed at construction: api mode tries the remote API first and falls
// back to the static snapshot; static mode reads the snapshot only. The
// per-kind defaults table is the final tier.
type Resolver struct {
	sources []Source
	log     logger.Logger
}

// New creates a Resolver for the configured content mode.
func New(cfg config.ContentConfig, log logger.Logger) *Resolver {
	staticSrc := NewStaticSource(
		cfg.SnapshotDir,
		cfg.SnapshotBaseURL,
		httpclient.NewWithTimeout(cfg.RequestTimeout),
	)

	if cfg.Mode == config.ContentModeAPI {
		retryCfg := retry.Config{
			MaxAttempts:  cfg.MaxAttempts,
			InitialDelay: cfg.RetryDelay,
		}
		apiSrc := NewAPISource(
			cfg.APIBaseURL,
			httpclient.New(nil),
			cfg.RequestTimeout,
			cfg.SettingsTimeout,
			retryCfg,
			log,
		)
		return NewWithSources(log, apiSrc, staticSrc)
	}

	return NewWithSources(log, staticSrc)
}

// NewWithSources creates a Resolver over an explicit source chain. Used by
// tests and the snapshot tooling.
func NewWithSources(log logger.Logger, sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		log:     log,
	}
}

// Projects resolves the project list.
func (r *Resolver) Projects(ctx context.Context, f content.Filter) []content.Project {
	return resolveList(r, ctx, content.KindProjects, f, content.DefaultProjects)
}

// Cities resolves the city list.
func (r *Resolver) Cities(ctx context.Context, f content.Filter) []content.City {
	return resolveList(r, ctx, content.KindCities, f, content.DefaultCities)
}

// Packages resolves the build package list.
func (r *Resolver) Packages(ctx context.Context, f content.Filter) []content.BuildPackage {
	return resolveList(r, ctx, content.KindPackages, f, content.DefaultPackages)
}

// Testimonials resolves the testimonial list.
func (r *Resolver) Testimonials(ctx context.Context, f content.Filter) []content.Testimonial {
	return resolveList(r, ctx, content.KindTestimonials, f, content.DefaultTestimonials)
}

// Gallery resolves the gallery list.
func (r *Resolver) Gallery(ctx context.Context, f content.Filter) []content.GalleryItem {
	return resolveList(r, ctx, content.KindGallery, f, content.DefaultGallery)
}

// FAQs resolves the FAQ list.
func (r *Resolver) FAQs(ctx context.Context, f content.Filter) []content.FAQ {
	return resolveList(r, ctx, content.KindFAQs, f, content.DefaultFAQs)
}

// Blogs resolves the blog post list.
func (r *Resolver) Blogs(ctx context.Context, f content.Filter) []content.BlogPost {
	return resolveList(r, ctx, content.KindBlogs, f, content.DefaultBlogs)
}

// PageConfigs resolves the page-config list.
func (r *Resolver) PageConfigs(ctx context.Context) []content.PageConfig {
	return resolveList(r, ctx, content.KindPageConfigs, content.Filter{}, content.DefaultPageConfigs)
}

// CompanySettings resolves the company settings object.
func (r *Resolver) CompanySettings(ctx context.Context) content.CompanySettings {
	raw, ok := r.fetchPayload(ctx, content.KindCompanySettings)
	if ok {
		var settings content.CompanySettings
		if err := json.Unmarshal(raw, &settings); err == nil {
			return settings
		}
		r.log.Warn("Malformed company settings payload, using defaults")
	}
	return content.DefaultCompanySettings()
}

// IsPageEnabled reports whether a page is enabled. Pages without a config
// record default to enabled (fail-open).
func (r *Resolver) IsPageEnabled(ctx context.Context, pageID string) bool {
	for _, pc := range r.PageConfigs(ctx) {
		if pc.PageID == pageID {
			return pc.Enabled
		}
	}
	return true
}

// Raw resolves the unparsed payload for a kind through the source chain.
// Used by the snapshot tooling; returns false on total failure.
func (r *Resolver) Raw(ctx context.Context, kind content.Kind) ([]byte, bool) {
	return r.fetchPayload(ctx, kind)
}

// resolveList walks the source chain, decoding the first payload that
// parses. A malformed payload counts as a source failure. Filters and the
// order sort apply uniformly, including to the defaults tier.
func resolveList[T content.Record](
	r *Resolver,
	ctx context.Context,
	kind content.Kind,
	f content.Filter,
	defaults func() []T,
) []T {
	for _, src := range r.sources {
		raw, err := src.Fetch(ctx, kind)
		if err != nil {
			r.log.Warn("Content source failed",
				logger.String("source", src.Name()),
				logger.String("kind", string(kind)),
				logger.Error(err),
			)
			continue
		}

		var items []T
		if err := json.Unmarshal(payloadOf(raw), &items); err != nil {
			r.log.Warn("Malformed content payload",
				logger.String("source", src.Name()),
				logger.String("kind", string(kind)),
				logger.Error(err),
			)
			continue
		}

		return content.Apply(items, f)
	}

	return content.Apply(defaults(), f)
}

// fetchPayload walks the source chain and returns the first payload fetched.
func (r *Resolver) fetchPayload(ctx context.Context, kind content.Kind) ([]byte, bool) {
	for _, src := range r.sources {
		raw, err := src.Fetch(ctx, kind)
		if err != nil {
			r.log.Warn("Content source failed",
				logger.String("source", src.Name()),
				logger.String("kind", string(kind)),
				logger.Error(err),
			)
			continue
		}
		return payloadOf(raw), true
	}
	return nil, false
}

// envelope is the standard API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

// payloadOf unwraps the {success, data, count} envelope. Bare documents
// (hand-written snapshots) pass through unchanged.
func payloadOf(raw []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return env.Data
	}
	return raw
}
