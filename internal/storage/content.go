package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/northpointhomes/siteworks/internal/content"
	"github.com/northpointhomes/siteworks/internal/domain"
)

// ContentRepository provides read access to the editorial content tables and
// persists contact submissions. List methods return every row, published or
// not; visibility and ordering rules are applied by the content package.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new repository instance
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Projects retrieves all projects.
func (r *ContentRepository) Projects(ctx context.Context) ([]content.Project, error) {
	projects := []content.Project{}
	query := `
		SELECT id, slug, title, description, city, category, image_url,
		       featured, active, order_index
		FROM projects
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// Cities retrieves all cities.
func (r *ContentRepository) Cities(ctx context.Context) ([]content.City, error) {
	cities := []content.City{}
	query := `
		SELECT id, slug, name, state, active, order_index
		FROM cities
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &cities, query); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	return cities, nil
}

// packageRow adds the text[] features column to the wire type.
type packageRow struct {
	content.BuildPackage
	RawFeatures pq.StringArray `db:"features"`
}

// Packages retrieves all build packages.
func (r *ContentRepository) Packages(ctx context.Context) ([]content.BuildPackage, error) {
	rows := []packageRow{}
	query := `
		SELECT id, slug, name, description, price_per_sqft, features,
		       featured, active, order_index
		FROM build_packages
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list build packages: %w", err)
	}

	packages := make([]content.BuildPackage, len(rows))
	for i, row := range rows {
		packages[i] = row.BuildPackage
		packages[i].Features = row.RawFeatures
	}

	return packages, nil
}

// Testimonials retrieves all testimonials.
func (r *ContentRepository) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	testimonials := []content.Testimonial{}
	query := `
		SELECT id, author, location, quote, rating, active, order_index
		FROM testimonials
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	return testimonials, nil
}

// Gallery retrieves all gallery items.
func (r *ContentRepository) Gallery(ctx context.Context) ([]content.GalleryItem, error) {
	items := []content.GalleryItem{}
	query := `
		SELECT id, title, category, image_url, active, order_index
		FROM gallery_items
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}

	return items, nil
}

// FAQs retrieves all FAQ entries.
func (r *ContentRepository) FAQs(ctx context.Context) ([]content.FAQ, error) {
	faqs := []content.FAQ{}
	query := `
		SELECT id, question, answer, category, active, order_index
		FROM faqs
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &faqs, query); err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}

	return faqs, nil
}

// Blogs retrieves all blog posts.
func (r *ContentRepository) Blogs(ctx context.Context) ([]content.BlogPost, error) {
	posts := []content.BlogPost{}
	query := `
		SELECT id, slug, title, excerpt, author, category, published_at,
		       featured, active, order_index
		FROM blog_posts
		ORDER BY id ASC
	`

	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}

	return posts, nil
}

// PageConfigs retrieves all page visibility flags.
func (r *ContentRepository) PageConfigs(ctx context.Context) ([]content.PageConfig, error) {
	configs := []content.PageConfig{}
	query := `
		SELECT page_id, page_name, enabled, description
		FROM page_configs
		ORDER BY page_id ASC
	`

	if err := r.db.SelectContext(ctx, &configs, query); err != nil {
		return nil, fmt.Errorf("failed to list page configs: %w", err)
	}

	return configs, nil
}

// CompanySettings retrieves the site-wide company profile. There is a single
// row; ErrNotFound means the table has not been seeded yet.
func (r *ContentRepository) CompanySettings(ctx context.Context) (*content.CompanySettings, error) {
	settings := &content.CompanySettings{}
	query := `
		SELECT company_name, tagline, phone, email, address, office_hours,
		       instagram_url, facebook_url, youtube_url
		FROM company_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, settings, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}

	return settings, nil
}

// SaveContactSubmission persists a contact form entry and fills in its
// generated ID and timestamp.
func (r *ContentRepository) SaveContactSubmission(ctx context.Context, submission *domain.ContactSubmission) error {
	submission.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO contact_submissions (name, email, phone, city, package_slug, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		submission.Name, submission.Email, submission.Phone, submission.City,
		submission.PackageSlug, submission.Message, submission.CreatedAt,
	).Scan(&submission.ID)
	if err != nil {
		return fmt.Errorf("failed to save contact submission: %w", err)
	}

	return nil
}
