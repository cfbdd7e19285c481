package content

import "time"

// UnorderedSentinel is the effective order index for records without one, so
// unordered items always sort last.
const UnorderedSentinel = 999

// Record is implemented by every list record type. The order index and active
// flag drive the uniform sort/filter rules in Apply.
type Record interface {
	// EffectiveOrder returns the sort key, UnorderedSentinel when unset.
	EffectiveOrder() int
	// IsActive reports whether the record is published.
	IsActive() bool
}

// featurable is implemented by record types that carry a featured flag.
type featurable interface {
	IsFeatured() bool
}

// categorized is implemented by record types that can match a category filter.
type categorized interface {
	MatchesCategory(category string) bool
}

// effectiveOrder resolves an optional order index to its sort key.
func effectiveOrder(idx *int) int {
	if idx == nil {
		return UnorderedSentinel
	}
	return *idx
}

// Project is a completed or in-progress construction project.
type Project struct {
	ID          int64  `db:"id"           json:"id"`
	Slug        string `db:"slug"         json:"slug"`
	Title       string `db:"title"        json:"title"`
	Description string `db:"description"  json:"description"`
	City        string `db:"city"         json:"city"`
	Category    string `db:"category"     json:"category"`
	ImageURL    string `db:"image_url"    json:"image_url"`
	Featured    bool   `db:"featured"     json:"featured"`
	Active      bool   `db:"active"       json:"active"`
	OrderIndex  *int   `db:"order_index"  json:"order_index,omitempty"`
}

func (p Project) EffectiveOrder() int { return effectiveOrder(p.OrderIndex) }
func (p Project) IsActive() bool      { return p.Active }
func (p Project) IsFeatured() bool    { return p.Featured }

// MatchesCategory matches on the project category slug or the city name.
func (p Project) MatchesCategory(category string) bool {
	return p.Category == category || p.City == category
}

// City is a location the company builds in.
type City struct {
	ID         int64  `db:"id"          json:"id"`
	Slug       string `db:"slug"        json:"slug"`
	Name       string `db:"name"        json:"name"`
	State      string `db:"state"       json:"state"`
	Active     bool   `db:"active"      json:"active"`
	OrderIndex *int   `db:"order_index" json:"order_index,omitempty"`
}

func (c City) EffectiveOrder() int { return effectiveOrder(c.OrderIndex) }
func (c City) IsActive() bool      { return c.Active }

// MatchesCategory matches on the city slug or name.
func (c City) MatchesCategory(category string) bool {
	return c.Slug == category || c.Name == category
}

// BuildPackage is a construction package offering.
type BuildPackage struct {
	ID           int64    `db:"id"             json:"id"`
	Slug         string   `db:"slug"           json:"slug"`
	Name         string   `db:"name"           json:"name"`
	Description  string   `db:"description"    json:"description"`
	PricePerSqft int      `db:"price_per_sqft" json:"price_per_sqft"`
	Featured     bool     `db:"featured"       json:"featured"`
	Active       bool     `db:"active"         json:"active"`
	OrderIndex   *int     `db:"order_index"    json:"order_index,omitempty"`
	Features     []string `db:"-"              json:"features,omitempty"`
}

func (b BuildPackage) EffectiveOrder() int { return effectiveOrder(b.OrderIndex) }
func (b BuildPackage) IsActive() bool      { return b.Active }
func (b BuildPackage) IsFeatured() bool    { return b.Featured }

// Testimonial is a customer quote.
type Testimonial struct {
	ID         int64  `db:"id"          json:"id"`
	Author     string `db:"author"      json:"author"`
	Location   string `db:"location"    json:"location"`
	Quote      string `db:"quote"       json:"quote"`
	Rating     int    `db:"rating"      json:"rating"`
	Active     bool   `db:"active"      json:"active"`
	OrderIndex *int   `db:"order_index" json:"order_index,omitempty"`
}

func (t Testimonial) EffectiveOrder() int { return effectiveOrder(t.OrderIndex) }
func (t Testimonial) IsActive() bool      { return t.Active }

// GalleryItem is a single gallery image.
type GalleryItem struct {
	ID         int64  `db:"id"          json:"id"`
	Title      string `db:"title"       json:"title"`
	Category   string `db:"category"    json:"category"`
	ImageURL   string `db:"image_url"   json:"image_url"`
	Active     bool   `db:"active"      json:"active"`
	OrderIndex *int   `db:"order_index" json:"order_index,omitempty"`
}

func (g GalleryItem) EffectiveOrder() int { return effectiveOrder(g.OrderIndex) }
func (g GalleryItem) IsActive() bool      { return g.Active }

func (g GalleryItem) MatchesCategory(category string) bool {
	return g.Category == category
}

// FAQ is a frequently asked question.
type FAQ struct {
	ID         int64  `db:"id"          json:"id"`
	Question   string `db:"question"    json:"question"`
	Answer     string `db:"answer"      json:"answer"`
	Category   string `db:"category"    json:"category"`
	Active     bool   `db:"active"      json:"active"`
	OrderIndex *int   `db:"order_index" json:"order_index,omitempty"`
}

func (f FAQ) EffectiveOrder() int { return effectiveOrder(f.OrderIndex) }
func (f FAQ) IsActive() bool      { return f.Active }

func (f FAQ) MatchesCategory(category string) bool {
	return f.Category == category
}

// BlogPost is a published article.
type BlogPost struct {
	ID          int64      `db:"id"           json:"id"`
	Slug        string     `db:"slug"         json:"slug"`
	Title       string     `db:"title"        json:"title"`
	Excerpt     string     `db:"excerpt"      json:"excerpt"`
	Author      string     `db:"author"       json:"author"`
	Category    string     `db:"category"     json:"category"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	Featured    bool       `db:"featured"     json:"featured"`
	Active      bool       `db:"active"       json:"active"`
	OrderIndex  *int       `db:"order_index"  json:"order_index,omitempty"`
}

func (b BlogPost) EffectiveOrder() int { return effectiveOrder(b.OrderIndex) }
func (b BlogPost) IsActive() bool      { return b.Active }
func (b BlogPost) IsFeatured() bool    { return b.Featured }

func (b BlogPost) MatchesCategory(category string) bool {
	return b.Category == category
}

// PageConfig gates page visibility. Truth lives in an external dashboard;
// this system only reads it.
type PageConfig struct {
	PageID      string `db:"page_id"     json:"page_id"`
	PageName    string `db:"page_name"   json:"page_name"`
	Enabled     bool   `db:"enabled"     json:"enabled"`
	Description string `db:"description" json:"description,omitempty"`
}

// PageConfig records are not ordered; they sort by insertion order.
func (p PageConfig) EffectiveOrder() int { return UnorderedSentinel }
func (p PageConfig) IsActive() bool      { return true }

// CompanySettings holds the site-wide company profile.
type CompanySettings struct {
	CompanyName  string `db:"company_name"  json:"company_name"`
	Tagline      string `db:"tagline"       json:"tagline"`
	Phone        string `db:"phone"         json:"phone"`
	Email        string `db:"email"         json:"email"`
	Address      string `db:"address"       json:"address"`
	OfficeHours  string `db:"office_hours"  json:"office_hours"`
	InstagramURL string `db:"instagram_url" json:"instagram_url,omitempty"`
	FacebookURL  string `db:"facebook_url"  json:"facebook_url,omitempty"`
	YouTubeURL   string `db:"youtube_url"   json:"youtube_url,omitempty"`
}
