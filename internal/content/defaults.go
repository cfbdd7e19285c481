package content

// This file is the single source of truth for fallback content. When every
// data source for a kind has failed, these values are served so the site never
// renders a blank page.

// intPtr is a helper for literal order indexes.
func intPtr(v int) *int { return &v }

// DefaultCompanySettings returns the hardcoded company profile used when no
// settings source is reachable.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CompanyName: "Northpoint Homes",
		Tagline:     "Custom homes, built to last",
		Phone:       "+1 (555) 014-2400",
		Email:       "hello@northpointhomes.com",
		Address:     "210 Harbor Ridge Rd, Portland, ME",
		OfficeHours: "Mon-Sat 9:00-18:00",
	}
}

// DefaultCities returns the minimal city list served under total source failure.
func DefaultCities() []City {
	return []City{
		{ID: 1, Slug: "portland", Name: "Portland", State: "ME", Active: true, OrderIndex: intPtr(1)},
		{ID: 2, Slug: "augusta", Name: "Augusta", State: "ME", Active: true, OrderIndex: intPtr(2)},
		{ID: 3, Slug: "bangor", Name: "Bangor", State: "ME", Active: true, OrderIndex: intPtr(3)},
	}
}

// DefaultPackages returns the minimal package list served under total source
// failure.
func DefaultPackages() []BuildPackage {
	return []BuildPackage{
		{
			ID:           1,
			Slug:         "essential",
			Name:         "Essential",
			Description:  "Everything a first home needs, nothing it doesn't.",
			PricePerSqft: 165,
			Active:       true,
			OrderIndex:   intPtr(1),
		},
		{
			ID:           2,
			Slug:         "signature",
			Name:         "Signature",
			Description:  "Our most popular package with upgraded finishes.",
			PricePerSqft: 210,
			Featured:     true,
			Active:       true,
			OrderIndex:   intPtr(2),
		},
	}
}

// DefaultProjects returns the project list served under total source failure.
// Deliberately empty: project pages render their "portfolio coming soon" state.
func DefaultProjects() []Project { return []Project{} }

// DefaultTestimonials returns the fallback testimonial list.
func DefaultTestimonials() []Testimonial { return []Testimonial{} }

// DefaultGallery returns the fallback gallery list.
func DefaultGallery() []GalleryItem { return []GalleryItem{} }

// DefaultFAQs returns the fallback FAQ list.
func DefaultFAQs() []FAQ { return []FAQ{} }

// DefaultBlogs returns the fallback blog list.
func DefaultBlogs() []BlogPost { return []BlogPost{} }

// DefaultPageConfigs returns the fallback page-config list. Empty so that
// every page defaults to enabled (fail-open).
func DefaultPageConfigs() []PageConfig { return []PageConfig{} }
