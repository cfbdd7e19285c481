// Package content defines the content kinds served by the site, their record
// types, and the shared filter/sort rules applied to every list regardless of
// where the data came from.
package content

import "fmt"

// Kind identifies one fetchable content resource.
type Kind string

// All content kinds.
const (
	KindProjects        Kind = "projects"
	KindCities          Kind = "cities"
	KindPackages        Kind = "packages"
	KindTestimonials    Kind = "testimonials"
	KindGallery         Kind = "gallery"
	KindFAQs            Kind = "faqs"
	KindBlogs           Kind = "blogs"
	KindPageConfigs     Kind = "page-configs"
	KindCompanySettings Kind = "company-settings"
)

// ListKinds returns the kinds that resolve to record lists, in a stable order.
func ListKinds() []Kind {
	return []Kind{
		KindProjects,
		KindCities,
		KindPackages,
		KindTestimonials,
		KindGallery,
		KindFAQs,
		KindBlogs,
		KindPageConfigs,
	}
}

// AllKinds returns every content kind, in a stable order.
func AllKinds() []Kind {
	return append(ListKinds(), KindCompanySettings)
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// SnapshotFile returns the snapshot file name for the kind, e.g. "projects.json".
func (k Kind) SnapshotFile() string {
	return string(k) + ".json"
}

// APIPath returns the remote API path for the kind, e.g. "/api/projects".
func (k Kind) APIPath() string {
	return "/api/" + string(k)
}
