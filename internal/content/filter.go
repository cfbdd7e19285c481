package content

import "sort"

// Filter narrows a content list. The zero value applies no narrowing.
type Filter struct {
	// ActiveOnly drops records whose active flag is false.
	ActiveOnly bool
	// FeaturedOnly drops records that are not featured. Kinds without a
	// featured flag return no records under this filter.
	FeaturedOnly bool
	// Category keeps records matching the category slug or name exactly.
	Category string
	// Limit is a prefix-take applied after sorting and filtering. Zero means
	// no limit.
	Limit int
}

// ActiveFilter is the common case: published records only.
var ActiveFilter = Filter{ActiveOnly: true}

// Apply filters and sorts a content list. Records are returned ascending by
// effective order index; the sort is stable so ties preserve input order.
func Apply[T Record](items []T, f Filter) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if f.ActiveOnly && !item.IsActive() {
			continue
		}
		if f.FeaturedOnly && !isFeatured(item) {
			continue
		}
		if f.Category != "" && !matchesCategory(item, f.Category) {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveOrder() < out[j].EffectiveOrder()
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return out
}

func isFeatured[T Record](item T) bool {
	fr, ok := any(item).(featurable)
	return ok && fr.IsFeatured()
}

func matchesCategory[T Record](item T, category string) bool {
	cm, ok := any(item).(categorized)
	return ok && cm.MatchesCategory(category)
}
