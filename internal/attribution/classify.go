// Package attribution classifies how a visitor arrived at the site. The
// classification is a pure function of the referrer and the landing URL and
// is computed once per page view.
package attribution

import (
	"net/url"
	"strings"
)

// Traffic categories.
const (
	CategoryDirect       = "Direct"
	CategorySocial       = "Social Media"
	CategorySearchEngine = "Search Engine"
	CategoryPaidSearch   = "Paid Search"
	CategoryEmail        = "Email"
	CategoryDisplay      = "Display"
	CategoryAffiliate    = "Affiliate"
	CategoryReferral     = "Referral"
)

// TrafficSource records where a page view came from. Immutable once computed.
type TrafficSource struct {
	Source      string `json:"source"`
	Medium      string `json:"medium"`
	Category    string `json:"category"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
}

// Direct is the default classification: no referrer, no campaign tags.
func Direct() TrafficSource {
	return TrafficSource{Source: "direct", Medium: "none", Category: CategoryDirect}
}

// socialSources are utm_source values that indicate a social platform.
var socialSources = map[string]bool{
	"instagram": true,
	"facebook":  true,
	"fb":        true,
	"youtube":   true,
	"twitter":   true,
	"linkedin":  true,
	"tiktok":    true,
	"pinterest": true,
}

// searchSources are utm_source values that indicate a search engine.
var searchSources = map[string]bool{
	"google":     true,
	"bing":       true,
	"yahoo":      true,
	"duckduckgo": true,
}

// paidMediums are utm_medium values that indicate paid search.
var paidMediums = map[string]bool{
	"cpc": true,
	"ppc": true,
}

// displayMediums are utm_medium values that indicate display advertising.
var displayMediums = map[string]bool{
	"display": true,
	"banner":  true,
	"cpm":     true,
}

// platformEntry is a known referrer platform.
type platformEntry struct {
	source   string
	medium   string
	category string
}

// knownPlatforms maps referrer hostnames (www-stripped) to their
// classification. Google is handled separately for the gclid case.
var knownPlatforms = map[string]platformEntry{
	"instagram.com": {"instagram", "social", CategorySocial},
	"facebook.com":  {"facebook", "social", CategorySocial},
	"fb.com":        {"facebook", "social", CategorySocial},
	"youtube.com":   {"youtube", "social", CategorySocial},
	"youtu.be":      {"youtube", "social", CategorySocial},
	"twitter.com":   {"twitter", "social", CategorySocial},
	"x.com":         {"twitter", "social", CategorySocial},
	"linkedin.com":  {"linkedin", "social", CategorySocial},
	"tiktok.com":    {"tiktok", "social", CategorySocial},
	"pinterest.com": {"pinterest", "social", CategorySocial},
	"bing.com":      {"bing", "organic", CategorySearchEngine},
	"yahoo.com":     {"yahoo", "organic", CategorySearchEngine},
	"duckduckgo.com": {
		"duckduckgo", "organic", CategorySearchEngine,
	},
}

// Classify derives the traffic source for a page view. UTM parameters on the
// landing URL win over the referrer; a same-host referrer is internal
// navigation and counts as direct. Malformed input classifies as direct
// rather than failing.
func Classify(referrer, currentURL string) TrafficSource {
	current, err := url.Parse(currentURL)
	if err != nil {
		return Direct()
	}

	if ts, ok := classifyUTM(current); ok {
		return ts
	}

	if referrer == "" {
		return Direct()
	}

	ref, err := url.Parse(referrer)
	if err != nil || ref.Hostname() == "" {
		return Direct()
	}

	refHost := stripWWW(ref.Hostname())
	if refHost == stripWWW(current.Hostname()) {
		return Direct()
	}

	if isGoogleHost(refHost) {
		if ref.Query().Get("gclid") != "" {
			return TrafficSource{Source: "google", Medium: "cpc", Category: CategoryPaidSearch}
		}
		return TrafficSource{Source: "google", Medium: "organic", Category: CategorySearchEngine}
	}

	if entry, ok := lookupPlatform(refHost); ok {
		return TrafficSource{Source: entry.source, Medium: entry.medium, Category: entry.category}
	}

	return TrafficSource{Source: refHost, Medium: "referral", Category: CategoryReferral}
}

// classifyUTM classifies from UTM query parameters. Returns false when no
// utm_source is present.
func classifyUTM(current *url.URL) (TrafficSource, bool) {
	q := current.Query()
	source := q.Get("utm_source")
	if source == "" {
		return TrafficSource{}, false
	}

	medium := q.Get("utm_medium")

	ts := TrafficSource{
		Source:      source,
		Medium:      medium,
		Category:    utmCategory(strings.ToLower(source), strings.ToLower(medium)),
		UTMSource:   source,
		UTMMedium:   medium,
		UTMCampaign: q.Get("utm_campaign"),
		UTMTerm:     q.Get("utm_term"),
		UTMContent:  q.Get("utm_content"),
	}
	return ts, true
}

// utmCategory applies the UTM category rules; first match wins.
func utmCategory(source, medium string) string {
	switch {
	case socialSources[source]:
		return CategorySocial
	case searchSources[source]:
		if paidMediums[medium] {
			return CategoryPaidSearch
		}
		return CategorySearchEngine
	case medium == "email" || strings.Contains(source, "email"):
		return CategoryEmail
	case displayMediums[medium]:
		return CategoryDisplay
	case medium == "affiliate" || strings.Contains(source, "affiliate"):
		return CategoryAffiliate
	default:
		return CategoryReferral
	}
}

// lookupPlatform matches a hostname against the known platform table,
// including subdomains (m.facebook.com matches facebook.com).
func lookupPlatform(host string) (platformEntry, bool) {
	if entry, ok := knownPlatforms[host]; ok {
		return entry, true
	}
	for domain, entry := range knownPlatforms {
		if strings.HasSuffix(host, "."+domain) {
			return entry, true
		}
	}
	return platformEntry{}, false
}

// isGoogleHost matches google.com and its country domains (google.de,
// google.co.uk).
func isGoogleHost(host string) bool {
	return host == "google.com" || strings.HasPrefix(host, "google.")
}

// stripWWW removes a leading "www." from a hostname.
func stripWWW(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
