// Package domain holds the core records shared by handlers, storage, and the
// tracking client.
package domain

import (
	"encoding/json"
	"time"

	"github.com/northpointhomes/siteworks/internal/attribution"
)

// Tracked event types.
const (
	EventSessionStart = "session_start"
	EventPageView     = "page_view"
	EventPageExit     = "page_exit"
	EventLinkClick    = "link_click"
	EventButtonClick  = "button_click"
	EventFormSubmit   = "form_submit"
	EventScrollDepth  = "scroll_depth"
	EventTimeOnPage   = "time_on_page"
)

// AnalyticsEvent is a single behavioral event. Clients construct and send it
// fire-and-forget; the collection endpoint stamps EventID, IPAddress, and
// CreatedAt before persisting.
type AnalyticsEvent struct {
	EventID      string                     `json:"event_id,omitempty"`
	EventType    string                     `json:"event_type"`
	PagePath     string                     `json:"page_path"`
	PageTitle    string                     `json:"page_title,omitempty"`
	Referrer     string                     `json:"referrer,omitempty"`
	UserAgent    string                     `json:"user_agent,omitempty"`
	ScreenWidth  int                        `json:"screen_width,omitempty"`
	ScreenHeight int                        `json:"screen_height,omitempty"`
	Language     string                     `json:"language,omitempty"`
	SessionID    string                     `json:"session_id"`
	UserID       string                     `json:"user_id,omitempty"`
	EventData    json.RawMessage            `json:"event_data,omitempty"`
	DurationMS   int64                      `json:"duration_ms,omitempty"`
	Traffic      *attribution.TrafficSource `json:"traffic_source,omitempty"`
	IPAddress    string                     `json:"-"`
	CreatedAt    time.Time                  `json:"created_at,omitempty"`
}
