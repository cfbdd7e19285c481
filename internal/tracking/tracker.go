package tracking

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/northpointhomes/siteworks/internal/attribution"
	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/logger"
)

// scrollMilestones are the depth percentages reported once per page view.
var scrollMilestones = [4]int{25, 50, 75, 100}

// dwellInterval is how often dwell time is reported.
const dwellInterval = 30 * time.Second

// Config holds the per-client tracking settings.
type Config struct {
	// CanonicalOrigin gates all emission: page views on any other origin
	// suppress the whole pipeline, so staging and local mirrors stay out of
	// production analytics.
	CanonicalOrigin string
	// Client hints attached to every event.
	UserAgent    string
	ScreenWidth  int
	ScreenHeight int
	Language     string
}

// Tracker observes navigation and interaction and emits analytics events.
// Every public method is safe to call from event handlers: a tracking
// failure never propagates to the caller.
type Tracker struct {
	mu         sync.Mutex
	dispatcher Dispatcher
	session    *Session
	cfg        Config
	log        logger.Logger
	now        func() time.Time

	active         bool
	sessionStarted bool
	currentPath    string
	currentTitle   string
	referrer       string
	pageStart      time.Time
	firedDepths    map[int]bool
	dwellTicks     int
}

// NewTracker creates a tracker. Nothing is emitted until the first PageView.
func NewTracker(dispatcher Dispatcher, session *Session, cfg Config, log logger.Logger) *Tracker {
	return &Tracker{
		dispatcher:  dispatcher,
		session:     session,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
		firedDepths: make(map[int]bool),
	}
}

// PageView records a navigation to pageURL. The first call also emits
// session_start; navigating away from a tracked page emits its page_exit.
// Repeat calls for the same path are ignored.
func (t *Tracker) PageView(pageURL, title, referrer string) {
	defer t.recovered("page_view")
	t.mu.Lock()
	defer t.mu.Unlock()

	parsed, err := url.Parse(pageURL)
	if err != nil || !t.originAllowed(parsed) {
		t.active = false
		return
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if t.active && path == t.currentPath {
		return
	}

	if t.active {
		t.emitPageExit(false)
	}

	traffic := attribution.Classify(referrer, pageURL)

	t.active = true
	t.currentPath = path
	t.currentTitle = title
	t.referrer = referrer
	t.pageStart = t.now()
	t.firedDepths = make(map[int]bool)
	t.dwellTicks = 0

	if !t.sessionStarted {
		t.sessionStarted = true
		start := t.newEvent(domain.EventSessionStart)
		start.Traffic = &traffic
		t.dispatcher.Dispatch(start)
	}

	view := t.newEvent(domain.EventPageView)
	view.Traffic = &traffic
	t.dispatcher.Dispatch(view)
}

// LinkClick records a click on a link.
func (t *Tracker) LinkClick(label, href string) {
	t.click(domain.EventLinkClick, label, href)
}

// ButtonClick records a click on a button.
func (t *Tracker) ButtonClick(label string) {
	t.click(domain.EventButtonClick, label, "")
}

func (t *Tracker) click(eventType, label, href string) {
	defer t.recovered(eventType)
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	event := t.newEvent(eventType)
	event.EventData = marshalData(map[string]string{"label": label, "href": href})
	t.dispatcher.Dispatch(event)
}

// FormSubmit records a form submission.
func (t *Tracker) FormSubmit(formID string) {
	defer t.recovered(domain.EventFormSubmit)
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	event := t.newEvent(domain.EventFormSubmit)
	event.EventData = marshalData(map[string]string{"form_id": formID})
	t.dispatcher.Dispatch(event)
}

// Scroll records the current scroll depth percentage. Each milestone in
// {25, 50, 75, 100} fires once per page view, however it is crossed.
func (t *Tracker) Scroll(percent int) {
	defer t.recovered(domain.EventScrollDepth)
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	for _, milestone := range scrollMilestones {
		if percent < milestone || t.firedDepths[milestone] {
			continue
		}
		t.firedDepths[milestone] = true

		event := t.newEvent(domain.EventScrollDepth)
		event.EventData = marshalData(map[string]int{"depth": milestone})
		t.dispatcher.Dispatch(event)
	}
}

// Run emits dwell-time events every 30 seconds until the context is
// cancelled. Register it once per tracker lifetime.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(dwellInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.timeOnPage()
		}
	}
}

// timeOnPage emits an accumulated dwell event at an exact 30-second multiple.
func (t *Tracker) timeOnPage() {
	defer t.recovered(domain.EventTimeOnPage)
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	t.dwellTicks++
	event := t.newEvent(domain.EventTimeOnPage)
	event.DurationMS = int64(t.dwellTicks) * dwellInterval.Milliseconds()
	t.dispatcher.Dispatch(event)
}

// Close emits the final page_exit synchronously (the unload-safe path) and
// deactivates the tracker.
func (t *Tracker) Close() {
	defer t.recovered(domain.EventPageExit)
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}

	t.emitPageExit(true)
	t.active = false
}

// emitPageExit sends a page_exit for the current page with its dwell
// duration. Callers hold the lock.
func (t *Tracker) emitPageExit(sync bool) {
	event := t.newEvent(domain.EventPageExit)
	event.DurationMS = t.now().Sub(t.pageStart).Milliseconds()

	if sync {
		t.dispatcher.DispatchSync(event)
		return
	}
	t.dispatcher.Dispatch(event)
}

// newEvent builds an event for the current page and session. Callers hold
// the lock.
func (t *Tracker) newEvent(eventType string) domain.AnalyticsEvent {
	return domain.AnalyticsEvent{
		EventType:    eventType,
		PagePath:     t.currentPath,
		PageTitle:    t.currentTitle,
		Referrer:     t.referrer,
		UserAgent:    t.cfg.UserAgent,
		ScreenWidth:  t.cfg.ScreenWidth,
		ScreenHeight: t.cfg.ScreenHeight,
		Language:     t.cfg.Language,
		SessionID:    t.session.SessionID(),
		UserID:       t.session.UserID(),
		CreatedAt:    t.now().UTC(),
	}
}

// originAllowed compares the page origin against the canonical tracking
// origin.
func (t *Tracker) originAllowed(page *url.URL) bool {
	if t.cfg.CanonicalOrigin == "" {
		return false
	}

	canonical, err := url.Parse(t.cfg.CanonicalOrigin)
	if err != nil {
		return false
	}

	return strings.EqualFold(page.Scheme, canonical.Scheme) &&
		strings.EqualFold(page.Host, canonical.Host)
}

// recovered swallows panics from tracking internals so a tracking bug never
// breaks the interaction that triggered it.
func (t *Tracker) recovered(eventType string) {
	if r := recover(); r != nil {
		t.log.Debug("Tracking call panicked",
			logger.String("event_type", eventType),
			logger.Any("panic", r),
		)
	}
}

// marshalData encodes event payload data, dropping it on failure.
func marshalData(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
