package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/logger"
)

// dispatchTimeout bounds a single delivery attempt.
const dispatchTimeout = 5 * time.Second

// Dispatcher delivers events to the collection endpoint. Both methods are
// best-effort: they never return an error and never retry.
type Dispatcher interface {
	// Dispatch delivers asynchronously. The caller is never blocked on the
	// network.
	Dispatch(event domain.AnalyticsEvent)
	// DispatchSync delivers inline. Used on teardown, when an async send
	// would be abandoned; the response is still ignored.
	DispatchSync(event domain.AnalyticsEvent)
}

// HTTPDispatcher posts events as JSON to the collection endpoint.
type HTTPDispatcher struct {
	endpoint string
	client   *http.Client
	log      logger.Logger
}

// NewHTTPDispatcher creates a dispatcher for the given collection endpoint.
func NewHTTPDispatcher(endpoint string, client *http.Client, log logger.Logger) *HTTPDispatcher {
	return &HTTPDispatcher{
		endpoint: endpoint,
		client:   client,
		log:      log,
	}
}

// Dispatch delivers the event in a goroutine; failures are swallowed.
func (d *HTTPDispatcher) Dispatch(event domain.AnalyticsEvent) {
	go d.send(event)
}

// DispatchSync delivers the event inline; failures are swallowed.
func (d *HTTPDispatcher) DispatchSync(event domain.AnalyticsEvent) {
	d.send(event)
}

// send posts one event. Errors are logged at debug level only; analytics
// delivery must never surface a failure.
func (d *HTTPDispatcher) send(event domain.AnalyticsEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Debug("Event dispatch panicked", logger.Any("panic", r))
		}
	}()

	body, err := json.Marshal(event)
	if err != nil {
		d.log.Debug("Event encode failed", logger.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		d.log.Debug("Event request build failed", logger.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Debug("Event delivery failed",
			logger.String("event_type", event.EventType),
			logger.Error(err),
		)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		d.log.Debug("Event delivery rejected",
			logger.String("event_type", event.EventType),
			logger.Int("status", resp.StatusCode),
		)
	}
}
