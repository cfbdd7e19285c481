package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/middleware"
	"github.com/northpointhomes/siteworks/internal/storage"
)

// maxAnalyticsBody caps the collection request size.
const maxAnalyticsBody = 64 * 1024

// AnalyticsHandler ingests behavioral events from the tracking client.
type AnalyticsHandler struct {
	buffer *storage.Buffer
	log    logger.Logger
}

// NewAnalyticsHandler creates an AnalyticsHandler writing into buffer.
func NewAnalyticsHandler(buffer *storage.Buffer, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		buffer: buffer,
		log:    log,
	}
}

// Collect serves POST /api/analytics. The body is a single event object or an
// array of events. Accepted events are stamped and enqueued; ingestion is
// best-effort, so a full buffer drops events rather than failing the request.
func (h *AnalyticsHandler) Collect(c *gin.Context) {
	// Crawler traffic is acknowledged but never recorded.
	if c.GetBool(middleware.BotFlagKey) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"accepted": 0}})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAnalyticsBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable body"})
		return
	}

	events, err := decodeEvents(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed event payload"})
		return
	}

	accepted := 0
	for i := range events {
		if events[i].EventType == "" || events[i].SessionID == "" {
			continue
		}

		events[i].EventID = uuid.NewString()
		events[i].IPAddress = c.ClientIP()
		if events[i].CreatedAt.IsZero() {
			events[i].CreatedAt = time.Now().UTC()
		}

		if !h.buffer.Send(events[i]) {
			h.log.Warn("Analytics buffer full, dropping event",
				logger.String("event_type", events[i].EventType),
			)
			continue
		}
		accepted++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"accepted": accepted},
	})
}

// decodeEvents parses a single event or an array of events.
func decodeEvents(body []byte) ([]domain.AnalyticsEvent, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []domain.AnalyticsEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
		return events, nil
	}

	var event domain.AnalyticsEvent
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return nil, err
	}
	return []domain.AnalyticsEvent{event}, nil
}
