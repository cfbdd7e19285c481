package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/logger"
)

const (
	// eventColumns is the number of columns inserted per analytics event row.
	eventColumns = 16

	// insertBatchSize is the maximum number of rows per INSERT statement.
	insertBatchSize = 50

	// flushTimeout is the context timeout for each flush operation.
	flushTimeout = 5 * time.Second
)

// Buffer is a channel-based event buffer for non-blocking analytics ingestion.
type Buffer struct {
	events chan domain.AnalyticsEvent
	closed chan struct{}
	once   sync.Once
}

// NewBuffer creates a buffer with a buffered channel of the given capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		events: make(chan domain.AnalyticsEvent, capacity),
		closed: make(chan struct{}),
	}
}

// Send performs a non-blocking send of an event into the buffer.
// It returns false if the buffer channel is full.
func (b *Buffer) Send(event domain.AnalyticsEvent) bool {
	select {
	case b.events <- event:
		return true
	default:
		return false
	}
}

// Len returns the number of events currently in the buffer channel.
func (b *Buffer) Len() int {
	return len(b.events)
}

// Close signals the buffer to stop accepting events.
// It is safe to call multiple times.
func (b *Buffer) Close() {
	b.once.Do(func() {
		close(b.closed)
	})
}

// EventStore manages buffered writes of analytics events to PostgreSQL.
type EventStore struct {
	db             *sql.DB
	buffer         *Buffer
	log            logger.Logger
	flushInterval  time.Duration
	flushThreshold int
	wg             sync.WaitGroup
}

// NewEventStore creates a store that reads events from buffer and
// batch-inserts them.
func NewEventStore(
	db *sql.DB,
	buffer *Buffer,
	log logger.Logger,
	flushInterval time.Duration,
	flushThreshold int,
) *EventStore {
	return &EventStore{
		db:             db,
		buffer:         buffer,
		log:            log,
		flushInterval:  flushInterval,
		flushThreshold: flushThreshold,
	}
}

// Start launches the background goroutine that reads events and flushes batches.
func (s *EventStore) Start() {
	s.wg.Add(1)
	go s.flushLoop()
}

// Stop signals the buffer to close and waits for the final flush to finish.
func (s *EventStore) Stop() {
	s.buffer.Close()
	s.wg.Wait()
}

// flushLoop reads events from the buffer, accumulates a batch, and flushes
// when the batch reaches flushThreshold or the flushInterval ticker fires.
func (s *EventStore) flushLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.flushInterval)
	defer ticker.Stop()

	batch := make([]domain.AnalyticsEvent, 0, s.flushThreshold)

	for {
		select {
		case event := <-s.buffer.events:
			batch = append(batch, event)
			if len(batch) >= s.flushThreshold {
				s.flush(batch)
				batch = make([]domain.AnalyticsEvent, 0, s.flushThreshold)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = make([]domain.AnalyticsEvent, 0, s.flushThreshold)
			}

		case <-s.buffer.closed:
			s.drain(&batch)
			if len(batch) > 0 {
				s.flush(batch)
			}
			return
		}
	}
}

// drain reads all remaining events from the buffer channel into the batch.
func (s *EventStore) drain(batch *[]domain.AnalyticsEvent) {
	for {
		select {
		case event := <-s.buffer.events:
			*batch = append(*batch, event)
		default:
			return
		}
	}
}

// flush writes a batch of events to PostgreSQL in chunks of insertBatchSize.
func (s *EventStore) flush(batch []domain.AnalyticsEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for start := 0; start < len(batch); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(batch) {
			end = len(batch)
		}

		if err := s.batchInsert(ctx, batch[start:end]); err != nil {
			s.log.Error("Failed to insert analytics events",
				logger.Error(err),
				logger.Int("batch_size", end-start),
			)
		}
	}

	s.log.Debug("Flushed analytics events",
		logger.Int("total", len(batch)),
	)
}

// batchInsert builds and executes a single INSERT statement with multiple
// value tuples.
func (s *EventStore) batchInsert(ctx context.Context, events []domain.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	args := make([]any, 0, len(events)*eventColumns)
	var sb strings.Builder

	sb.WriteString("INSERT INTO analytics_events (event_id, event_type, page_path, " +
		"page_title, referrer, user_agent, screen_width, screen_height, language, " +
		"session_id, user_id, event_data, duration_ms, traffic_source, ip_address, " +
		"created_at) VALUES ")

	for i := range events {
		if i > 0 {
			sb.WriteString(", ")
		}

		writeValueTuple(&sb, i)

		args = append(args,
			events[i].EventID, events[i].EventType, events[i].PagePath,
			events[i].PageTitle, events[i].Referrer, events[i].UserAgent,
			events[i].ScreenWidth, events[i].ScreenHeight, events[i].Language,
			events[i].SessionID, nullString(events[i].UserID), eventData(events[i]),
			events[i].DurationMS, trafficJSON(events[i]), events[i].IPAddress,
			events[i].CreatedAt,
		)
	}

	_, err := s.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return fmt.Errorf("exec batch insert: %w", err)
	}

	return nil
}

// writeValueTuple writes a single ($1, ..., $16) placeholder tuple to the
// builder, offset by the row index.
func writeValueTuple(sb *strings.Builder, rowIndex int) {
	base := rowIndex * eventColumns

	sb.WriteByte('(')
	for col := 1; col <= eventColumns; col++ {
		if col > 1 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "$%d", base+col)
	}
	sb.WriteByte(')')
}

// nullString maps "" to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// eventData returns the raw event payload, or nil for a SQL NULL when absent.
func eventData(event domain.AnalyticsEvent) any {
	if len(event.EventData) == 0 {
		return nil
	}
	return []byte(event.EventData)
}

// trafficJSON encodes the attributed traffic source as a JSONB column value.
func trafficJSON(event domain.AnalyticsEvent) any {
	if event.Traffic == nil {
		return nil
	}

	data, err := json.Marshal(event.Traffic)
	if err != nil {
		return nil
	}
	return data
}
