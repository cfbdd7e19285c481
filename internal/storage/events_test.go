package storage_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpointhomes/siteworks/internal/attribution"
	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/storage"
)

func newTestEvent(t *testing.T) domain.AnalyticsEvent {
	t.Helper()

	traffic := attribution.Direct()
	return domain.AnalyticsEvent{
		EventID:   "e-1",
		EventType: domain.EventPageView,
		PagePath:  "/packages",
		PageTitle: "Build Packages",
		SessionID: "1767000000000-a1b2c3d4e5f6",
		Traffic:   &traffic,
		IPAddress: "203.0.113.9",
		CreatedAt: time.Now().UTC(),
	}
}

func TestBuffer_Send(t *testing.T) {
	buf := storage.NewBuffer(10)
	defer buf.Close()

	assert.True(t, buf.Send(newTestEvent(t)), "expected Send to succeed on non-full buffer")
	assert.Equal(t, 1, buf.Len())
}

func TestBuffer_SendFull(t *testing.T) {
	buf := storage.NewBuffer(1)
	defer buf.Close()

	event := newTestEvent(t)

	require.True(t, buf.Send(event), "expected first Send to succeed")
	assert.False(t, buf.Send(event), "expected Send to return false when buffer is full")
}

func TestEventStore_FlushOnStop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO analytics_events").
		WillReturnResult(sqlmock.NewResult(0, 2))

	buf := storage.NewBuffer(10)
	store := storage.NewEventStore(db, buf, logger.NewNop(), time.Minute, 100)
	store.Start()

	require.True(t, buf.Send(newTestEvent(t)))
	require.True(t, buf.Send(newTestEvent(t)))

	// Stop drains the buffer and performs the final flush.
	store.Stop()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventStore_FlushOnThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO analytics_events").
		WillReturnResult(sqlmock.NewResult(0, 2))

	buf := storage.NewBuffer(10)
	store := storage.NewEventStore(db, buf, logger.NewNop(), time.Hour, 2)
	store.Start()
	defer store.Stop()

	require.True(t, buf.Send(newTestEvent(t)))
	require.True(t, buf.Send(newTestEvent(t)))

	// The flush happens on the store goroutine; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if mock.ExpectationsWereMet() == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("batch was not flushed after reaching the threshold")
}
