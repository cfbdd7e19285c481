package tracking

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northpointhomes/siteworks/internal/domain"
	"github.com/northpointhomes/siteworks/internal/handler"
	"github.com/northpointhomes/siteworks/internal/logger"
	"github.com/northpointhomes/siteworks/internal/middleware"
	"github.com/northpointhomes/siteworks/internal/storage"
)

// captureLogger records log messages so tests can assert on them.
type captureLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *captureLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *captureLogger) logged(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}
	return false
}

func (l *captureLogger) Debug(msg string, _ ...logger.Field) { l.record(msg) }
func (l *captureLogger) Info(msg string, _ ...logger.Field) { l.record(msg) }
func (l *captureLogger) Warn(msg string, _ ...logger.Field) { l.record(msg) }
func (l *captureLogger) Error(msg string, _ ...logger.Field) { l.record(msg) }
func (l *captureLogger) With(_ ...logger.Field) logger.Logger { return l }
func (l *captureLogger) Sync() error { return nil }

func TestDispatchSyncDeliversToCollector(t *testing.T) {
	gin.SetMode(gin.TestMode)

	buf := storage.NewBuffer(10)
	t.Cleanup(buf.Close)

	r := gin.New()
	r.Use(middleware.BotFilter())
	r.POST("/api/analytics", handler.NewAnalyticsHandler(buf, logger.NewNop()).Collect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	log := &captureLogger{}
	d := NewHTTPDispatcher(srv.URL+"/api/analytics", srv.Client(), log)

	d.DispatchSync(domain.AnalyticsEvent{
		EventType: domain.EventPageView,
		SessionID: "s1",
		PagePath:  "/",
	})

	assert.Equal(t, 1, buf.Len())
	assert.False(t, log.logged("Event delivery rejected"),
		"a successful collector response must not log as a rejection")
}

func TestDispatchSyncLogsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := &captureLogger{}
	d := NewHTTPDispatcher(srv.URL, srv.Client(), log)

	d.DispatchSync(domain.AnalyticsEvent{EventType: domain.EventPageView, SessionID: "s1"})

	require.True(t, log.logged("Event delivery rejected"))
}

func TestDispatchSyncSwallowsNetworkFailure(t *testing.T) {
	log := &captureLogger{}
	d := NewHTTPDispatcher("http://127.0.0.1:1", http.DefaultClient, log)

	d.DispatchSync(domain.AnalyticsEvent{EventType: domain.EventPageView, SessionID: "s1"})

	require.True(t, log.logged("Event delivery failed"))
}
