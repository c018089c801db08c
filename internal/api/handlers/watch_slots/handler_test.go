package watch_slots

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/realtime"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type hubSubscriber struct {
	hub *realtime.Hub
}

func (s hubSubscriber) Subscribe(employeeID int64, date time.Time) *realtime.Subscription {
	return s.hub.Subscribe(cache.NewKey(employeeID, date))
}

// streamWriter потокобезопасный ResponseWriter с поддержкой Flush
type streamWriter struct {
	mu     sync.Mutex
	header http.Header
	status int
	body   bytes.Buffer
}

func newStreamWriter() *streamWriter {
	return &streamWriter{header: make(http.Header)}
}

func (w *streamWriter) Header() http.Header { return w.header }

func (w *streamWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
}

func (w *streamWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.Write(p)
}

func (w *streamWriter) Flush() {}

func (w *streamWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.String()
}

func newRequest(ctx context.Context, employeeID, query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employeeID+"/slots/watch?"+query, nil).WithContext(ctx)
	return mux.SetURLVars(r, map[string]string{"employeeId": employeeID})
}

func TestHandle_StreamsChanges(t *testing.T) {
	hub := realtime.NewHub(nil, nil)
	key := cache.NewKey(1, time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC))
	h := NewHandler(hubSubscriber{hub: hub}, nopLogger{}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w := newStreamWriter()
	done := make(chan struct{})

	go func() {
		defer close(done)
		h.Handle(w, newRequest(ctx, "1", "date=2030-06-14"))
	}()

	require.Eventually(t, func() bool { return hub.Subscribers(key) == 1 }, time.Second, time.Millisecond)
	require.NoError(t, hub.Notify(context.Background(), key))

	require.Eventually(t, func() bool {
		return strings.Contains(w.String(), "event: changed")
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Contains(w.String(), ": ping")
	}, time.Second, time.Millisecond)

	cancel()
	<-done

	body := w.String()
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "event: ready\ndata: {\"employeeId\":1,\"date\":\"2030-06-14\"}\n\n"))
	assert.Contains(t, body, "event: changed\ndata: {\"employeeId\":1,\"date\":\"2030-06-14\"}\n\n")
	assert.Equal(t, 0, hub.Subscribers(key))
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		query      string
	}{
		{name: "bad employee", employeeID: "abc", query: "date=2030-06-14"},
		{name: "non-positive employee", employeeID: "0", query: "date=2030-06-14"},
		{name: "missing date", employeeID: "1", query: ""},
		{name: "bad date", employeeID: "1", query: "date=2030/06/14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := realtime.NewHub(nil, nil)
			rec := httptest.NewRecorder()

			NewHandler(hubSubscriber{hub: hub}, nopLogger{}, 0).Handle(rec, newRequest(context.Background(), tt.employeeID, tt.query))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_StopClosesStream(t *testing.T) {
	hub := realtime.NewHub(nil, nil)
	key := cache.NewKey(3, time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC))
	h := NewHandler(hubSubscriber{hub: hub}, nopLogger{}, time.Hour)
	w := newStreamWriter()
	done := make(chan struct{})

	go func() {
		defer close(done)
		h.Handle(w, newRequest(context.Background(), "3", "date=2030-06-14"))
	}()

	require.Eventually(t, func() bool { return hub.Subscribers(key) == 1 }, time.Second, time.Millisecond)

	h.Stop()
	h.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream was not closed by Stop")
	}
	assert.Equal(t, 0, hub.Subscribers(key))
}
