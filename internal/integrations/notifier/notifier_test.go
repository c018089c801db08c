package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRecorder struct {
	mu      sync.Mutex
	sources []string
}

func (r *fakeRecorder) IncNotifierError(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, source)
}

type chanSender struct {
	alerts chan Alert
	err    error
}

func (s *chanSender) Send(_ context.Context, alert Alert) error {
	s.alerts <- alert
	return s.err
}

func TestNotifyError_CollectsMessagesInContext(t *testing.T) {
	recorder := &fakeRecorder{}
	n := NewNotifier(nil, recorder, nopLogger{}, time.Second)
	ctx := NewContext(context.Background())

	n.NotifyError(ctx, "расписание недоступно")
	n.NotifyError(ctx, "расписание недоступно")

	assert.Equal(t, []string{"расписание недоступно"}, Messages(ctx))
	assert.Equal(t, []string{sourceSlots, sourceSlots}, recorder.sources)
}

func TestNotifyError_WithoutCollector(t *testing.T) {
	n := NewNotifier(nil, nil, nopLogger{}, 0)

	assert.NotPanics(t, func() { n.NotifyError(context.Background(), "boom") })
	assert.Nil(t, Messages(context.Background()))
}

func TestNotifyError_SendsAlert(t *testing.T) {
	sender := &chanSender{alerts: make(chan Alert, 1), err: errors.New("webhook down")}
	n := NewNotifier(sender, nil, nopLogger{}, time.Second)
	fixed := time.Date(2030, 6, 10, 9, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	n.NotifyError(ctx, "boom")
	cancel()

	select {
	case alert := <-sender.alerts:
		assert.Equal(t, Alert{Source: sourceSlots, Message: "boom", OccurredAt: fixed}, alert)
	case <-time.After(time.Second):
		t.Fatal("alert was not sent")
	}
}

func TestClient_Send(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	err := client.Send(context.Background(), Alert{
		Source:     sourceSlots,
		Message:    "boom",
		OccurredAt: time.Date(2030, 6, 10, 21, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"source":     sourceSlots,
		"message":    "boom",
		"occurredAt": "2030-06-10T21:00:00Z",
	}, got)
}

func TestClient_SendUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	err := client.Send(context.Background(), Alert{Message: "boom"})

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_SendUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nopLogger{})

	err := client.Send(context.Background(), Alert{Message: "boom"})

	assert.ErrorIs(t, err, ErrInternal)
}
