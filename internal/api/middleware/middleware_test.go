package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type observation struct {
	method string
	path   string
	status int
}

type fakeRecorder struct {
	observed []observation
}

func (f *fakeRecorder) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method: method, path: path, status: status})
}

func newRouter(recorder MetricsRecorder) *mux.Router {
	r := mux.NewRouter()
	r.Use(Recovery(nopLogger{}), Logging(nopLogger{}), Metrics(recorder))
	r.HandleFunc("/appointments/{appointmentId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	r.HandleFunc("/request-id", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(RequestID(r.Context())))
	})
	return r
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeRecorder{}
	rec := httptest.NewRecorder()

	newRouter(recorder).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.Len(t, recorder.observed, 1)
	assert.Equal(t, observation{method: http.MethodGet, path: "/appointments/{appointmentId}", status: http.StatusNotFound}, recorder.observed[0])
}

func TestRecovery_RespondsInternalError(t *testing.T) {
	rec := httptest.NewRecorder()

	newRouter(&fakeRecorder{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "внутренняя ошибка сервера")
}

func TestLogging_RequestID(t *testing.T) {
	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()

		newRouter(&fakeRecorder{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/request-id", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/request-id", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()

		newRouter(&fakeRecorder{}).ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestStatusWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)

	require.NoError(t, http.NewResponseController(sw).Flush())
	assert.True(t, rec.Flushed)
}
