package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках
// в компоненты передается nil и вызовы просто ничего не делают.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	slotsGenerated *prometheus.CounterVec
	cacheRequests  *prometheus.CounterVec
	notifierErrors *prometheus.CounterVec
	events         *prometheus.CounterVec
	subscribers    prometheus.Gauge
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		slotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Generated time slots by availability",
			ConstLabels: constLabels,
		}, []string{"available"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "unavailable_cache_requests_total",
			Help:        "Unavailable slots cache lookups",
			ConstLabels: constLabels,
		}, []string{"backend", "result"}),
		notifierErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifier_errors_total",
			Help:        "Errors surfaced to the user notifier",
			ConstLabels: constLabels,
		}, []string{"source"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_events_total",
			Help:        "Appointment change events",
			ConstLabels: constLabels,
		}, []string{"direction", "type", "result"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "slot_subscribers",
			Help:        "Active live slot subscriptions",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.slotsGenerated,
		m.cacheRequests,
		m.notifierErrors,
		m.events,
		m.subscribers,
	)

	return m
}

// ServiceName имя сервиса в метках
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// AddGeneratedSlots учитывает результат генерации слотов
func (m *Metrics) AddGeneratedSlots(available, unavailable int) {
	if m == nil {
		return
	}
	m.slotsGenerated.WithLabelValues("true").Add(float64(available))
	m.slotsGenerated.WithLabelValues("false").Add(float64(unavailable))
}

// IncCacheRequest учитывает обращение к кэшу занятых интервалов
func (m *Metrics) IncCacheRequest(backend, result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(backend, result).Inc()
}

// IncNotifierError учитывает ошибку, показанную пользователю
func (m *Metrics) IncNotifierError(source string) {
	if m == nil {
		return
	}
	m.notifierErrors.WithLabelValues(source).Inc()
}

// IncEvent учитывает опубликованное или полученное событие
func (m *Metrics) IncEvent(direction, eventType, result string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(direction, eventType, result).Inc()
}

// AddSubscribers изменяет число активных подписок
func (m *Metrics) AddSubscribers(delta int) {
	if m == nil {
		return
	}
	m.subscribers.Add(float64(delta))
}
