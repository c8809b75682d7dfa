package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	CacheRequestsTotal *prometheus.CounterVec

	SlotQueriesTotal      *prometheus.CounterVec
	BookingsCreatedTotal  *prometheus.CounterVec
	BookingConflictsTotal *prometheus.CounterVec

	serviceName string
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном регистре (тесты и запуск без /metrics)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		CacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by result (hit, miss, error)",
		}, []string{"service", "cache", "result"}),

		SlotQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_slot_queries_total",
			Help: "Number of computed availability queries by source (engine, cache)",
		}, []string{"service", "source"}),

		BookingsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Number of successfully committed bookings",
		}, []string{"service"}),

		BookingConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Number of booking attempts rejected at commit by reason",
		}, []string{"service", "reason"}),

		serviceName: serviceName,
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.DBOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBInUseConnections.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.DBIdleConnections.WithLabelValues(m.serviceName).Set(float64(idle))
}

// CacheHit считает попадание в кэш
func (m *Metrics) CacheHit(cache string) {
	m.CacheRequestsTotal.WithLabelValues(m.serviceName, cache, "hit").Inc()
}

// CacheMiss считает промах кэша
func (m *Metrics) CacheMiss(cache string) {
	m.CacheRequestsTotal.WithLabelValues(m.serviceName, cache, "miss").Inc()
}

// CacheError считает ошибку обращения к кэшу
func (m *Metrics) CacheError(cache string) {
	m.CacheRequestsTotal.WithLabelValues(m.serviceName, cache, "error").Inc()
}

// SlotQuery считает запрос доступных слотов (source: engine или cache)
func (m *Metrics) SlotQuery(source string) {
	m.SlotQueriesTotal.WithLabelValues(m.serviceName, source).Inc()
}

// BookingCreated считает успешно созданное бронирование
func (m *Metrics) BookingCreated() {
	m.BookingsCreatedTotal.WithLabelValues(m.serviceName).Inc()
}

// BookingConflict считает отказ при фиксации бронирования (overlap, blocked, serialization)
func (m *Metrics) BookingConflict(reason string) {
	m.BookingConflictsTotal.WithLabelValues(m.serviceName, reason).Inc()
}
