package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes
const (
	OutcomeCreated       = "created"
	OutcomeStaleSnapshot = "stale_snapshot"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

// Metrics набор Prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	submissions   *prometheus.CounterVec
	slotCache     *prometheus.CounterVec
	engineLatency *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		slotCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "instructor_slot_cache_total",
			Help:        "Instructor day-slot cache lookups by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		engineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "engine_operation_duration_seconds",
			Help:        "Latency of availability engine operations.",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5},
		}, []string{"operation"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.submissions, m.slotCache, m.engineLatency)
	return m
}

// ObserveHTTP учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncSubmission учитывает результат отправки бронирования
func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// IncSlotCache учитывает попадание/промах кэша слотов инструктора
func (m *Metrics) IncSlotCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.slotCache.WithLabelValues(result).Inc()
}

// ObserveEngine учитывает длительность операции движка доступности
func (m *Metrics) ObserveEngine(operation string, started time.Time) {
	if m == nil {
		return
	}
	m.engineLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
