package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-classroom/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry             *prometheus.Registry
	handler              http.Handler
	requestDuration      *prometheus.HistogramVec
	requestTotal         *prometheus.CounterVec
	commandsTotal        *prometheus.CounterVec
	storageWriteFailures *prometheus.CounterVec
	storageDuration      *prometheus.HistogramVec

	requestCount         uint64
	requestDurationTotal uint64
	commandCount         uint64
	writeFailureCount    uint64
	storageCount         uint64
	storageDurationTotal uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	commandsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "classroom_commands_total",
		Help: "Total number of committed classroom commands",
	}, []string{"command"})

	storageWriteFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_write_failures_total",
		Help: "Persistence writes that failed and were dropped",
	}, []string{"key_kind"})

	storageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_operation_seconds",
		Help:    "Latency of key-value storage operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, commandsTotal, storageWriteFailures, storageDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:             registry,
		handler:              handler,
		requestDuration:      requestDuration,
		requestTotal:         requestTotal,
		commandsTotal:        commandsTotal,
		storageWriteFailures: storageWriteFailures,
		storageDuration:      storageDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCommand counts a committed classroom command.
func (m *MetricsService) RecordCommand(command string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command).Inc()
	atomic.AddUint64(&m.commandCount, 1)
}

// RecordStorageWriteFailure counts a dropped persistence write.
func (m *MetricsService) RecordStorageWriteFailure(keyKind string) {
	if m == nil {
		return
	}
	m.storageWriteFailures.WithLabelValues(keyKind).Inc()
	atomic.AddUint64(&m.writeFailureCount, 1)
}

// ObserveStorageOperation records key-value backend timing.
func (m *MetricsService) ObserveStorageOperation(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storageDuration.WithLabelValues(op).Observe(duration.Seconds())
	atomic.AddUint64(&m.storageCount, 1)
	atomic.AddUint64(&m.storageDurationTotal, uint64(duration.Nanoseconds()))
}

// Snapshot returns aggregated metrics suitable for the summary endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	storageOps := atomic.LoadUint64(&m.storageCount)
	storageDuration := atomic.LoadUint64(&m.storageDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	var avgStorageMs float64
	if storageOps > 0 {
		avgStorageMs = float64(storageDuration) / float64(storageOps) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CommandsTotal:            atomic.LoadUint64(&m.commandCount),
		StorageWriteFailures:     atomic.LoadUint64(&m.writeFailureCount),
		StorageOperations:        storageOps,
		AverageStorageDurationMs: avgStorageMs,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
