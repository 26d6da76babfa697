package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Catalog metrics
	CatalogBlocks  prometheus.Gauge
	CatalogLookups *prometheus.CounterVec

	// Code metrics
	CodeReads *prometheus.CounterVec

	// Search metrics
	SearchQueries *prometheus.CounterVec

	// Preview sync metrics
	PreviewMessages *prometheus.CounterVec
	PreviewChannels prometheus.Gauge

	// WebSocket metrics
	WSConnections *prometheus.GaugeVec

	startTime time.Time

	// Snapshot for the health endpoint
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for the JSON health endpoint
type MetricsSnapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	totalDuration float64
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry creates a metrics collector on the given registry
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockhub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blockhub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blockhub_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "route"},
		),

		// Catalog metrics
		CatalogBlocks: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blockhub_catalog_blocks",
				Help: "Number of blocks in the loaded catalog",
			},
		),
		CatalogLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockhub_catalog_lookups_total",
				Help: "Catalog lookups by name",
			},
			[]string{"result"},
		),

		// Code metrics
		CodeReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockhub_code_reads_total",
				Help: "Source file reads for code display",
			},
			[]string{"result"},
		),

		// Search metrics
		SearchQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockhub_search_queries_total",
				Help: "Catalog searches by outcome",
			},
			[]string{"outcome"},
		),

		// Preview sync metrics
		PreviewMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blockhub_preview_messages_total",
				Help: "Preview sync messages by direction and type",
			},
			[]string{"direction", "type"},
		),
		PreviewChannels: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blockhub_preview_channels",
				Help: "Open preview sync channels",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "blockhub_ws_connections",
				Help: "Open WebSocket connections",
			},
			[]string{"endpoint"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "blockhub_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, route).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// SetCatalogBlocks sets the number of loaded blocks
func (m *Metrics) SetCatalogBlocks(count int) {
	m.CatalogBlocks.Set(float64(count))
}

// RecordLookup records a catalog lookup by name
func (m *Metrics) RecordLookup(found bool) {
	if found {
		m.CatalogLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CatalogLookups.WithLabelValues("miss").Inc()
}

// RecordCodeRead records a code read; empty means the read degraded to no code
func (m *Metrics) RecordCodeRead(empty bool) {
	if empty {
		m.CodeReads.WithLabelValues("empty").Inc()
		return
	}
	m.CodeReads.WithLabelValues("ok").Inc()
}

// RecordSearch records a search and its outcome
func (m *Metrics) RecordSearch(outcome string) {
	m.SearchQueries.WithLabelValues(outcome).Inc()
}

// RecordPreviewMessage records a preview sync message
func (m *Metrics) RecordPreviewMessage(direction, msgType string) {
	m.PreviewMessages.WithLabelValues(direction, msgType).Inc()
}

// SetPreviewChannels sets the number of open preview channels
func (m *Metrics) SetPreviewChannels(count int) {
	m.PreviewChannels.Set(float64(count))
}

// IncWSConnections increments WebSocket connections for an endpoint
func (m *Metrics) IncWSConnections(endpoint string) {
	m.WSConnections.WithLabelValues(endpoint).Inc()
}

// DecWSConnections decrements WebSocket connections for an endpoint
func (m *Metrics) DecWSConnections(endpoint string) {
	m.WSConnections.WithLabelValues(endpoint).Dec()
}

// Snapshot returns the current values for the health endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMS = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
