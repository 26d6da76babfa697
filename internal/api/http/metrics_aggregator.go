package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// ChannelCounter reports live preview channels
type ChannelCounter interface {
	Channels() int
}

// MetricsAggregator combines request metrics with catalog and preview state
type MetricsAggregator struct {
	metrics  *monitoring.Metrics
	catalog  *catalog.Catalog
	channels ChannelCounter
}

// NewMetricsAggregator creates an aggregator. metrics and channels may be nil.
func NewMetricsAggregator(metrics *monitoring.Metrics, c *catalog.Catalog, channels ChannelCounter) *MetricsAggregator {
	return &MetricsAggregator{metrics: metrics, catalog: c, channels: channels}
}

// MetricsSnapshot is the JSON view of the running service
type MetricsSnapshot struct {
	Timestamp time.Time                   `json:"timestamp"`
	HTTP      *monitoring.MetricsSnapshot `json:"http,omitempty"`
	Catalog   types.CatalogStats          `json:"catalog"`
	Preview   PreviewSummary              `json:"preview"`
	Summary   MetricsSummary              `json:"summary"`
}

// PreviewSummary describes preview sync activity
type PreviewSummary struct {
	Channels int `json:"channels"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests    int64   `json:"total_requests"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	ErrorRate        float64 `json:"error_rate"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// Snapshot collects the current values
func (ma *MetricsAggregator) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Timestamp: time.Now(),
		Catalog:   ma.catalog.Stats(),
	}
	if ma.channels != nil {
		s.Preview.Channels = ma.channels.Channels()
	}
	if ma.metrics != nil {
		snap := ma.metrics.Snapshot()
		s.HTTP = &snap
		s.Summary = MetricsSummary{
			TotalRequests:    snap.TotalRequests,
			AverageLatencyMs: snap.AvgLatencyMS,
			UptimeSeconds:    snap.UptimeSeconds,
		}
		if snap.TotalRequests > 0 {
			s.Summary.ErrorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
		}
	}
	return s
}

// GetAggregatedMetrics serves the snapshot as JSON
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, ma.Snapshot())
}
