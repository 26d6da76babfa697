package http

import (
	"github.com/GriffinCanCode/blockhub/internal/domain/search"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/monitoring"
)

// HandlerMetrics records catalog activity for handlers. A nil metrics
// collector turns every call into a no-op.
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackLookup records a block lookup by name
func (hm *HandlerMetrics) TrackLookup(found bool) {
	if hm == nil || hm.metrics == nil {
		return
	}
	hm.metrics.RecordLookup(found)
}

// TrackSearch records the outcome of a catalog filter
func (hm *HandlerMetrics) TrackSearch(state search.State) {
	if hm == nil || hm.metrics == nil {
		return
	}
	hm.metrics.RecordSearch(string(state))
}

// TrackCatalog records the size of the served catalog
func (hm *HandlerMetrics) TrackCatalog(blocks int) {
	if hm == nil || hm.metrics == nil {
		return
	}
	hm.metrics.SetCatalogBlocks(blocks)
}
