package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetrics()

	router := gin.New()
	router.Use(Middleware(metrics))
	router.GET("/blocks/:name", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("name"))
	})

	for _, path := range []string{"/blocks/hero-01", "/blocks/faq-01", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/blocks/:name", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestDomainCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordLookup(true)
	metrics.RecordLookup(false)
	metrics.RecordLookup(false)
	metrics.RecordCodeRead(true)
	metrics.RecordSearch("filtered-empty")
	metrics.RecordPreviewMessage("out", "theme-change")
	metrics.IncWSConnections("preview")
	metrics.IncWSConnections("preview")
	metrics.DecWSConnections("preview")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CatalogLookups.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.CatalogLookups.WithLabelValues("miss")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CodeReads.WithLabelValues("empty")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SearchQueries.WithLabelValues("filtered-empty")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.PreviewMessages.WithLabelValues("out", "theme-change")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.WSConnections.WithLabelValues("preview")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.SetCatalogBlocks(7)

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blockhub_catalog_blocks 7")
	assert.Contains(t, w.Body.String(), "blockhub_uptime_seconds")
}

func TestSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}
