package tracing

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/shared/id"
)

func TestHTTPMiddlewareAssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPMiddleware(New("test", zap.NewNop())))

	var seen id.RequestID
	router.GET("/r/:name", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/r/hero-01", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, id.IsValidPrefixed(string(seen), id.RequestPrefix))
	assert.Equal(t, string(seen), w.Header().Get(RequestIDHeader))
}

func TestHTTPMiddlewareKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPMiddleware(New("", nil)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "upstream-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "upstream-123", w.Header().Get(RequestIDHeader))
}

func newRecordedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(HTTPMiddleware(NewWithProvider(tp, "test", nil)))
	return router, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestHTTPMiddlewareRecordsRouteSpan(t *testing.T) {
	router, recorder := newRecordedRouter(t)
	router.GET("/r/:name", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/r/hero-01", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /r/:name", span.Name())
	assert.Equal(t, codes.Unset, span.Status().Code)

	status, ok := spanAttr(span, "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())

	rid, ok := spanAttr(span, "request.id")
	require.True(t, ok)
	assert.Equal(t, w.Header().Get(RequestIDHeader), rid.AsString())
}

func TestHTTPMiddlewareMarksServerErrors(t *testing.T) {
	router, recorder := newRecordedRouter(t)
	router.GET("/preview/:name", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "Preview failed")
	})
	router.GET("/blocks/:name", func(c *gin.Context) {
		_ = c.Error(errors.New("template missing"))
		c.Status(http.StatusBadGateway)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/preview/hero-01", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blocks/hero-01", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "http status 500", spans[0].Status().Description)
	status, _ := spanAttr(spans[0], "http.status_code")
	assert.Equal(t, int64(http.StatusInternalServerError), status.AsInt64())

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "template missing", spans[1].Status().Description)
	require.NotEmpty(t, spans[1].Events())
	assert.Equal(t, "exception", spans[1].Events()[0].Name)
}

func TestNewProviderStdout(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewProvider(ProviderOptions{Service: "blockhub", Exporter: ExporterStdout, SampleRatio: 1, Output: &buf})
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMiddleware(NewWithProvider(tp, "blockhub", nil)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NoError(t, tp.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"GET /health"`)
	assert.Contains(t, buf.String(), "blockhub")
}

func TestNewProviderSampling(t *testing.T) {
	tp, err := NewProvider(ProviderOptions{SampleRatio: 0})
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	_, span := NewWithProvider(tp, "", nil).StartSpan(context.Background(), "dropped")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()

	_, err = NewProvider(ProviderOptions{Exporter: "zipkin"})
	assert.Error(t, err)
}
