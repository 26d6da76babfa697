package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/shared/id"
)

// RequestIDHeader carries the request ID in and out of the service
const RequestIDHeader = "X-Request-ID"

const defaultTracerName = "blockhub"

// Tracer starts OpenTelemetry spans and logs completed requests
type Tracer struct {
	tracer trace.Tracer
	logger *zap.Logger
}

// New creates a tracer on the global OpenTelemetry provider.
// Without an installed SDK the spans are no-ops and only request logging remains.
func New(service string, logger *zap.Logger) *Tracer {
	return NewWithProvider(otel.GetTracerProvider(), service, logger)
}

// NewWithProvider creates a tracer on an explicit provider
func NewWithProvider(tp trace.TracerProvider, service string, logger *zap.Logger) *Tracer {
	if service == "" {
		service = defaultTracerName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracer{
		tracer: tp.Tracer(service),
		logger: logger,
	}
}

// StartSpan starts a span carrying the request ID of the context
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if rid := GetRequestID(ctx); rid != "" {
		attrs = append(attrs, attribute.String("request.id", string(rid)))
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records the outcome and ends the span
func (t *Tracer) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// logRequest logs a completed request
func (t *Tracer) logRequest(rid id.RequestID, sc trace.SpanContext, route string, status int, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("request_id", string(rid)),
		zap.String("route", route),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	}
	if sc.HasTraceID() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}

	switch {
	case err != nil:
		t.logger.Error("request failed", append(fields, zap.Error(err))...)
	case status >= 500:
		t.logger.Error("request completed", fields...)
	default:
		t.logger.Debug("request completed", fields...)
	}
}

// Context keys for request propagation
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID attaches a request ID to the context
func WithRequestID(ctx context.Context, rid id.RequestID) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request ID of the context, or empty
func GetRequestID(ctx context.Context) id.RequestID {
	rid, _ := ctx.Value(requestIDKey).(id.RequestID)
	return rid
}
