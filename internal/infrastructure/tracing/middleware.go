package tracing

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/GriffinCanCode/blockhub/internal/shared/id"
)

// HTTPMiddleware creates Gin middleware for request tracing
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := id.RequestID(c.GetHeader(RequestIDHeader))
		if rid == "" || len(rid) > 128 {
			rid = id.NewRequestID()
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := WithRequestID(c.Request.Context(), rid)
		ctx, span := tracer.StartSpan(ctx, c.Request.Method+" "+route,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.host", c.Request.Host),
		)

		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, string(rid))

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))

		var err error
		if len(c.Errors) > 0 {
			err = c.Errors.Last()
		} else if status >= 500 {
			err = fmt.Errorf("http status %d", status)
		}

		tracer.EndSpan(span, err)
		tracer.logRequest(rid, span.SpanContext(), route, status, time.Since(start), err)
	}
}
