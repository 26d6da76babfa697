package tracing

import (
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporters
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// ProviderOptions configures the SDK tracer provider
type ProviderOptions struct {
	Service     string
	Exporter    string  // none or stdout
	SampleRatio float64 // fraction of root spans kept, clamped to [0, 1]
	Output      io.Writer
}

// NewProvider builds a tracer provider. With no exporter spans are still
// sampled, so request logs carry real trace IDs, but nothing is exported.
// Callers must Shutdown the provider to flush batched spans.
func NewProvider(opts ProviderOptions) (*sdktrace.TracerProvider, error) {
	if opts.Service == "" {
		opts.Service = defaultTracerName
	}
	ratio := opts.SampleRatio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", opts.Service))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}

	switch opts.Exporter {
	case "", ExporterNone:
	case ExporterStdout:
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exp))
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", opts.Exporter)
	}

	return sdktrace.NewTracerProvider(tpOpts...), nil
}
