/*
Package tracing provides request tracing for blockhub.

# Overview

Every request gets a request ID (taken from X-Request-ID when present) and an
OpenTelemetry span named after its route template. NewProvider builds the
SDK provider the server installs; TRACING_EXPORTER=stdout writes finished
spans as JSON. Completed requests are logged through zap with their trace ID.

# Usage

	tp, err := tracing.NewProvider(tracing.ProviderOptions{Service: "blockhub", Exporter: "stdout"})
	defer tp.Shutdown(ctx)
	tracer := tracing.NewWithProvider(tp, "blockhub", logger.Logger)
	router.Use(tracing.HTTPMiddleware(tracer))

	ctx, span := tracer.StartSpan(ctx, "catalog.load")
	defer tracer.EndSpan(span, err)
*/
package tracing
