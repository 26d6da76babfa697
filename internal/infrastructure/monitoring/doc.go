/*
Package monitoring provides Prometheus metrics for blockhub.

# Overview

Metrics are registered on an explicit registry so several servers (and
tests) can live in one process.

# Features

- HTTP request metrics labelled by route template
- Catalog size and lookup hit/miss counts
- Code reads that degraded to empty output
- Search outcomes (results, filtered-empty, catalog-empty)
- Preview sync messages and open channels
- WebSocket connections per endpoint

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
