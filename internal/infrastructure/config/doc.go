// Package config provides 12-factor configuration management for blockhub.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP listener and public base URL
//   - Registry: Catalog manifest, source root and public path template
//   - Search: Live search debounce interval
//   - Preview: Default theme, preset and allowed origins for the sync channel
//   - Code: Syntax highlighting style
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Publish: S3 target for static registry builds
//   - Tracing: Span exporter and sampling
//   - CORS: Origins allowed to read the registry cross-origin
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Serving %s on %s:%s\n", cfg.Registry.Name, cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, BASE_URL
//   - REGISTRY_NAME, REGISTRY_SOURCE_DIR, REGISTRY_MANIFEST, REGISTRY_PUBLIC_PATH
//   - SEARCH_DEBOUNCE
//   - PREVIEW_DEFAULT_THEME, PREVIEW_DEFAULT_PRESET, PREVIEW_ALLOWED_ORIGINS
//   - CODE_STYLE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - PUBLISH_S3_BUCKET, PUBLISH_S3_REGION, PUBLISH_S3_PREFIX, PUBLISH_S3_ENDPOINT
//   - TRACING_EXPORTER, TRACING_SERVICE_NAME, TRACING_SAMPLE_RATIO
//   - CORS_ALLOWED_ORIGINS
package config
