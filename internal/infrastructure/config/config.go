package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Registry  RegistryConfig
	Search    SearchConfig
	Preview   PreviewConfig
	Code      CodeConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Publish   PublishConfig
	Tracing   TracingConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	BaseURL         string        `envconfig:"BASE_URL" default:"http://localhost:8000"`
	SiteName        string        `envconfig:"SITE_NAME" default:"Blockhub"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// RegistryConfig holds catalog configuration.
type RegistryConfig struct {
	Name       string `envconfig:"REGISTRY_NAME" default:"blockhub"`
	SourceDir  string `envconfig:"REGISTRY_SOURCE_DIR"` // empty uses the embedded registry
	Manifest   string `envconfig:"REGISTRY_MANIFEST" default:"blocks.yaml"`
	PublicPath string `envconfig:"REGISTRY_PUBLIC_PATH" default:"registry/default/blocks/{name}/{file}"`
}

// SearchConfig holds live search configuration.
type SearchConfig struct {
	Debounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms"`
}

// PreviewConfig holds preview sync configuration.
type PreviewConfig struct {
	DefaultTheme   string   `envconfig:"PREVIEW_DEFAULT_THEME" default:"light"`
	DefaultPreset  string   `envconfig:"PREVIEW_DEFAULT_PRESET" default:"neutral"`
	AllowedOrigins []string `envconfig:"PREVIEW_ALLOWED_ORIGINS"`
}

// CodeConfig holds code presentation configuration.
type CodeConfig struct {
	Style string `envconfig:"CODE_STYLE" default:"github"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	FormsPerSecond    int  `envconfig:"RATE_LIMIT_FORMS_RPS" default:"10"` // shared by all clients
}

// PublishConfig holds the S3 target for static registry builds.
type PublishConfig struct {
	Bucket   string `envconfig:"PUBLISH_S3_BUCKET"`
	Region   string `envconfig:"PUBLISH_S3_REGION" default:"us-east-1"`
	Prefix   string `envconfig:"PUBLISH_S3_PREFIX"`
	Endpoint string `envconfig:"PUBLISH_S3_ENDPOINT"`
}

// TracingConfig selects where request spans go.
type TracingConfig struct {
	Exporter    string  `envconfig:"TRACING_EXPORTER" default:"none"` // none or stdout
	ServiceName string  `envconfig:"TRACING_SERVICE_NAME" default:"blockhub"`
	SampleRatio float64 `envconfig:"TRACING_SAMPLE_RATIO" default:"1"`
}

// CORSConfig restricts cross-origin reads. Empty allows every origin.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			BaseURL:         "http://localhost:8000",
			SiteName:        "Blockhub",
			ShutdownTimeout: 10 * time.Second,
		},
		Registry: RegistryConfig{
			Name:       "blockhub",
			Manifest:   "blocks.yaml",
			PublicPath: "registry/default/blocks/{name}/{file}",
		},
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Preview: PreviewConfig{
			DefaultTheme:  "light",
			DefaultPreset: "neutral",
		},
		Code: CodeConfig{
			Style: "github",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
			FormsPerSecond:    10,
		},
		Publish: PublishConfig{
			Region: "us-east-1",
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			ServiceName: "blockhub",
			SampleRatio: 1,
		},
	}
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
