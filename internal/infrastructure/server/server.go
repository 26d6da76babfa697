package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/blockhub/internal/api/http"
	"github.com/GriffinCanCode/blockhub/internal/api/middleware"
	"github.com/GriffinCanCode/blockhub/internal/api/ws"
	"github.com/GriffinCanCode/blockhub/internal/content"
	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/code"
	"github.com/GriffinCanCode/blockhub/internal/domain/preview"
	"github.com/GriffinCanCode/blockhub/internal/domain/seo"
	"github.com/GriffinCanCode/blockhub/internal/domain/stacks"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/config"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	catalog *catalog.Catalog
	hub     *preview.Hub
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	traces  *sdktrace.TracerProvider
}

// NewServer creates a new server instance. A nil logger builds one from
// the logging configuration.
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing Blockhub server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("source_dir", cfg.Registry.SourceDir),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	traces, err := tracing.NewProvider(tracing.ProviderOptions{
		Service:     cfg.Tracing.ServiceName,
		Exporter:    cfg.Tracing.Exporter,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}
	tracer := tracing.NewWithProvider(traces, cfg.Tracing.ServiceName, logger.Logger)

	fsys, err := content.Open(cfg.Registry.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry source: %w", err)
	}
	cat, err := catalog.NewLoader(fsys, cfg.Registry.Manifest, logger).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("Catalog loaded",
		zap.Int("blocks", cat.Len()),
		zap.Int("categories", len(cat.Categories())),
	)

	defaults := preview.DefaultState(cfg.Preview.DefaultTheme, cfg.Preview.DefaultPreset)
	hub := preview.NewHub(defaults, logger, metrics)

	auth, err := stacks.NewDemoAuthenticator()
	if err != nil {
		return nil, fmt.Errorf("failed to create demo authenticator: %w", err)
	}

	handlers, err := apihttp.NewHandlers(apihttp.Deps{
		Catalog:     cat,
		Reader:      code.NewReader(fsys, logger, metrics),
		Highlighter: code.NewHighlighter(cfg.Code.Style),
		Site:        seo.NewSite(cfg.Server.SiteName, cfg.Server.BaseURL),
		Projection: catalog.ProjectionOptions{
			PublicTemplate: cfg.Registry.PublicPath,
			RegistryName:   cfg.Registry.Name,
			Homepage:       cfg.Server.BaseURL,
		},
		Waitlist: stacks.NewMemoryWaitlist(logger),
		Auth:     auth,
		Channels: hub,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create handlers: %w", err)
	}
	wsHandler := ws.NewHandler(hub, cat, ws.Options{
		Debounce:       cfg.Search.Debounce,
		AllowedOrigins: cfg.Preview.AllowedOrigins,
	}, logger, metrics)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.CORS.AllowedOrigins)))
	var forms []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.Int("forms_rps", cfg.RateLimit.FormsPerSecond),
		)
		perClient := middleware.DefaultRateLimitConfig()
		perClient.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		perClient.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(perClient))

		global := middleware.DefaultRateLimitConfig()
		global.RequestsPerSecond = cfg.RateLimit.FormsPerSecond
		global.Burst = cfg.RateLimit.FormsPerSecond * 2
		forms = append(forms, middleware.GlobalRateLimit(global))
	}
	router.Use(middleware.Preferences(defaults))

	// Register routes
	handlers.Register(router, forms...)
	router.GET("/ws/preview", wsHandler.Preview)
	router.GET("/ws/search", wsHandler.Search)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           compress(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
		catalog: cat,
		hub:     hub,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		traces:  traces,
	}, nil
}

// compress gzips responses except on the socket routes, which must keep
// the hijackable writer
func compress(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/ws/") {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Catalog returns the served catalog
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Close(shutdownCtx)
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...", zap.Int("preview_channels", s.hub.Channels()))

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := s.traces.Shutdown(ctx); err != nil {
		s.logger.Warn("Failed to flush traces", zap.Error(err))
	}

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}
