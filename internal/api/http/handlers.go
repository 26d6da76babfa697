package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/api/middleware"
	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/code"
	"github.com/GriffinCanCode/blockhub/internal/domain/preview"
	"github.com/GriffinCanCode/blockhub/internal/domain/seo"
	"github.com/GriffinCanCode/blockhub/internal/domain/stacks"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
	"github.com/GriffinCanCode/blockhub/internal/web"
)

// Deps are the collaborators of the HTTP handlers
type Deps struct {
	Catalog     *catalog.Catalog
	Reader      *code.Reader
	Highlighter *code.Highlighter
	Site        seo.Site
	Projection  catalog.ProjectionOptions
	Waitlist    stacks.Waitlist
	Auth        stacks.Authenticator
	Channels    ChannelCounter
	Metrics     *monitoring.Metrics
	Logger      *logging.Logger
	Templates   *template.Template
	Now         func() time.Time
}

// Handlers contains all HTTP handlers
type Handlers struct {
	catalog     *catalog.Catalog
	reader      *code.Reader
	highlighter *code.Highlighter
	site        seo.Site
	projection  catalog.ProjectionOptions
	waitlist    stacks.Waitlist
	auth        stacks.Authenticator
	metrics     *HandlerMetrics
	aggregator  *MetricsAggregator
	promMetrics *monitoring.Metrics
	logger      *logging.Logger
	tmpl        *template.Template
	hasher      *utils.Hasher
	now         func() time.Time
	started     time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(d Deps) (*Handlers, error) {
	tmpl := d.Templates
	if tmpl == nil {
		var err error
		if tmpl, err = web.Templates(); err != nil {
			return nil, err
		}
	}
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	if d.Highlighter == nil {
		d.Highlighter = code.NewHighlighter(code.DefaultStyle)
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	metrics := NewHandlerMetrics(d.Metrics)
	metrics.TrackCatalog(d.Catalog.Len())

	return &Handlers{
		catalog:     d.Catalog,
		reader:      d.Reader,
		highlighter: d.Highlighter,
		site:        d.Site,
		projection:  d.Projection,
		waitlist:    d.Waitlist,
		auth:        d.Auth,
		metrics:     metrics,
		aggregator:  NewMetricsAggregator(d.Metrics, d.Catalog, d.Channels),
		promMetrics: d.Metrics,
		logger:      d.Logger.Named("http"),
		tmpl:        tmpl,
		hasher:      utils.DefaultHasher(),
		now:         d.Now,
		started:     d.Now(),
	}, nil
}

// Health handles the health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"catalog": h.catalog.Stats(),
		"uptime":  h.now().Sub(h.started).Round(time.Second).String(),
	})
}

// page is the data every full page renders with
type page struct {
	Site   seo.Site
	Meta   seo.Metadata
	JSONLD template.JS
	Prefs  preview.Preferences
	Nav    []types.Category
	Path   string
}

func (h *Handlers) newPage(c *gin.Context, meta seo.Metadata) page {
	return page{
		Site:  h.site,
		Meta:  meta,
		Prefs: middleware.MustPreferences(c),
		Nav:   h.catalog.Categories(),
		Path:  c.Request.URL.Path,
	}
}

func (h *Handlers) html(c *gin.Context, status int, name string, data any) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Render(status, render.HTML{Template: h.tmpl, Name: name, Data: data})
}

type notFoundPage struct {
	page
	Message string
}

func (h *Handlers) notFound(c *gin.Context, message string) {
	h.html(c, http.StatusNotFound, web.PageNotFound, notFoundPage{
		page:    h.newPage(c, h.site.NotFound()),
		Message: message,
	})
}

// NoRoute renders the not-found page for unmatched paths
func (h *Handlers) NoRoute(c *gin.Context) {
	h.notFound(c, "We couldn't find that page.")
}

func (h *Handlers) logError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	h.logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
}
