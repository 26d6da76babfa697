package ws

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/preview"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/monitoring"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096

	endpointPreview = "preview"
	endpointSearch  = "search"
)

// Options configures the socket endpoints
type Options struct {
	Debounce       time.Duration
	AllowedOrigins []string
}

// Handler manages WebSocket connections
type Handler struct {
	hub      *preview.Hub
	catalog  *catalog.Catalog
	opts     Options
	upgrader websocket.Upgrader
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(hub *preview.Hub, c *catalog.Catalog, opts Options, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Handler{
		hub:     hub,
		catalog: c,
		opts:    opts,
		logger:  logger.Named("ws"),
		metrics: metrics,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin accepts same-origin requests plus the configured origins.
// "*" accepts any origin.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
			return true
		}
	}
	return false
}

func (h *Handler) upgrade(c *gin.Context, endpoint string) (*conn, bool) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		h.logger.Warn("WebSocket upgrade failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, false
	}
	ws.SetReadLimit(maxMessageSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections(endpoint)
	}
	return &conn{ws: ws}, true
}

func (h *Handler) release(cn *conn, endpoint string) {
	cn.close()
	if h.metrics != nil {
		h.metrics.DecWSConnections(endpoint)
	}
}

// conn serializes writes on one socket. The hub may send from any goroutine.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Send implements preview.Client
func (c *conn) Send(m preview.Message) error {
	data, err := preview.Encode(m)
	if err != nil {
		return err
	}
	return c.write(data)
}

func (c *conn) send(v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(data)
}

func (c *conn) sendError(msg string) error {
	return c.send(map[string]any{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}

func (c *conn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = c.ws.Close()
}

func isUnexpectedClose(err error) bool {
	return websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
