package ws

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/domain/search"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Message types of the search socket
const (
	TypeSearch  = "search"
	TypeView    = "view"
	TypeResults = "results"
)

// ResultsMessage carries a recomputed catalog view
type ResultsMessage struct {
	Type   string        `json:"type"`
	Result search.Result `json:"result"`
}

// Search runs a live search session over the catalog, or over one
// category when category= is given.
func (h *Handler) Search(c *gin.Context) {
	blocks := h.catalog.All()
	if name := c.Query("category"); name != "" {
		if _, ok := h.catalog.Category(name); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		blocks = h.catalog.ByCategory(name)
	}

	cn, ok := h.upgrade(c, endpointSearch)
	if !ok {
		return
	}
	defer h.release(cn, endpointSearch)

	results := func(r search.Result) {
		if err := cn.send(ResultsMessage{Type: TypeResults, Result: r}); err != nil {
			h.logger.Debug("Failed to send search results", zap.Error(err))
		}
	}
	session := search.NewSession(blocks, h.opts.Debounce, results)
	defer session.Close()

	for {
		_, data, err := cn.ws.ReadMessage()
		if err != nil {
			if isUnexpectedClose(err) {
				h.logger.Debug("Search socket closed", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			if cn.sendError("malformed message") != nil {
				return
			}
			continue
		}

		switch msg.Type {
		case TypeSearch:
			session.SetSearch(msg.Query)
		case TypeView:
			session.SetView(msg.View, msg.Columns)
			session.Refresh()
		default:
			if cn.sendError("unknown message type") != nil {
				return
			}
		}
	}
}
