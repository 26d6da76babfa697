package http

import (
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
)

const registryCacheValue = "public, max-age=3600"

// RegistryItem serves /r/:name for installers. The .json suffix is optional,
// "registry" returns the index, and ?stack= selects a stack variant.
func (h *Handlers) RegistryItem(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".json")
	if name == paths.IndexName {
		h.registryIndex(c)
		return
	}

	b, ok := h.catalog.ByName(name)
	h.metrics.TrackLookup(ok)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Block not found"})
		return
	}

	stack := c.Query("stack")
	if stack != "" && !b.SupportsStack(stack) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported stack"})
		return
	}
	stack = resolveStack(b, stack)

	opts := h.projection
	opts.Stack = stack
	item := catalog.ToRegistryItem(b, opts)
	h.reader.Attach(c.Request.Context(), b, stack, &item)

	data, err := sonic.Marshal(item)
	if err != nil {
		h.logError(c, "Failed to encode registry item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	h.serveJSON(c, data)
}

func (h *Handlers) registryIndex(c *gin.Context) {
	data, err := sonic.Marshal(h.catalog.ToRegistryIndex(h.projection))
	if err != nil {
		h.logError(c, "Failed to encode registry index", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	h.logger.Debug("Serving registry index", zap.Int("items", h.catalog.Len()))
	h.serveJSON(c, data)
}

// serveJSON writes a cacheable JSON document, answering conditional
// requests with 304
func (h *Handlers) serveJSON(c *gin.Context, data []byte) {
	etag := h.hasher.ETag(data)
	c.Header("Cache-Control", registryCacheValue)
	c.Header("ETag", etag)

	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
