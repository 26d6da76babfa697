package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/blockhub/internal/domain/seo"
)

// Sitemap serves /sitemap.xml
func (h *Handlers) Sitemap(c *gin.Context) {
	data, err := seo.Sitemap(h.site, h.catalog, h.now()).Marshal()
	if err != nil {
		h.logError(c, "Failed to render sitemap", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

// Robots serves /robots.txt
func (h *Handlers) Robots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.String(http.StatusOK, h.site.Robots())
}

// CodeCSS serves the stylesheet of the syntax highlighter
func (h *Handlers) CodeCSS(c *gin.Context) {
	css, err := h.highlighter.CSS()
	if err != nil {
		h.logError(c, "Failed to render code stylesheet", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
