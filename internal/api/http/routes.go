package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/blockhub/internal/web"
)

// Register mounts every page, registry and form route on the router.
// api runs in front of the form endpoints only.
func (h *Handlers) Register(router *gin.Engine, api ...gin.HandlerFunc) {
	static := router.Group("/static", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		c.Next()
	})
	static.StaticFS("/", http.FS(web.Static()))
	router.GET("/assets/code.css", h.CodeCSS)

	router.GET("/health", h.Health)

	// Pages
	router.GET("/", h.Home)
	router.GET("/blocks", h.Catalog)
	router.GET("/blocks/:name", h.Block)
	router.GET("/categories/:category", h.Category)
	router.GET("/preview/:name", h.Preview)

	// Registry
	router.GET("/r/:name", h.RegistryItem)

	// SEO
	router.GET("/sitemap.xml", h.Sitemap)
	router.GET("/robots.txt", h.Robots)

	// Forms
	forms := router.Group("/api", api...)
	forms.POST("/waitlist", h.Waitlist)
	forms.POST("/auth/sign-in", h.SignIn)
	router.POST("/preferences/package-manager", h.SetPackageManager)

	// Metrics
	if h.promMetrics != nil {
		router.GET("/metrics", gin.WrapH(h.promMetrics.Handler()))
	}
	router.GET("/metrics/json", h.aggregator.GetAggregatedMetrics)

	router.NoRoute(h.NoRoute)
}
