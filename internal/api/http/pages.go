package http

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/blockhub/internal/api/middleware"
	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/code"
	"github.com/GriffinCanCode/blockhub/internal/domain/install"
	"github.com/GriffinCanCode/blockhub/internal/domain/preview"
	"github.com/GriffinCanCode/blockhub/internal/domain/search"
	"github.com/GriffinCanCode/blockhub/internal/domain/seo"
	"github.com/GriffinCanCode/blockhub/internal/shared/id"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
	"github.com/GriffinCanCode/blockhub/internal/web"
)

// Preview screen sizes
const (
	ScreenDesktop = "desktop"
	ScreenTablet  = "tablet"
	ScreenMobile  = "mobile"
)

// Screens returns the preview screen sizes in display order
func Screens() []string {
	return []string{ScreenDesktop, ScreenTablet, ScreenMobile}
}

func parseScreen(s string) string {
	for _, screen := range Screens() {
		if s == screen {
			return s
		}
	}
	return ScreenDesktop
}

const (
	featuredBlocks = 6
	relatedBlocks  = 3
)

type categorySummary struct {
	Category types.Category
	Count    int
}

type homePage struct {
	page
	Total      int
	Categories []categorySummary
	Featured   []types.Block
}

// Home renders the landing page
func (h *Handlers) Home(c *gin.Context) {
	stats := h.catalog.Stats()
	categories := h.catalog.Categories()

	summaries := make([]categorySummary, 0, len(categories))
	for _, cat := range categories {
		summaries = append(summaries, categorySummary{Category: cat, Count: stats.Categories[cat.Name]})
	}

	featured := h.catalog.All()
	if len(featured) > featuredBlocks {
		featured = featured[:featuredBlocks]
	}

	h.html(c, http.StatusOK, web.PageHome, homePage{
		page:       h.newPage(c, h.site.Home()),
		Total:      h.catalog.Len(),
		Categories: summaries,
		Featured:   featured,
	})
}

type catalogPage struct {
	page
	Heading     string
	Description string
	Crumbs      []seo.Crumb
	Query       string
	State       search.State
	View        search.View
	Total       int
	Blocks      []types.Block
	Socket      string
}

func (h *Handlers) catalogPage(c *gin.Context, p page, blocks []types.Block) catalogPage {
	query := utils.NormalizeQuery(c.Query("q"))
	cols, _ := strconv.Atoi(c.Query("cols"))
	filtered := search.Filter(blocks, query)
	state := search.Outcome(len(blocks), len(filtered))
	if query != "" {
		h.metrics.TrackSearch(state)
	}

	return catalogPage{
		page:   p,
		Query:  query,
		State:  state,
		View:   search.ParseView(c.Query("view"), cols),
		Total:  len(blocks),
		Blocks: filtered,
		Socket: "/ws/search",
	}
}

// Catalog renders every block with search and view toggles
func (h *Handlers) Catalog(c *gin.Context) {
	data := h.catalogPage(c, h.newPage(c, h.site.Catalog()), h.catalog.All())
	data.Heading = "All Blocks"
	data.Description = "Every block in the registry."
	data.Crumbs = []seo.Crumb{{Name: "Home", Path: "/"}, {Name: "Blocks", Path: "/blocks"}}
	h.html(c, http.StatusOK, web.PageCatalog, data)
}

// Category renders the blocks of one category. Categories missing from
// the manifest are not found; known categories without blocks render empty.
func (h *Handlers) Category(c *gin.Context) {
	name := c.Param("category")
	cat, ok := h.catalog.Category(name)
	if !ok {
		h.notFound(c, "That category does not exist.")
		return
	}

	data := h.catalogPage(c, h.newPage(c, h.site.Category(cat)), h.catalog.ByCategory(name))
	data.Heading = cat.Title
	data.Description = cat.Description
	data.Crumbs = []seo.Crumb{{Name: "Home", Path: "/"}, {Name: cat.Title, Path: "/categories/" + cat.Name}}
	data.Socket = "/ws/search?category=" + url.QueryEscape(cat.Name)
	h.html(c, http.StatusOK, web.PageCatalog, data)
}

type sourceView struct {
	code.Source
	Index int
	HTML  template.HTML
}

type blockPage struct {
	page
	Block       types.Block
	Crumbs      []seo.Crumb
	Channel     id.ChannelID
	PreviewURL  string
	HasPreview  bool
	Stack       string
	Stacks      []string
	Screen      string
	Screens     []string
	Presets     []types.Preset
	Sources     []sourceView
	Install     []install.Option
	Related     []types.Block
}

// Block renders a block's detail page
func (h *Handlers) Block(c *gin.Context) {
	name := c.Param("name")
	b, ok := h.catalog.ByName(name)
	h.metrics.TrackLookup(ok)
	if !ok {
		h.notFound(c, "That block does not exist.")
		return
	}

	p := h.newPage(c, h.site.Block(b))
	jsonld, err := seo.BlockJSONLD(h.site, b)
	if err != nil {
		h.logError(c, "Failed to render structured data", err)
	}
	p.JSONLD = jsonld

	stack := resolveStack(b, c.Query("stack"))
	screen := parseScreen(c.Query("screen"))
	channel := id.NewChannelID()

	sources := h.reader.ForBlock(c.Request.Context(), b, stack, h.projection.PublicTemplate)
	views := make([]sourceView, 0, len(sources))
	for i, src := range sources {
		highlighted, err := h.highlighter.Highlight(src.Content, src.Path)
		if err != nil {
			h.logger.Debug("Highlight fell back to plain text")
		}
		views = append(views, sourceView{Source: src, Index: i, HTML: highlighted})
	}

	h.html(c, http.StatusOK, web.PageBlock, blockPage{
		page:       p,
		Block:      b,
		Crumbs:     seo.Breadcrumbs(b),
		Channel:    channel,
		PreviewURL: previewURL(b.Name, channel, stack, screen, p.Prefs.Theme),
		HasPreview: b.Component != nil,
		Stack:      stack,
		Stacks:     b.Stacks,
		Screen:     screen,
		Screens:    Screens(),
		Presets:    preview.Presets(),
		Sources:    views,
		Install:    install.Options(p.Prefs.PackageManager, h.site.BaseURL, b.Name),
		Related:    h.related(b),
	})
}

func (h *Handlers) related(b types.Block) []types.Block {
	primary, ok := b.PrimaryCategory()
	if !ok {
		return nil
	}
	var out []types.Block
	for _, other := range h.catalog.ByCategory(primary.Name) {
		if other.Name == b.Name {
			continue
		}
		out = append(out, other)
		if len(out) == relatedBlocks {
			break
		}
	}
	return out
}

// resolveStack picks the requested stack when the block offers it, else
// the block's first stack
func resolveStack(b types.Block, requested string) string {
	if len(b.Stacks) == 0 {
		return ""
	}
	if requested != "" && b.SupportsStack(requested) {
		return requested
	}
	return b.Stacks[0]
}

func previewURL(name string, channel id.ChannelID, stack, screen string, theme types.ThemeState) string {
	q := url.Values{}
	q.Set("channel", channel.String())
	if stack != "" {
		q.Set("stack", stack)
	}
	q.Set("screen", screen)
	q.Set("theme", string(theme.Mode))
	q.Set("preset", theme.Preset.Name)
	return "/preview/" + url.PathEscape(name) + "?" + q.Encode()
}

type previewPage struct {
	Block     types.Block
	RootClass string
	Variables template.CSS
	Body      template.HTML
	Channel   string
	Screen    string
	Stack     string
}

// Preview renders a block alone, themed, for the detail page iframe. Query
// parameters override the visitor's saved theme until the host takes over.
func (h *Handlers) Preview(c *gin.Context) {
	b, ok := h.catalog.ByName(c.Param("name"))
	h.metrics.TrackLookup(ok)
	if !ok {
		c.String(http.StatusNotFound, "Block not found")
		return
	}
	if b.Component == nil {
		c.String(http.StatusNotFound, catalog.ErrNoPreview.Error())
		return
	}

	state := middleware.MustPreferences(c).Theme
	if mode := types.ThemeMode(c.Query("theme")); mode.Valid() {
		state.Mode = mode
	}
	if preset, ok := preview.PresetByName(c.Query("preset")); ok {
		state.Preset = preset
	}
	doc := preview.NewDocument(state)

	stack := resolveStack(b, c.Query("stack"))
	screen := parseScreen(c.Query("screen"))

	var body bytes.Buffer
	err := catalog.RenderPreview(&body, b, types.PreviewProps{
		Block:  b.Name,
		Mode:   doc.Mode(),
		Stack:  stack,
		Screen: screen,
	})
	if err != nil {
		h.logError(c, "Failed to render preview", err)
		c.String(http.StatusInternalServerError, "Preview failed")
		return
	}

	channel := c.Query("channel")
	if !id.IsValidPrefixed(channel, id.ChannelPrefix) {
		channel = ""
	}

	c.Header("Content-Security-Policy", "frame-ancestors 'self'")
	h.html(c, http.StatusOK, web.PagePreview, previewPage{
		Block:     b,
		RootClass: doc.RootClass(),
		Variables: template.CSS(doc.Variables),
		Body:      template.HTML(body.String()),
		Channel:   channel,
		Screen:    screen,
		Stack:     stack,
	})
}
