package code

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
)

// DefaultStyle is the chroma style used when none is configured
const DefaultStyle = "github"

// Highlighter renders source as class-based HTML
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	policy    *bluemonday.Policy
	hasher    *utils.Hasher
	cache     sync.Map // filename:digest -> template.HTML
}

// NewHighlighter creates a highlighter for a chroma style name. Unknown
// styles fall back to chroma's default.
func NewHighlighter(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}

	policy := bluemonday.NewPolicy()
	policy.AllowElements("pre", "code", "span")
	policy.AllowAttrs("class").OnElements("pre", "code", "span")

	return &Highlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(2)),
		policy:    policy,
		hasher:    utils.DefaultHasher(),
	}
}

// Highlight renders src, picking the lexer from filename. On failure the
// escaped plain text is returned together with the error.
func (h *Highlighter) Highlight(src, filename string) (template.HTML, error) {
	key := filename + ":" + h.hasher.Hash([]byte(src))
	if cached, ok := h.cache.Load(key); ok {
		return cached.(template.HTML), nil
	}

	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return Plain(src), fmt.Errorf("failed to tokenise %s: %w", filename, err)
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return Plain(src), fmt.Errorf("failed to format %s: %w", filename, err)
	}

	out := template.HTML(h.policy.Sanitize(buf.String()))
	h.cache.Store(key, out)
	return out, nil
}

// CSS returns the stylesheet for the highlighter's classes
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Plain renders src as escaped, unhighlighted code
func Plain(src string) template.HTML {
	return template.HTML(`<pre class="chroma"><code>` + html.EscapeString(src) + `</code></pre>`)
}
