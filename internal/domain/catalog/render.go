package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// ErrNoPreview is returned when a block has no preview component
var ErrNoPreview = errors.New("block has no preview")

// Layout names accepted by the manifest
const (
	LayoutCentered   = "centered"
	LayoutFullscreen = "fullscreen"
	LayoutPadded     = "padded"
)

var layoutTemplates = map[string]string{
	LayoutCentered:   `<div class="pv-layout pv-layout-centered" data-screen="{{.Props.Screen}}">{{.Body}}</div>`,
	LayoutFullscreen: `<div class="pv-layout pv-layout-fullscreen" data-screen="{{.Props.Screen}}">{{.Body}}</div>`,
	LayoutPadded:     `<div class="pv-layout pv-layout-padded" data-screen="{{.Props.Screen}}">{{.Body}}</div>`,
}

// templateComponent renders a preview fragment parsed with html/template
type templateComponent struct {
	tmpl *template.Template
}

func (c templateComponent) Render(w io.Writer, props types.PreviewProps) error {
	return c.tmpl.Execute(w, props)
}

// templateLayout wraps rendered markup in a named layout
type templateLayout struct {
	name string
	tmpl *template.Template
}

type layoutData struct {
	Body  template.HTML
	Props types.PreviewProps
}

func (l templateLayout) Wrap(w io.Writer, body template.HTML, props types.PreviewProps) error {
	return l.tmpl.Execute(w, layoutData{Body: body, Props: props})
}

// Name returns the layout name
func (l templateLayout) Name() string {
	return l.name
}

// LayoutByName returns the named preview layout
func LayoutByName(name string) (types.Layout, bool) {
	src, ok := layoutTemplates[name]
	if !ok {
		return nil, false
	}
	tmpl := template.Must(template.New(name).Parse(src))
	return templateLayout{name: name, tmpl: tmpl}, true
}

// ParseComponent parses a preview fragment from fsys
func ParseComponent(fsys fs.FS, file string) (types.Component, error) {
	tmpl, err := template.New(path.Base(file)).ParseFS(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview %s: %w", file, err)
	}
	return templateComponent{tmpl: tmpl}, nil
}

// RenderPreview renders a block's component and wraps it in its layout
func RenderPreview(w io.Writer, b types.Block, props types.PreviewProps) error {
	if b.Component == nil {
		return ErrNoPreview
	}

	if props.Block == "" {
		props.Block = b.Name
	}

	if b.Layout == nil {
		return b.Component.Render(w, props)
	}

	var body bytes.Buffer
	if err := b.Component.Render(&body, props); err != nil {
		return err
	}
	return b.Layout.Wrap(w, template.HTML(body.String()), props)
}
