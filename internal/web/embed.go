// Package web holds the embedded page templates and static assets of the
// gallery. Templates share one set; every page is a named template that
// pulls in the "head", "nav" and "foot" partials.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates static
var files embed.FS

// Page template names
const (
	PageHome     = "home"
	PageCatalog  = "catalog"
	PageBlock    = "block"
	PagePreview  = "preview"
	PageNotFound = "notfound"
)

// Funcs are the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join":  strings.Join,
		"lower": strings.ToLower,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"seq": func(from, to int) []int {
			out := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}

// Templates parses every page template
func Templates() (*template.Template, error) {
	tmpl, err := template.New("pages").Funcs(Funcs()).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the static asset tree served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
