package catalog

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

const testManifest = `
categories:
  - name: hero
    title: Hero Sections
  - name: faq
    title: FAQ
blocks:
  - name: hero-01
    title: Hero
    description: Centered hero
    categories: [hero]
    layout: centered
    files:
      - path: registry/blocks/hero-01/components/*.tsx
  - name: faq-01
    title: FAQ
    categories: [faq]
    files:
      - path: registry/blocks/faq-01/faq.tsx
        type: registry:page
        target: app/faq/page.tsx
`

func testFS(manifest string) fstest.MapFS {
	return fstest.MapFS{
		"blocks.yaml": {Data: []byte(manifest)},
		"registry/blocks/hero-01/components/b.tsx": {Data: []byte("export const B = 1")},
		"registry/blocks/hero-01/components/a.tsx": {Data: []byte("export const A = 1")},
		"registry/blocks/hero-01/components/a.css": {Data: []byte(".a{}")},
		"registry/blocks/faq-01/faq.tsx":           {Data: []byte("export const F = 1")},
		"previews/hero-01.html":                    {Data: []byte(`<h1>{{.Block}} {{.Mode}}</h1>`)},
	}
}

func TestLoadYAML(t *testing.T) {
	c, err := NewLoader(testFS(testManifest), "", nil).Load()
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	hero, ok := c.ByName("hero-01")
	require.True(t, ok)
	require.Len(t, hero.Files, 2)
	assert.Equal(t, "registry/blocks/hero-01/components/a.tsx", hero.Files[0].Path)
	assert.Equal(t, "registry/blocks/hero-01/components/b.tsx", hero.Files[1].Path)
	assert.Equal(t, types.FileTypeComponent, hero.Files[0].Type)
	assert.NotNil(t, hero.Component)
	assert.NotNil(t, hero.Layout)

	faq, ok := c.ByName("faq-01")
	require.True(t, ok)
	assert.Nil(t, faq.Component)
	assert.Nil(t, faq.Layout)
	assert.Equal(t, "app/faq/page.tsx", faq.Files[0].Target)
	assert.Equal(t, types.FileTypePage, faq.Files[0].Type)
}

func TestLoadTOML(t *testing.T) {
	fsys := testFS("")
	fsys["blocks.toml"] = &fstest.MapFile{Data: []byte(`
[[categories]]
name = "faq"
title = "FAQ"

[[blocks]]
name = "faq-01"
title = "FAQ"
categories = ["faq"]
registryDependencies = ["accordion"]

[[blocks.files]]
path = "registry/blocks/faq-01/faq.tsx"
`)}

	c, err := NewLoader(fsys, "blocks.toml", nil).Load()
	require.NoError(t, err)

	b, ok := c.ByName("faq-01")
	require.True(t, ok)
	assert.Equal(t, []string{"accordion"}, b.RegistryDependencies)
	assert.Equal(t, "faq", b.Categories[0].Name)
}

func TestLoadRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{
			name: "unknown category",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [faq], files: [{path: x.tsx}]}
`,
		},
		{
			name: "duplicate block",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [hero], files: [{path: x.tsx}]}
  - {name: a, title: B, categories: [hero], files: [{path: y.tsx}]}
`,
		},
		{
			name: "invalid slug",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: Hero_01, title: A, categories: [hero], files: [{path: x.tsx}]}
`,
		},
		{
			name: "no files",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [hero]}
`,
		},
		{
			name: "unknown layout",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [hero], layout: sideways, files: [{path: x.tsx}]}
`,
		},
		{
			name: "undeclared stack",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [hero], files: [{path: x.tsx, stack: supabase}]}
`,
		},
		{
			name: "glob without matches",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [hero], files: [{path: "registry/blocks/a/**/*.tsx"}]}
`,
		},
		{
			name: "missing explicit preview",
			manifest: `
categories: [{name: hero, title: Hero}]
blocks:
  - {name: a, title: A, categories: [hero], preview: previews/missing.html, files: [{path: x.tsx}]}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(testFS(tt.manifest), "", nil).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsIndexName(t *testing.T) {
	_, err := NewLoader(testFS(`
categories: [{name: hero, title: Hero}]
blocks:
  - {name: registry, title: Registry, categories: [hero], files: [{path: x.tsx}]}
`), "", nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestLoadUnsupportedFormat(t *testing.T) {
	fsys := testFS(testManifest)
	fsys["blocks.json"] = &fstest.MapFile{Data: []byte(`{}`)}
	_, err := NewLoader(fsys, "blocks.json", nil).Load()
	assert.Error(t, err)
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := NewLoader(fstest.MapFS{}, "", nil).Load()
	assert.Error(t, err)
}

func TestRenderPreview(t *testing.T) {
	c, err := NewLoader(testFS(testManifest), "", nil).Load()
	require.NoError(t, err)

	hero, _ := c.ByName("hero-01")
	var buf bytes.Buffer
	require.NoError(t, RenderPreview(&buf, hero, types.PreviewProps{Mode: types.ModeDark, Screen: "mobile"}))

	out := buf.String()
	assert.Contains(t, out, `<h1>hero-01 dark</h1>`)
	assert.Contains(t, out, `pv-layout-centered`)
	assert.Contains(t, out, `data-screen="mobile"`)

	faq, _ := c.ByName("faq-01")
	assert.ErrorIs(t, RenderPreview(&buf, faq, types.PreviewProps{}), ErrNoPreview)
}

func TestRenderPreviewWithoutLayout(t *testing.T) {
	fsys := fstest.MapFS{"previews/x.html": {Data: []byte(`<p>{{.Stack}}</p>`)}}
	component, err := ParseComponent(fsys, "previews/x.html")
	require.NoError(t, err)

	var buf bytes.Buffer
	b := types.Block{Name: "x", Component: component}
	require.NoError(t, RenderPreview(&buf, b, types.PreviewProps{Stack: "supabase"}))
	assert.Equal(t, "<p>supabase</p>", buf.String())
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	c := embeddedCatalog(t)
	assert.GreaterOrEqual(t, c.Len(), 10)

	dash, ok := c.ByName("dashboard-01")
	require.True(t, ok)
	var names []string
	for _, f := range dash.Files {
		names = append(names, f.Path)
	}
	assert.Contains(t, names, "registry/blocks/dashboard-01/components/charts/revenue-chart.tsx")
	assert.Contains(t, names, "registry/blocks/dashboard-01/components/stats-cards.tsx")

	for _, b := range c.All() {
		assert.NotNil(t, b.Component, "%s has no preview", b.Name)
	}
}
