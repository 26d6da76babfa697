package code

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/content"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) RecordCodeRead(empty bool) {
	m.Called(empty)
}

func TestRewriteImportsProperty(t *testing.T) {
	src := `import { X } from "@/registry/blocks/foo-01/components/x"
// keep this comment
const s = "unrelated"
`
	got := RewriteImports(src)

	assert.Contains(t, got, `from "@/components/x"`)
	assert.Equal(t, strings.Replace(src, `"@/registry/blocks/foo-01/components/`, `"@/components/`, 1), got)
}

func TestRewriteImports(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "ui primitive",
			in:   `import { Button } from "@/registry/blocks/hero-01/ui/button"`,
			want: `import { Button } from "@/components/ui/button"`,
		},
		{
			name: "lib with single quotes",
			in:   `import { cn } from '@/registry/blocks/hero-01/lib/utils'`,
			want: `import { cn } from '@/lib/utils'`,
		},
		{
			name: "hook",
			in:   `import { useSession } from "@/registry/blocks/auth-01/hooks/use-session"`,
			want: `import { useSession } from "@/hooks/use-session"`,
		},
		{
			name: "nested component path",
			in:   `import { Chart } from "@/registry/blocks/dashboard-01/components/charts/revenue"`,
			want: `import { Chart } from "@/components/charts/revenue"`,
		},
		{
			name: "other namespaces untouched",
			in:   `import x from "@/registry/blocks/hero-01/styles/x.css"`,
			want: `import x from "@/registry/blocks/hero-01/styles/x.css"`,
		},
		{
			name: "unquoted mention untouched",
			in:   `// see @/registry/blocks/hero-01/components/x`,
			want: `// see @/registry/blocks/hero-01/components/x`,
		},
		{
			name: "package imports untouched",
			in:   `import { motion } from "motion/react"`,
			want: `import { motion } from "motion/react"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteImports(tt.in))
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	obs := &mockObserver{}
	obs.On("RecordCodeRead", true).Return()

	r := NewReader(fstest.MapFS{}, nil, obs)
	assert.Equal(t, "", r.Get(context.Background(), "missing/path.tsx"))
	obs.AssertExpectations(t)
}

func TestReaderRejectsEscapes(t *testing.T) {
	r := NewReader(fstest.MapFS{"a.tsx": {Data: []byte("x")}}, nil, nil)
	assert.Equal(t, "", r.Get(context.Background(), "../a.tsx"))
	assert.Equal(t, "", r.Get(context.Background(), "/a.tsx"))
}

func TestReaderText(t *testing.T) {
	obs := &mockObserver{}
	obs.On("RecordCodeRead", false).Return()

	r := NewReader(fstest.MapFS{"a.tsx": {Data: []byte("export const A = 1\n")}}, nil, obs)
	assert.Equal(t, "export const A = 1\n", r.Get(context.Background(), "a.tsx"))
	obs.AssertExpectations(t)
}

func TestReaderBinary(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
	r := NewReader(fstest.MapFS{"image.png": {Data: png}}, nil, nil)
	assert.Equal(t, "", r.Get(context.Background(), "image.png"))
}

func TestReaderTranscodes(t *testing.T) {
	latin1 := []byte("// Caf\xe9 au lait, cr\xe8me br\xfbl\xe9e et na\xefve r\xe9sum\xe9 pour le d\xe9jeuner\nexport const menu = \"caf\xe9\"\n")
	r := NewReader(fstest.MapFS{"menu.ts": {Data: latin1}}, nil, nil)

	got := r.Get(context.Background(), "menu.ts")
	assert.Contains(t, got, "Café")
	assert.Contains(t, got, "crème")
}

func TestReaderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewReader(fstest.MapFS{"a.tsx": {Data: []byte("x")}}, nil, nil)
	assert.Equal(t, "", r.Get(ctx, "a.tsx"))
}

func TestForBlock(t *testing.T) {
	r := NewReader(content.FS(), nil, nil)
	b := types.Block{
		Name: "auth-01",
		Files: []types.File{
			{Path: "registry/blocks/auth-01/components/login-form.tsx"},
			{Path: "registry/blocks/auth-01/lib/auth-supabase.ts", Type: types.FileTypeLib, Stack: "supabase"},
			{Path: "registry/blocks/auth-01/lib/auth-postgres.ts", Type: types.FileTypeLib, Stack: "postgres"},
		},
	}

	sources := r.ForBlock(context.Background(), b, "supabase", "")
	require.Len(t, sources, 2)
	assert.Equal(t, "registry/default/blocks/auth-01/components/login-form.tsx", sources[0].PublicPath)
	assert.Equal(t, types.FileTypeComponent, sources[0].Type)
	assert.Contains(t, sources[0].Content, `from "@/components/ui/button"`)
	assert.Contains(t, sources[0].Content, `from "@/hooks/use-session"`)
	assert.NotContains(t, sources[0].Content, "@/registry/blocks/")
	assert.Equal(t, types.FileTypeLib, sources[1].Type)
}

func TestHighlight(t *testing.T) {
	h := NewHighlighter("")

	out, err := h.Highlight(`const greeting: string = "<hi>"`, "greeting.ts")
	require.NoError(t, err)
	assert.Contains(t, string(out), `class="chroma"`)
	assert.Contains(t, string(out), "&lt;hi&gt;")
	assert.NotContains(t, string(out), "<hi>")
	assert.NotContains(t, string(out), "style=")

	again, err := h.Highlight(`const greeting: string = "<hi>"`, "greeting.ts")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	css, err := h.CSS()
	require.NoError(t, err)
	assert.Contains(t, css, ".chroma")
}

func TestPlain(t *testing.T) {
	assert.Equal(t, `<pre class="chroma"><code>&lt;script&gt;</code></pre>`, string(Plain("<script>")))
}

func TestAttach(t *testing.T) {
	r := NewReader(content.FS(), nil, nil)
	b := types.Block{
		Name: "faq-01",
		Files: []types.File{
			{Path: "registry/blocks/faq-01/components/faq-section.tsx"},
			{Path: "registry/blocks/faq-01/components/missing.tsx"},
		},
	}
	item := types.RegistryItem{Files: []types.RegistryFile{{Path: "a"}, {Path: "b"}}}

	r.Attach(context.Background(), b, "", &item)
	assert.Contains(t, item.Files[0].Content, `from "@/components/ui/accordion"`)
	assert.Empty(t, item.Files[1].Content)
}
