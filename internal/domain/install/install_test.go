package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		tool Tool
		want string
	}{
		{NPM, "npx shadcn@latest add https://blocks.example.com/r/hero-01.json"},
		{PNPM, "pnpm dlx shadcn@latest add https://blocks.example.com/r/hero-01.json"},
		{Yarn, "yarn dlx shadcn@latest add https://blocks.example.com/r/hero-01.json"},
		{Bun, "bunx --bun shadcn@latest add https://blocks.example.com/r/hero-01.json"},
		{Tool("cargo"), "npx shadcn@latest add https://blocks.example.com/r/hero-01.json"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tool), func(t *testing.T) {
			assert.Equal(t, tt.want, Command(tt.tool, "https://blocks.example.com", "hero-01"))
		})
	}
}

func TestCommandTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t,
		"npx shadcn@latest add http://localhost:8000/r/faq-01.json",
		Command(NPM, "http://localhost:8000/", "faq-01"))
}

func TestParseTool(t *testing.T) {
	assert.Equal(t, PNPM, ParseTool("pnpm"))
	assert.Equal(t, Bun, ParseTool(" BUN "))
	assert.Equal(t, NPM, ParseTool(""))
	assert.Equal(t, NPM, ParseTool("deno"))
	assert.True(t, Yarn.Valid())
	assert.False(t, Tool("deno").Valid())
}

func TestOptions(t *testing.T) {
	opts := Options(Yarn, "https://x.dev", "hero-01")
	assert.Len(t, opts, 4)

	var selected []Tool
	for _, o := range opts {
		if o.Selected {
			selected = append(selected, o.Tool)
		}
	}
	assert.Equal(t, []Tool{Yarn}, selected)
	assert.Equal(t, NPM, opts[0].Tool)
}
