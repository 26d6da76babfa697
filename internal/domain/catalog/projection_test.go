package catalog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

func TestToRegistryItem(t *testing.T) {
	c := embeddedCatalog(t)
	b, ok := c.ByName("hero-01")
	require.True(t, ok)

	item := ToRegistryItem(b, ProjectionOptions{})

	assert.Equal(t, "hero-01", item.Name)
	assert.Equal(t, types.ItemTypeBlock, item.Type)
	assert.Equal(t, "hero", item.Meta.Category)
	assert.Equal(t, []string{"hero", "marketing"}, item.Meta.Tags)
	assert.Equal(t, "/previews/hero-01.png", item.Meta.Image)
	assert.Equal(t, []string{"lucide-react"}, item.Dependencies)
	assert.Equal(t, []string{"button", "badge"}, item.RegistryDependencies)

	require.Len(t, item.Files, 2)
	assert.Equal(t, "registry/default/blocks/hero-01/page.tsx", item.Files[0].Path)
	assert.Equal(t, types.FileTypePage, item.Files[0].Type)
	assert.Equal(t, "app/page.tsx", item.Files[0].Target)
	assert.Equal(t, "registry/default/blocks/hero-01/components/hero-section.tsx", item.Files[1].Path)
	assert.Equal(t, types.FileTypeComponent, item.Files[1].Type)
	assert.Empty(t, item.Files[1].Content)
}

func TestToRegistryItemCustomTemplate(t *testing.T) {
	b := types.Block{
		Name:  "faq-01",
		Files: []types.File{{Path: "registry/blocks/faq-01/components/faq.tsx"}},
	}
	item := ToRegistryItem(b, ProjectionOptions{PublicTemplate: "blocks/{name}/{file}"})
	require.Len(t, item.Files, 1)
	assert.Equal(t, "blocks/faq-01/components/faq.tsx", item.Files[0].Path)
	assert.Empty(t, item.Meta.Category)
	assert.NotNil(t, item.Meta.Tags)
	assert.NotNil(t, item.Dependencies)
}

func TestToRegistryItemStackFiles(t *testing.T) {
	c := embeddedCatalog(t)
	b, ok := c.ByName("auth-01")
	require.True(t, ok)

	shared := ToRegistryItem(b, ProjectionOptions{})
	supabase := ToRegistryItem(b, ProjectionOptions{Stack: "supabase"})

	assert.Len(t, shared.Files, 2)
	assert.Len(t, supabase.Files, 3)
	assert.Equal(t, "registry/default/blocks/auth-01/lib/auth-supabase.ts", supabase.Files[2].Path)
}

func TestToRegistryItemIsPure(t *testing.T) {
	c := embeddedCatalog(t)
	b, _ := c.ByName("pricing-01")

	first := ToRegistryItem(b, ProjectionOptions{})
	first.Dependencies = append(first.Dependencies, "mutated")
	first.Meta.Tags[0] = "mutated"

	second := ToRegistryItem(b, ProjectionOptions{})
	assert.NotContains(t, second.Dependencies, "mutated")
	assert.Equal(t, "pricing", second.Meta.Tags[0])
}

func TestRegistryItemsNeverCarryPreviewUnits(t *testing.T) {
	c := embeddedCatalog(t)

	for _, b := range c.All() {
		data, err := json.Marshal(ToRegistryItem(b, ProjectionOptions{}))
		require.NoError(t, err)

		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.NotContains(t, fields, "component", b.Name)
		assert.NotContains(t, fields, "Component", b.Name)
		assert.NotContains(t, fields, "layout", b.Name)
		assert.NotContains(t, fields, "Layout", b.Name)
	}
}

func TestBlockJSONOmitsPreviewUnits(t *testing.T) {
	c := embeddedCatalog(t)
	b, _ := c.ByName("hero-01")
	require.NotNil(t, b.Component)
	require.NotNil(t, b.Layout)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(data, []byte("Component")))
	assert.False(t, bytes.Contains(data, []byte("Layout")))
}

func TestToRegistryIndex(t *testing.T) {
	c := embeddedCatalog(t)
	index := c.ToRegistryIndex(ProjectionOptions{RegistryName: "blockhub", Homepage: "https://example.com"})

	assert.Equal(t, types.RegistryIndexSchema, index.Schema)
	assert.Equal(t, "blockhub", index.Name)
	assert.Equal(t, "https://example.com", index.Homepage)
	require.Len(t, index.Items, c.Len())
	for i, b := range c.All() {
		assert.Equal(t, b.Name, index.Items[i].Name)
		assert.Empty(t, index.Items[i].Schema)
	}
}
