package catalog

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Catalog is the immutable, process-wide set of blocks and categories
type Catalog struct {
	blocks     []types.Block
	index      map[string]int
	categories []types.Category
}

// New builds a catalog from already-resolved blocks and the category
// catalog. Block names must be unique.
func New(categories []types.Category, blocks []types.Block) (*Catalog, error) {
	c := &Catalog{
		blocks:     make([]types.Block, len(blocks)),
		index:      make(map[string]int, len(blocks)),
		categories: make([]types.Category, len(categories)),
	}
	copy(c.categories, categories)

	for i, b := range blocks {
		if _, exists := c.index[b.Name]; exists {
			return nil, fmt.Errorf("duplicate block %q", b.Name)
		}
		c.index[b.Name] = i
		c.blocks[i] = cloneBlock(b)
	}

	return c, nil
}

// Len returns the number of blocks
func (c *Catalog) Len() int {
	return len(c.blocks)
}

// All returns every block in manifest order
func (c *Catalog) All() []types.Block {
	out := make([]types.Block, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = cloneBlock(b)
	}
	return out
}

// ByName returns the block with the exact name
func (c *Catalog) ByName(name string) (types.Block, bool) {
	i, ok := c.index[name]
	if !ok {
		return types.Block{}, false
	}
	return cloneBlock(c.blocks[i]), true
}

// ByCategory returns the blocks that reference the category, in catalog order
func (c *Catalog) ByCategory(name string) []types.Block {
	out := make([]types.Block, 0)
	for _, b := range c.blocks {
		if b.HasCategory(name) {
			out = append(out, cloneBlock(b))
		}
	}
	return out
}

// Categories returns the distinct categories referenced by at least one
// block, sorted by title
func (c *Catalog) Categories() []types.Category {
	seen := make(map[string]bool)
	out := make([]types.Category, 0)

	for _, b := range c.blocks {
		for _, cat := range b.Categories {
			if seen[cat.Name] {
				continue
			}
			seen[cat.Name] = true
			out = append(out, cat)
		}
	}

	SortByTitle(out)
	return out
}

// AllCategories returns the full category catalog in manifest order,
// including categories no block references
func (c *Catalog) AllCategories() []types.Category {
	out := make([]types.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category of the category catalog by name
func (c *Catalog) Category(name string) (types.Category, bool) {
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return types.Category{}, false
}

// Stats summarises the catalog
func (c *Catalog) Stats() types.CatalogStats {
	stats := types.CatalogStats{
		TotalBlocks: len(c.blocks),
		Categories:  make(map[string]int),
	}
	for _, b := range c.blocks {
		for _, cat := range b.Categories {
			stats.Categories[cat.Name]++
		}
	}
	return stats
}

// SortByTitle sorts categories by title using English collation
func SortByTitle(categories []types.Category) {
	col := collate.New(language.English)
	sort.SliceStable(categories, func(i, j int) bool {
		return col.CompareString(categories[i].Title, categories[j].Title) < 0
	})
}

func cloneBlock(b types.Block) types.Block {
	b.Categories = append([]types.Category(nil), b.Categories...)
	b.Files = append([]types.File(nil), b.Files...)
	b.Dependencies = append([]string(nil), b.Dependencies...)
	b.RegistryDependencies = append([]string(nil), b.RegistryDependencies...)
	b.Stacks = append([]string(nil), b.Stacks...)
	return b
}
