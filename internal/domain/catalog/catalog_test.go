package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GriffinCanCode/blockhub/internal/content"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

var (
	heroCategory = types.Category{Name: "hero", Title: "Hero Sections"}
	faqCategory  = types.Category{Name: "faq", Title: "FAQ"}
)

func scenarioCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New([]types.Category{heroCategory, faqCategory}, []types.Block{
		{Name: "hero-01", Title: "Hero", Categories: []types.Category{heroCategory}},
		{Name: "faq-01", Title: "FAQ", Categories: []types.Category{faqCategory}},
	})
	require.NoError(t, err)
	return c
}

func embeddedCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewLoader(content.FS(), "", nil).Load()
	require.NoError(t, err)
	return c
}

func TestScenarioLookup(t *testing.T) {
	c := scenarioCatalog(t)

	hero := c.ByCategory("hero")
	require.Len(t, hero, 1)
	assert.Equal(t, "hero-01", hero[0].Name)

	_, ok := c.ByName("does-not-exist")
	assert.False(t, ok)
}

func TestByNameRoundTrip(t *testing.T) {
	c := embeddedCatalog(t)

	for _, b := range c.All() {
		got, ok := c.ByName(b.Name)
		require.True(t, ok, b.Name)
		assert.Equal(t, b, got)
	}
}

func TestAllPreservesOrderAndIsACopy(t *testing.T) {
	c := scenarioCatalog(t)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "hero-01", all[0].Name)
	assert.Equal(t, "faq-01", all[1].Name)

	all[0].Title = "mutated"
	all[0].Categories[0].Title = "mutated"

	again, _ := c.ByName("hero-01")
	assert.Equal(t, "Hero", again.Title)
	assert.Equal(t, "Hero Sections", again.Categories[0].Title)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New(nil, []types.Block{{Name: "a"}, {Name: "a"}})
	assert.Error(t, err)
}

func TestByCategoryDoesNotDedupe(t *testing.T) {
	marketing := types.Category{Name: "marketing", Title: "Marketing"}
	c, err := New(nil, []types.Block{
		{Name: "a", Categories: []types.Category{heroCategory, marketing}},
		{Name: "b", Categories: []types.Category{faqCategory}},
		{Name: "c", Categories: []types.Category{marketing, heroCategory}},
	})
	require.NoError(t, err)

	got := c.ByCategory("hero")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)

	assert.Empty(t, c.ByCategory("pricing"))
	assert.NotNil(t, c.ByCategory("pricing"))
}

func TestCategoriesReferencedSortedDistinct(t *testing.T) {
	c := embeddedCatalog(t)
	cats := c.Categories()
	require.NotEmpty(t, cats)

	col := collate.New(language.English)
	seen := make(map[string]bool)
	for i, cat := range cats {
		assert.False(t, seen[cat.Name], "duplicate category %s", cat.Name)
		seen[cat.Name] = true

		assert.NotEmpty(t, c.ByCategory(cat.Name), "orphan category %s", cat.Name)

		if i > 0 {
			assert.LessOrEqual(t, col.CompareString(cats[i-1].Title, cat.Title), 0)
		}
	}

	// testimonials is in the category catalog but no block uses it
	assert.False(t, seen["testimonials"])
	_, ok := c.Category("testimonials")
	assert.True(t, ok)
}

func TestCategoriesFirstOccurrenceWins(t *testing.T) {
	first := types.Category{Name: "hero", Title: "Heroes"}
	second := types.Category{Name: "hero", Title: "Hero Sections"}
	c, err := New(nil, []types.Block{
		{Name: "a", Categories: []types.Category{first}},
		{Name: "b", Categories: []types.Category{second}},
	})
	require.NoError(t, err)

	cats := c.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Heroes", cats[0].Title)
}

func TestSortByTitleCollation(t *testing.T) {
	cats := []types.Category{
		{Name: "z", Title: "Zebra"},
		{Name: "e", Title: "éclair"},
		{Name: "a", Title: "apple"},
		{Name: "b", Title: "Banana"},
	}
	SortByTitle(cats)

	titles := make([]string, len(cats))
	for i, c := range cats {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{"apple", "Banana", "éclair", "Zebra"}, titles)
}

func TestAllCategoriesManifestOrder(t *testing.T) {
	c := embeddedCatalog(t)
	all := c.AllCategories()
	require.NotEmpty(t, all)
	assert.Equal(t, "hero", all[0].Name)
	assert.Equal(t, "testimonials", all[len(all)-1].Name)
}

func TestStats(t *testing.T) {
	c := scenarioCatalog(t)
	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalBlocks)
	assert.Equal(t, 1, stats.Categories["hero"])
	assert.Equal(t, 1, stats.Categories["faq"])
}
