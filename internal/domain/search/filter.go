package search

import (
	"strings"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// State distinguishes what a catalog page should render
type State string

const (
	StateResults       State = "results"
	StateFilteredEmpty State = "filtered-empty"
	StateCatalogEmpty  State = "catalog-empty"
)

// Filter keeps blocks whose name, title or description contains query,
// ignoring case. An empty query keeps everything.
func Filter(blocks []types.Block, query string) []types.Block {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]types.Block, len(blocks))
		copy(out, blocks)
		return out
	}

	needle := strings.ToLower(query)
	out := make([]types.Block, 0, len(blocks))
	for _, b := range blocks {
		if Matches(b, needle) {
			out = append(out, b)
		}
	}
	return out
}

// Matches reports whether a block passes a lowercased query
func Matches(b types.Block, needle string) bool {
	return strings.Contains(strings.ToLower(b.Name), needle) ||
		strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Description), needle)
}

// Outcome classifies a filter result. Zero configured blocks is always
// StateCatalogEmpty, whatever the query.
func Outcome(total, filtered int) State {
	switch {
	case total == 0:
		return StateCatalogEmpty
	case filtered == 0:
		return StateFilteredEmpty
	default:
		return StateResults
	}
}
