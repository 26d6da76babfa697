package search

import "strings"

// ViewMode is the catalog layout
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Column bounds of the grid view
const (
	MinColumns     = 1
	MaxColumns     = 4
	DefaultColumns = 3
)

// View is the display state of a catalog page
type View struct {
	Mode    ViewMode `json:"mode"`
	Columns int      `json:"columns"`
}

// DefaultView returns the initial display state
func DefaultView() View {
	return View{Mode: ViewGrid, Columns: DefaultColumns}
}

// ParseView normalises untrusted view input. Unknown modes become grid,
// zero columns become the default and others are clamped.
func ParseView(mode string, columns int) View {
	v := DefaultView()

	if ViewMode(strings.ToLower(strings.TrimSpace(mode))) == ViewList {
		v.Mode = ViewList
	}

	switch {
	case columns == 0:
	case columns < MinColumns:
		v.Columns = MinColumns
	case columns > MaxColumns:
		v.Columns = MaxColumns
	default:
		v.Columns = columns
	}

	return v
}
