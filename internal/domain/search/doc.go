// Package search holds the interactive state of a catalog page: the text
// filter, the debounced query and the display toggles.
package search
