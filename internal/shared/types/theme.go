package types

// ThemeMode is the colour scheme of a preview
type ThemeMode string

const (
	ModeLight ThemeMode = "light"
	ModeDark  ThemeMode = "dark"
)

// Valid reports whether the mode is one of the known modes
func (m ThemeMode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// ColorSet holds the CSS colour tokens of one mode
type ColorSet struct {
	Background        string `json:"background"`
	Foreground        string `json:"foreground"`
	Card              string `json:"card"`
	Primary           string `json:"primary"`
	PrimaryForeground string `json:"primaryForeground"`
	Secondary         string `json:"secondary"`
	Muted             string `json:"muted"`
	Accent            string `json:"accent"`
	Border            string `json:"border"`
	Ring              string `json:"ring"`
}

// PresetColors holds colour tokens for both modes
type PresetColors struct {
	Light ColorSet `json:"light"`
	Dark  ColorSet `json:"dark"`
}

// Preset is a named colour theme
type Preset struct {
	Name   string       `json:"name"`
	Label  string       `json:"label,omitempty"`
	Colors PresetColors `json:"colors"`
}

// ForMode returns the colour set used for the given mode
func (p Preset) ForMode(mode ThemeMode) ColorSet {
	if mode == ModeDark {
		return p.Colors.Dark
	}
	return p.Colors.Light
}

// ThemeState is the theme owned by a block detail page
type ThemeState struct {
	Mode   ThemeMode `json:"mode"`
	Preset Preset    `json:"preset"`
}
