package preview

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Document is the preview side of the channel: the root dark class and the
// theme variable block of the preview page.
type Document struct {
	Dark      bool
	Preset    types.Preset
	Variables string
}

// NewDocument creates a document showing its own default theme
func NewDocument(state types.ThemeState) *Document {
	d := &Document{Dark: state.Mode == types.ModeDark, Preset: state.Preset}
	d.Variables = CSSVariables(d.Preset, d.Mode())
	return d
}

// Mode returns the mode the document currently shows
func (d *Document) Mode() types.ThemeMode {
	if d.Dark {
		return types.ModeDark
	}
	return types.ModeLight
}

// Apply updates the document from a host message
func (d *Document) Apply(m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	switch m.Type {
	case TypeThemeChange:
		d.Dark = m.Theme == types.ModeDark
	case TypePresetChange:
		d.Preset = *m.Preset
	default:
		return nil
	}

	d.Variables = CSSVariables(d.Preset, d.Mode())
	return nil
}

// RootClass returns the class attribute of the root element
func (d *Document) RootClass() string {
	if d.Dark {
		return "dark"
	}
	return ""
}

// CSSVariables renders the preset's colours for mode as a :root block
func CSSVariables(p types.Preset, mode types.ThemeMode) string {
	c := p.ForMode(mode)

	vars := []struct{ name, value string }{
		{"background", c.Background},
		{"foreground", c.Foreground},
		{"card", c.Card},
		{"primary", c.Primary},
		{"primary-foreground", c.PrimaryForeground},
		{"secondary", c.Secondary},
		{"muted", c.Muted},
		{"accent", c.Accent},
		{"border", c.Border},
		{"ring", c.Ring},
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range vars {
		if v.value == "" {
			continue
		}
		fmt.Fprintf(&b, "  --%s: %s;\n", v.name, v.value)
	}
	b.WriteString("}\n")
	return b.String()
}
