package preview

import (
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// DefaultPresetName is used when no preset is configured
const DefaultPresetName = "neutral"

func neutralBase() types.PresetColors {
	return types.PresetColors{
		Light: types.ColorSet{
			Background:        "#ffffff",
			Foreground:        "#0a0a0a",
			Card:              "#ffffff",
			Primary:           "#171717",
			PrimaryForeground: "#fafafa",
			Secondary:         "#f5f5f5",
			Muted:             "#737373",
			Accent:            "#f5f5f5",
			Border:            "#e5e5e5",
			Ring:              "#a3a3a3",
		},
		Dark: types.ColorSet{
			Background:        "#0a0a0a",
			Foreground:        "#fafafa",
			Card:              "#171717",
			Primary:           "#e5e5e5",
			PrimaryForeground: "#171717",
			Secondary:         "#262626",
			Muted:             "#a3a3a3",
			Accent:            "#262626",
			Border:            "#2e2e2e",
			Ring:              "#737373",
		},
	}
}

// accented derives a preset from the neutral base with a brand colour
func accented(light, dark, ring string) types.PresetColors {
	c := neutralBase()
	c.Light.Primary = light
	c.Light.PrimaryForeground = "#ffffff"
	c.Light.Ring = ring
	c.Dark.Primary = dark
	c.Dark.PrimaryForeground = "#0a0a0a"
	c.Dark.Ring = ring
	return c
}

var builtinPresets = []types.Preset{
	{Name: "neutral", Label: "Neutral", Colors: neutralBase()},
	{Name: "zinc", Label: "Zinc", Colors: types.PresetColors{
		Light: types.ColorSet{
			Background:        "#ffffff",
			Foreground:        "#09090b",
			Card:              "#ffffff",
			Primary:           "#18181b",
			PrimaryForeground: "#fafafa",
			Secondary:         "#f4f4f5",
			Muted:             "#71717a",
			Accent:            "#f4f4f5",
			Border:            "#e4e4e7",
			Ring:              "#a1a1aa",
		},
		Dark: types.ColorSet{
			Background:        "#09090b",
			Foreground:        "#fafafa",
			Card:              "#18181b",
			Primary:           "#e4e4e7",
			PrimaryForeground: "#18181b",
			Secondary:         "#27272a",
			Muted:             "#a1a1aa",
			Accent:            "#27272a",
			Border:            "#2f2f35",
			Ring:              "#71717a",
		},
	}},
	{Name: "rose", Label: "Rose", Colors: accented("#e11d48", "#fb7185", "#fda4af")},
	{Name: "blue", Label: "Blue", Colors: accented("#2563eb", "#60a5fa", "#93c5fd")},
	{Name: "green", Label: "Green", Colors: accented("#16a34a", "#4ade80", "#86efac")},
	{Name: "orange", Label: "Orange", Colors: accented("#ea580c", "#fb923c", "#fdba74")},
	{Name: "violet", Label: "Violet", Colors: accented("#7c3aed", "#a78bfa", "#c4b5fd")},
}

// Presets returns the built-in presets in display order
func Presets() []types.Preset {
	out := make([]types.Preset, len(builtinPresets))
	copy(out, builtinPresets)
	return out
}

// PresetByName looks up a built-in preset
func PresetByName(name string) (types.Preset, bool) {
	for _, p := range builtinPresets {
		if p.Name == name {
			return p, true
		}
	}
	return types.Preset{}, false
}

// DefaultPreset returns the neutral preset
func DefaultPreset() types.Preset {
	p, _ := PresetByName(DefaultPresetName)
	return p
}

// ResolvePreset maps a preset received from a host to the built-in preset
// of the same name. Colours on the wire are ignored; previews only ever see
// built-in colour values.
func ResolvePreset(p types.Preset) (types.Preset, bool) {
	return PresetByName(p.Name)
}

// DefaultState returns the initial theme state for a mode and preset name,
// falling back to light and neutral
func DefaultState(mode, preset string) types.ThemeState {
	state := types.ThemeState{Mode: types.ModeLight, Preset: DefaultPreset()}
	if m := types.ThemeMode(mode); m.Valid() {
		state.Mode = m
	}
	if p, ok := PresetByName(preset); ok {
		state.Preset = p
	}
	return state
}
