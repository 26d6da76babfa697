package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/blockhub/internal/domain/install"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// recorder collects messages sent to a preview
type recorder struct {
	messages []Message
	err      error
}

func (r *recorder) Send(m Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, m)
	return nil
}

func (r *recorder) types() []MessageType {
	out := make([]MessageType, len(r.messages))
	for i, m := range r.messages {
		out[i] = m.Type
	}
	return out
}

func TestHostResyncsOnEveryReady(t *testing.T) {
	rec := &recorder{}
	rose, _ := PresetByName("rose")
	host := NewHost(types.ThemeState{Mode: types.ModeDark, Preset: rose}, rec)

	for round := 1; round <= 3; round++ {
		rec.messages = nil
		require.NoError(t, host.Handle(Ready()))

		require.Equal(t, []MessageType{TypeThemeChange, TypePresetChange}, rec.types(), "round %d", round)
		assert.Equal(t, types.ModeDark, rec.messages[0].Theme)
		assert.Equal(t, "rose", rec.messages[1].Preset.Name)
	}
}

func TestHostSettersPushSingleMessage(t *testing.T) {
	rec := &recorder{}
	host := NewHost(DefaultState("", ""), rec)

	require.NoError(t, host.SetMode(types.ModeDark))
	require.Equal(t, []MessageType{TypeThemeChange}, rec.types())

	green, _ := PresetByName("green")
	require.NoError(t, host.SetPreset(green))
	require.Equal(t, []MessageType{TypeThemeChange, TypePresetChange}, rec.types())

	state := host.State()
	assert.Equal(t, types.ModeDark, state.Mode)
	assert.Equal(t, "green", state.Preset.Name)

	// The resync reflects the latest state
	rec.messages = nil
	require.NoError(t, host.Handle(Ready()))
	assert.Equal(t, types.ModeDark, rec.messages[0].Theme)
	assert.Equal(t, "green", rec.messages[1].Preset.Name)
}

func TestHostRejectsInvalidInput(t *testing.T) {
	host := NewHost(DefaultState("", ""), &recorder{})
	assert.ErrorIs(t, host.SetMode("sepia"), ErrInvalidTheme)
	assert.ErrorIs(t, host.SetPreset(types.Preset{}), ErrMissingPreset)
}

func TestHostIgnoresNonReady(t *testing.T) {
	rec := &recorder{}
	host := NewHost(DefaultState("", ""), rec)
	require.NoError(t, host.Handle(ThemeChange(types.ModeDark)))
	assert.Empty(t, rec.messages)
}

func TestHostDetach(t *testing.T) {
	rec := &recorder{}
	host := NewHost(DefaultState("", ""), rec)
	host.Detach()

	require.NoError(t, host.SetMode(types.ModeDark))
	require.NoError(t, host.Handle(Ready()))
	assert.Empty(t, rec.messages)
}

func TestHostSyncStopsOnSendError(t *testing.T) {
	rec := &recorder{err: errors.New("gone")}
	host := NewHost(DefaultState("", ""), rec)
	assert.Error(t, host.Handle(Ready()))
}

func TestDocumentApply(t *testing.T) {
	doc := NewDocument(DefaultState("light", "neutral"))
	assert.Equal(t, "", doc.RootClass())
	assert.Contains(t, doc.Variables, "--background: #ffffff;")

	require.NoError(t, doc.Apply(ThemeChange(types.ModeDark)))
	assert.Equal(t, "dark", doc.RootClass())
	assert.Contains(t, doc.Variables, "--background: #0a0a0a;")

	violet, _ := PresetByName("violet")
	require.NoError(t, doc.Apply(PresetChange(violet)))
	assert.Equal(t, "violet", doc.Preset.Name)
	assert.Contains(t, doc.Variables, "--primary: #a78bfa;")

	// Applying the same state twice changes nothing
	before := *doc
	require.NoError(t, doc.Apply(PresetChange(violet)))
	require.NoError(t, doc.Apply(ThemeChange(types.ModeDark)))
	assert.Equal(t, before, *doc)

	assert.Error(t, doc.Apply(Message{Type: "resize"}))
}

func TestHostAndDocumentConverge(t *testing.T) {
	doc := NewDocument(DefaultState("light", "neutral"))
	orange, _ := PresetByName("orange")
	host := NewHost(types.ThemeState{Mode: types.ModeDark, Preset: orange}, SenderFunc(doc.Apply))

	require.NoError(t, host.Handle(Ready()))
	assert.Equal(t, types.ModeDark, doc.Mode())
	assert.Equal(t, "orange", doc.Preset.Name)
	assert.Equal(t, CSSVariables(orange, types.ModeDark), doc.Variables)
}

func TestCSSVariables(t *testing.T) {
	css := CSSVariables(DefaultPreset(), types.ModeLight)
	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, "--primary-foreground: #fafafa;")
	assert.Contains(t, css, "--ring: #a3a3a3;")

	partial := CSSVariables(types.Preset{Colors: types.PresetColors{Light: types.ColorSet{Primary: "red"}}}, types.ModeLight)
	assert.Equal(t, ":root {\n  --primary: red;\n}\n", partial)
}

func TestMustPreferences(t *testing.T) {
	assert.Panics(t, func() { MustPreferences(context.Background()) })

	want := Preferences{Theme: DefaultState("dark", ""), PackageManager: install.Bun}
	ctx := WithPreferences(context.Background(), want)
	assert.Equal(t, want, MustPreferences(ctx))

	_, ok := PreferencesFrom(context.Background())
	assert.False(t, ok)
}
