package preview

import (
	"context"

	"github.com/GriffinCanCode/blockhub/internal/domain/install"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Preferences are the per-visitor choices a page renders with
type Preferences struct {
	Theme          types.ThemeState
	PackageManager install.Tool
}

type preferencesKey struct{}

// WithPreferences attaches preferences to ctx
func WithPreferences(ctx context.Context, p Preferences) context.Context {
	return context.WithValue(ctx, preferencesKey{}, p)
}

// PreferencesFrom returns the preferences attached to ctx
func PreferencesFrom(ctx context.Context) (Preferences, bool) {
	p, ok := ctx.Value(preferencesKey{}).(Preferences)
	return p, ok
}

// MustPreferences returns the preferences attached to ctx and panics when
// none were attached. Missing preferences mean the middleware is not installed.
func MustPreferences(ctx context.Context) Preferences {
	p, ok := PreferencesFrom(ctx)
	if !ok {
		panic("preview: preferences requested outside the preferences middleware")
	}
	return p
}
