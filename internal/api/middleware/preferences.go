package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/blockhub/internal/domain/install"
	"github.com/GriffinCanCode/blockhub/internal/domain/preview"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// Preference cookie names
const (
	PackageManagerCookie = "package-manager"
	ThemeCookie          = "theme"
	PresetCookie         = "theme-preset"
)

// Preferences attaches the visitor's saved choices to the request context.
// Missing or invalid cookies fall back to defaults.
func Preferences(defaults types.ThemeState) gin.HandlerFunc {
	return func(c *gin.Context) {
		prefs := preview.Preferences{
			Theme:          defaults,
			PackageManager: install.DefaultTool,
		}

		if v, err := c.Cookie(PackageManagerCookie); err == nil {
			prefs.PackageManager = install.ParseTool(v)
		}
		if v, err := c.Cookie(ThemeCookie); err == nil {
			if mode := types.ThemeMode(v); mode.Valid() {
				prefs.Theme.Mode = mode
			}
		}
		if v, err := c.Cookie(PresetCookie); err == nil {
			if p, ok := preview.PresetByName(v); ok {
				prefs.Theme.Preset = p
			}
		}

		c.Request = c.Request.WithContext(preview.WithPreferences(c.Request.Context(), prefs))
		c.Next()
	}
}

// MustPreferences returns the preferences of the request. It panics when
// the Preferences middleware is not installed on the route.
func MustPreferences(c *gin.Context) preview.Preferences {
	return preview.MustPreferences(c.Request.Context())
}
