// Package ws provides the WebSocket endpoints of the gallery.
//
// Two sockets are served:
//
//   - /ws/preview relays the preview theme protocol between a block detail
//     page (role=host) and the preview iframes it embeds (role=preview).
//     Both sides name the same channel=chan_... and the preview.Hub keeps
//     channels isolated.
//   - /ws/search runs one search.Session per connection, narrowed to a
//     category when category=... is given.
//
// Message Types (/ws/preview):
//   - preview-ready: preview → host, asks for the current theme
//   - theme-change: host → previews, carries the mode
//   - theme-preset-change: host → previews, carries the preset
//
// Message Types (/ws/search):
//   - search: client → server, raw query text (debounced)
//   - view: client → server, layout toggles (applied immediately)
//   - results: server → client, the filtered catalog view
//   - error: server → client, a rejected message
//
// Example Usage:
//
//	handler := ws.NewHandler(hub, catalog, ws.Options{Debounce: 300 * time.Millisecond}, logger, metrics)
//	router.GET("/ws/preview", handler.Preview)
//	router.GET("/ws/search", handler.Search)
package ws
