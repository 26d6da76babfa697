// Package catalog loads the block catalog and answers queries over it.
//
// The catalog is read once from a manifest (YAML or TOML) and is immutable
// afterwards. Every query returns fresh values, so callers may modify what
// they get back without affecting other requests. The registry projection
// (ToRegistryItem, ToRegistryIndex) is the only path by which blocks cross a
// serialization boundary; it drops the preview component and layout.
package catalog
