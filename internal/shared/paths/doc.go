// Package paths provides the canonical layout of the registry source tree
// and of the published registry.
//
// # Directory Structure
//
//	<root>/
//	  ├── blocks.yaml         (catalog manifest)
//	  ├── registry/blocks/    (block sources, one directory per block)
//	  │   └── hero-01/
//	  │       ├── components/
//	  │       ├── hooks/
//	  │       ├── lib/
//	  │       └── page.tsx
//	  ├── previews/           (preview fragments, <name>.html)
//	  └── public/             (preview images)
//
//	<out>/r/
//	  ├── registry.json       (index)
//	  └── hero-01.json        (one item per block)
//
// # Usage
//
//	b := paths.BlockPath("hero-01")
//	b.Dir()          // registry/blocks/hero-01
//	b.Namespace()    // @/registry/blocks/hero-01/
//	b.RegistryItem() // r/hero-01.json
//
//	paths.PublicPath("", "hero-01", "registry/blocks/hero-01/components/hero-section.tsx")
//	// registry/default/blocks/hero-01/components/hero-section.tsx
package paths
