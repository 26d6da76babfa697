package paths

import (
	"fmt"
	"path"
	"strings"
)

// Source tree layout, relative to the registry root
const (
	Blocks   = "registry/blocks"
	Previews = "previews"
	Public   = "public"
)

// Published registry layout
const (
	RegistryDir   = "r"
	RegistryIndex = "r/registry.json"

	// IndexName is the item name the index is served under, so no block
	// may use it
	IndexName = "registry"

	// DefaultPublicTemplate is where installers see block files
	DefaultPublicTemplate = "registry/default/blocks/{name}/{file}"
)

// Block returns block-specific paths
type Block struct {
	Name string
}

// Dir returns the block's source directory
func (b Block) Dir() string {
	return path.Join(Blocks, b.Name)
}

// Namespace returns the private import namespace of the block
func (b Block) Namespace() string {
	return "@/" + b.Dir() + "/"
}

// Preview returns the default preview fragment path
func (b Block) Preview() string {
	return path.Join(Previews, b.Name+".html")
}

// RegistryItem returns the published registry item path
func (b Block) RegistryItem() string {
	return path.Join(RegistryDir, b.Name+".json")
}

// Relative returns p relative to the block directory, or its base name
// when p lives elsewhere
func (b Block) Relative(p string) string {
	prefix := b.Dir() + "/"
	if strings.HasPrefix(p, prefix) {
		return strings.TrimPrefix(p, prefix)
	}
	return path.Base(p)
}

// BlockPath returns paths for a specific block
func BlockPath(name string) Block {
	return Block{Name: name}
}

// IsBlockPath checks if p lives under the block source tree
func IsBlockPath(p string) bool {
	return strings.HasPrefix(path.Clean(p), Blocks+"/")
}

// OwnerOf returns the block directory name that p belongs to
func OwnerOf(p string) (string, bool) {
	if !IsBlockPath(p) {
		return "", false
	}
	rest := strings.TrimPrefix(path.Clean(p), Blocks+"/")
	name, _, ok := strings.Cut(rest, "/")
	return name, ok
}

// PublicPath expands a public path template for a block file
func PublicPath(template, name, file string) string {
	if template == "" {
		template = DefaultPublicTemplate
	}
	rel := BlockPath(name).Relative(file)
	return strings.NewReplacer("{name}", name, "{file}", rel).Replace(template)
}

// ValidateRelative checks if p is safe to resolve against a root
func ValidateRelative(p string) error {
	if p == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if path.IsAbs(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("path cannot be absolute")
	}
	if path.Clean(p) != p {
		return fmt.Errorf("path contains invalid components")
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return fmt.Errorf("path escapes the root")
	}
	return nil
}
