package types

import (
	"html/template"
	"io"
)

// Default registry item type tags
const (
	ItemTypeBlock     = "registry:block"
	FileTypeComponent = "registry:component"
	FileTypePage      = "registry:page"
	FileTypeHook      = "registry:hook"
	FileTypeLib       = "registry:lib"
	FileTypeUI        = "registry:ui"
)

// Schema URLs advertised by the registry JSON documents
const (
	RegistryItemSchema  = "https://ui.shadcn.com/schema/registry-item.json"
	RegistryIndexSchema = "https://ui.shadcn.com/schema/registry.json"
)

// Category groups blocks for navigation and SEO
type Category struct {
	Name        string `json:"name" yaml:"name" toml:"name" validate:"required,slug"`
	Title       string `json:"title" yaml:"title" toml:"title" validate:"required"`
	Icon        string `json:"icon,omitempty" yaml:"icon" toml:"icon"`
	Description string `json:"description,omitempty" yaml:"description" toml:"description"`
}

// File is a source file belonging to a block
type File struct {
	Path   string `json:"path"`
	Type   string `json:"type,omitempty"`
	Target string `json:"target,omitempty"`
	Stack  string `json:"stack,omitempty"` // empty applies to every stack
}

// PreviewProps is handed to preview components when rendering
type PreviewProps struct {
	Block  string
	Mode   ThemeMode
	Stack  string
	Screen string
}

// Component renders a block's live preview markup
type Component interface {
	Render(w io.Writer, props PreviewProps) error
}

// Layout wraps rendered preview markup
type Layout interface {
	Wrap(w io.Writer, body template.HTML, props PreviewProps) error
}

// Block describes one installable page section
type Block struct {
	Name                 string     `json:"name"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Categories           []Category `json:"categories"`
	Files                []File     `json:"files"`
	Dependencies         []string   `json:"dependencies,omitempty"`
	RegistryDependencies []string   `json:"registryDependencies,omitempty"`
	Image                string     `json:"image,omitempty"`
	Stacks               []string   `json:"stacks,omitempty"`

	// Live preview units. Never serialized.
	Component Component `json:"-"`
	Layout    Layout    `json:"-"`
}

// PrimaryCategory returns the first category, used for breadcrumbs and SEO
func (b Block) PrimaryCategory() (Category, bool) {
	if len(b.Categories) == 0 {
		return Category{}, false
	}
	return b.Categories[0], true
}

// HasCategory reports whether the block references the named category
func (b Block) HasCategory(name string) bool {
	for _, c := range b.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// SupportsStack reports whether a stack variant exists for the block
func (b Block) SupportsStack(stack string) bool {
	if stack == "" || len(b.Stacks) == 0 {
		return true
	}
	for _, s := range b.Stacks {
		if s == stack {
			return true
		}
	}
	return false
}

// FilesForStack returns files shared by all stacks plus those of the given stack
func (b Block) FilesForStack(stack string) []File {
	files := make([]File, 0, len(b.Files))
	for _, f := range b.Files {
		if f.Stack == "" || f.Stack == stack {
			files = append(files, f)
		}
	}
	return files
}

// RegistryFile is the public shape of a block file
type RegistryFile struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Target  string `json:"target,omitempty"`
	Content string `json:"content,omitempty"`
}

// RegistryMeta carries catalog metadata on a registry item
type RegistryMeta struct {
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image,omitempty"`
}

// RegistryItem is the external representation served to installers
type RegistryItem struct {
	Schema               string         `json:"$schema,omitempty"`
	Name                 string         `json:"name"`
	Type                 string         `json:"type"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Dependencies         []string       `json:"dependencies"`
	RegistryDependencies []string       `json:"registryDependencies"`
	Files                []RegistryFile `json:"files"`
	Meta                 RegistryMeta   `json:"meta"`
}

// RegistryIndex lists every item of a registry
type RegistryIndex struct {
	Schema   string         `json:"$schema,omitempty"`
	Name     string         `json:"name"`
	Homepage string         `json:"homepage"`
	Items    []RegistryItem `json:"items"`
}

// CatalogStats summarises the loaded catalog
type CatalogStats struct {
	TotalBlocks int            `json:"total_blocks"`
	Categories  map[string]int `json:"categories"`
}
