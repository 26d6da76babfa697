package catalog

import (
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
	"github.com/GriffinCanCode/blockhub/internal/shared/utils"
)

// Manifest is the on-disk description of a catalog
type Manifest struct {
	Categories []types.Category `yaml:"categories" toml:"categories" validate:"dive"`
	Blocks     []BlockEntry     `yaml:"blocks" toml:"blocks" validate:"dive"`
}

// BlockEntry describes one block in a manifest
type BlockEntry struct {
	Name                 string      `yaml:"name" toml:"name" validate:"required,slug"`
	Title                string      `yaml:"title" toml:"title" validate:"required"`
	Description          string      `yaml:"description" toml:"description"`
	Categories           []string    `yaml:"categories" toml:"categories" validate:"required,min=1,dive,slug"`
	Files                []FileEntry `yaml:"files" toml:"files" validate:"required,min=1,dive"`
	Dependencies         []string    `yaml:"dependencies" toml:"dependencies"`
	RegistryDependencies []string    `yaml:"registryDependencies" toml:"registryDependencies"`
	Image                string      `yaml:"image" toml:"image"`
	Layout               string      `yaml:"layout" toml:"layout" validate:"omitempty,oneof=centered fullscreen padded"`
	Preview              string      `yaml:"preview" toml:"preview"`
	Stacks               []string    `yaml:"stacks" toml:"stacks" validate:"dive,slug"`
}

// FileEntry is a file reference; Path may be a doublestar pattern
type FileEntry struct {
	Path   string `yaml:"path" toml:"path" validate:"required"`
	Type   string `yaml:"type" toml:"type" validate:"omitempty,startswith=registry:"`
	Target string `yaml:"target" toml:"target"`
	Stack  string `yaml:"stack" toml:"stack" validate:"omitempty,slug"`
}

// DecodeManifest parses a manifest, choosing the format by file extension
func DecodeManifest(name string, data []byte) (*Manifest, error) {
	var m Manifest

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", name)
	}

	return &m, nil
}

// Validate checks field rules and cross references
func (m *Manifest) Validate() error {
	if err := utils.ValidateStruct(m); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	categories := make(map[string]bool, len(m.Categories))
	for _, c := range m.Categories {
		if categories[c.Name] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		categories[c.Name] = true
	}

	blocks := make(map[string]bool, len(m.Blocks))
	for _, b := range m.Blocks {
		if blocks[b.Name] {
			return fmt.Errorf("duplicate block %q", b.Name)
		}
		if b.Name == paths.IndexName {
			return fmt.Errorf("block name %q is reserved for the registry index", b.Name)
		}
		blocks[b.Name] = true

		for _, c := range b.Categories {
			if !categories[c] {
				return fmt.Errorf("block %q references unknown category %q", b.Name, c)
			}
		}

		for _, f := range b.Files {
			if f.Stack == "" {
				continue
			}
			if !containsString(b.Stacks, f.Stack) {
				return fmt.Errorf("block %q file %s targets undeclared stack %q", b.Name, f.Path, f.Stack)
			}
		}
	}

	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
