package catalog

import (
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// ProjectionOptions controls how blocks are exposed to installers
type ProjectionOptions struct {
	PublicTemplate string // default paths.DefaultPublicTemplate
	Stack          string // empty selects files shared by every stack
	RegistryName   string
	Homepage       string
}

// ToRegistryItem converts a block to its external representation. File
// contents are left empty; callers attach them at the boundary.
func ToRegistryItem(b types.Block, opts ProjectionOptions) types.RegistryItem {
	files := b.FilesForStack(opts.Stack)

	item := types.RegistryItem{
		Schema:               types.RegistryItemSchema,
		Name:                 b.Name,
		Type:                 types.ItemTypeBlock,
		Title:                b.Title,
		Description:          b.Description,
		Dependencies:         append(make([]string, 0, len(b.Dependencies)), b.Dependencies...),
		RegistryDependencies: append(make([]string, 0, len(b.RegistryDependencies)), b.RegistryDependencies...),
		Files:                make([]types.RegistryFile, 0, len(files)),
		Meta: types.RegistryMeta{
			Tags:  make([]string, 0, len(b.Categories)),
			Image: b.Image,
		},
	}

	if primary, ok := b.PrimaryCategory(); ok {
		item.Meta.Category = primary.Name
	}
	for _, c := range b.Categories {
		item.Meta.Tags = append(item.Meta.Tags, c.Name)
	}

	for _, f := range files {
		fileType := f.Type
		if fileType == "" {
			fileType = types.FileTypeComponent
		}
		item.Files = append(item.Files, types.RegistryFile{
			Path:   paths.PublicPath(opts.PublicTemplate, b.Name, f.Path),
			Type:   fileType,
			Target: f.Target,
		})
	}

	return item
}

// ToRegistryIndex lists every block of the catalog as registry items
func (c *Catalog) ToRegistryIndex(opts ProjectionOptions) types.RegistryIndex {
	index := types.RegistryIndex{
		Schema:   types.RegistryIndexSchema,
		Name:     opts.RegistryName,
		Homepage: opts.Homepage,
		Items:    make([]types.RegistryItem, 0, len(c.blocks)),
	}

	for _, b := range c.blocks {
		item := ToRegistryItem(b, opts)
		item.Schema = ""
		index.Items = append(index.Items, item)
	}

	return index
}
