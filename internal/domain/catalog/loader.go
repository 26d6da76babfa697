package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// DefaultManifest is the manifest read when none is configured
const DefaultManifest = "blocks.yaml"

// Loader reads a catalog from a registry source tree
type Loader struct {
	fsys     fs.FS
	manifest string
	logger   *logging.Logger
}

// NewLoader creates a loader over fsys. An empty manifest uses DefaultManifest.
func NewLoader(fsys fs.FS, manifest string, logger *logging.Logger) *Loader {
	if manifest == "" {
		manifest = DefaultManifest
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{
		fsys:     fsys,
		manifest: manifest,
		logger:   logger.Named("catalog"),
	}
}

// Load reads, validates and resolves the manifest into a catalog
func (l *Loader) Load() (*Catalog, error) {
	data, err := fs.ReadFile(l.fsys, l.manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := DecodeManifest(l.manifest, data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	categories := make(map[string]types.Category, len(m.Categories))
	for _, c := range m.Categories {
		categories[c.Name] = c
	}

	blocks := make([]types.Block, 0, len(m.Blocks))
	var previews int
	for _, entry := range m.Blocks {
		b, err := l.resolve(entry, categories)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", entry.Name, err)
		}
		if b.Component != nil {
			previews++
		}
		blocks = append(blocks, b)
	}

	c, err := New(m.Categories, blocks)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Catalog loaded",
		zap.String("manifest", l.manifest),
		zap.Int("blocks", c.Len()),
		zap.Int("categories", len(m.Categories)),
		zap.Int("previews", previews))

	return c, nil
}

func (l *Loader) resolve(entry BlockEntry, categories map[string]types.Category) (types.Block, error) {
	b := types.Block{
		Name:                 entry.Name,
		Title:                entry.Title,
		Description:          entry.Description,
		Dependencies:         entry.Dependencies,
		RegistryDependencies: entry.RegistryDependencies,
		Image:                entry.Image,
		Stacks:               entry.Stacks,
	}

	for _, name := range entry.Categories {
		b.Categories = append(b.Categories, categories[name])
	}

	for _, f := range entry.Files {
		files, err := l.expand(f)
		if err != nil {
			return types.Block{}, err
		}
		b.Files = append(b.Files, files...)
	}

	component, err := l.component(entry)
	if err != nil {
		return types.Block{}, err
	}
	b.Component = component

	if entry.Layout != "" {
		layout, ok := LayoutByName(entry.Layout)
		if !ok {
			return types.Block{}, fmt.Errorf("unknown layout %q", entry.Layout)
		}
		b.Layout = layout
	}

	return b, nil
}

// expand resolves a glob file entry into concrete files in lexical order
func (l *Loader) expand(f FileEntry) ([]types.File, error) {
	fileType := f.Type
	if fileType == "" {
		fileType = types.FileTypeComponent
	}

	if !isPattern(f.Path) {
		return []types.File{{Path: f.Path, Type: fileType, Target: f.Target, Stack: f.Stack}}, nil
	}

	if !doublestar.ValidatePattern(f.Path) {
		return nil, fmt.Errorf("invalid file pattern %q", f.Path)
	}

	matches, err := doublestar.Glob(l.fsys, f.Path, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", f.Path, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pattern %q matched no files", f.Path)
	}
	sort.Strings(matches)

	files := make([]types.File, 0, len(matches))
	for _, match := range matches {
		// A target only makes sense for a single file
		target := ""
		if len(matches) == 1 {
			target = f.Target
		}
		files = append(files, types.File{Path: match, Type: fileType, Target: target, Stack: f.Stack})
	}
	return files, nil
}

// component binds the preview fragment, if any
func (l *Loader) component(entry BlockEntry) (types.Component, error) {
	file := entry.Preview
	explicit := file != ""
	if !explicit {
		file = paths.BlockPath(entry.Name).Preview()
	}

	if _, err := fs.Stat(l.fsys, file); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			l.logger.Debug("No preview for block", zap.String("block", entry.Name))
			return nil, nil
		}
		return nil, fmt.Errorf("preview %s: %w", file, err)
	}

	return ParseComponent(l.fsys, file)
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
