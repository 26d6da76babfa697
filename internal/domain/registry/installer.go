package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// ErrExists is returned when an install would overwrite a file
var ErrExists = errors.New("file already exists")

// Fetcher retrieves registry items by name
type Fetcher interface {
	Fetch(ctx context.Context, name string) (types.RegistryItem, error)
}

// Report describes a completed install
type Report struct {
	// Items are installed registry items, dependencies first
	Items []string
	// Written are project-relative paths of written files
	Written []string
	// Skipped are files the registry served without content
	Skipped []string
	// External are registry dependencies the remote registry does not serve
	External []string
	// Dependencies are the package dependencies of every installed item
	Dependencies []string
}

// Installer writes registry items into a project directory
type Installer struct {
	fetcher   Fetcher
	dir       string
	logger    *logging.Logger
	Overwrite bool
}

// NewInstaller creates an installer rooted at dir
func NewInstaller(fetcher Fetcher, dir string, logger *logging.Logger) *Installer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Installer{
		fetcher: fetcher,
		dir:     dir,
		logger:  logger.Named("installer"),
	}
}

type plannedFile struct {
	rel     string
	content string
}

// Install resolves names and their registry dependencies and writes
// their files. No file is written when any destination already exists
// and Overwrite is unset.
func (in *Installer) Install(ctx context.Context, names []string) (Report, error) {
	var report Report
	items, external, err := in.resolve(ctx, names)
	if err != nil {
		return report, err
	}
	report.External = external

	var plan []plannedFile
	deps := make(map[string]struct{})
	for _, item := range items {
		report.Items = append(report.Items, item.Name)
		for _, d := range item.Dependencies {
			deps[d] = struct{}{}
		}
		for _, f := range item.Files {
			rel, err := destination(f)
			if err != nil {
				return report, fmt.Errorf("%s: %w", item.Name, err)
			}
			if f.Content == "" {
				report.Skipped = append(report.Skipped, rel)
				continue
			}
			plan = append(plan, plannedFile{rel: rel, content: f.Content})
		}
	}
	for d := range deps {
		report.Dependencies = append(report.Dependencies, d)
	}
	sort.Strings(report.Dependencies)

	if !in.Overwrite {
		for _, f := range plan {
			if _, err := os.Stat(filepath.Join(in.dir, filepath.FromSlash(f.rel))); err == nil {
				return report, fmt.Errorf("%w: %s", ErrExists, f.rel)
			}
		}
	}

	for _, f := range plan {
		full := filepath.Join(in.dir, filepath.FromSlash(f.rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return report, fmt.Errorf("failed to create directory for %s: %w", f.rel, err)
		}
		if err := os.WriteFile(full, []byte(f.content), 0o644); err != nil {
			return report, fmt.Errorf("failed to write %s: %w", f.rel, err)
		}
		report.Written = append(report.Written, f.rel)
		in.logger.Debug("Wrote file", zap.String("path", f.rel))
	}

	in.logger.Info("Install complete",
		zap.Strings("items", report.Items),
		zap.Int("files", len(report.Written)),
		zap.Strings("external", report.External))
	return report, nil
}

// resolve orders items depth-first with dependencies ahead of dependents.
// Each item is fetched once. A requested name that is missing is an error;
// a missing dependency is reported as external.
func (in *Installer) resolve(ctx context.Context, names []string) ([]types.RegistryItem, []string, error) {
	var (
		ordered  []types.RegistryItem
		external []string
		seen     = make(map[string]bool)
	)

	var visit func(name string, root bool) error
	visit = func(name string, root bool) error {
		if seen[name] {
			return nil
		}
		seen[name] = true

		if strings.Contains(name, "://") {
			external = append(external, name)
			return nil
		}

		item, err := in.fetcher.Fetch(ctx, name)
		if errors.Is(err, ErrNotFound) && !root {
			external = append(external, name)
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch %s: %w", name, err)
		}

		for _, dep := range item.RegistryDependencies {
			if err := visit(dep, false); err != nil {
				return err
			}
		}
		ordered = append(ordered, item)
		return nil
	}

	for _, name := range names {
		if err := visit(strings.TrimSpace(name), true); err != nil {
			return nil, nil, err
		}
	}
	return ordered, external, nil
}

// destination returns the project-relative path a file installs to
func destination(f types.RegistryFile) (string, error) {
	p := f.Target
	if p == "" {
		p = f.Path
	}
	p = strings.TrimPrefix(p, "~/")
	p = path.Clean(strings.TrimPrefix(p, "./"))
	if err := paths.ValidateRelative(p); err != nil {
		return "", fmt.Errorf("unsafe install path %q: %w", f.Path, err)
	}
	return p, nil
}
