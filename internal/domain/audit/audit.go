// Package audit checks a registry source tree against its catalog.
//
// Errors (missing referenced files, missing images) break installs or
// pages. Warnings (unreferenced sources, blocks without an image or a
// preview) only degrade the gallery.
package audit

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
)

// Report lists the findings of one audit
type Report struct {
	Unreferenced  []string `json:"unreferenced"`
	Missing       []string `json:"missing"`
	NoImage       []string `json:"no_image"`
	MissingImages []string `json:"missing_images"`
	NoPreview     []string `json:"no_preview"`
	Scanned       int      `json:"scanned"`
}

// Errors returns findings that break installs or pages
func (r Report) Errors() []string {
	out := make([]string, 0, len(r.Missing)+len(r.MissingImages))
	for _, p := range r.Missing {
		out = append(out, "missing file: "+p)
	}
	for _, p := range r.MissingImages {
		out = append(out, "missing image: "+p)
	}
	return out
}

// Warnings returns findings that only degrade the gallery
func (r Report) Warnings() []string {
	var out []string
	for _, p := range r.Unreferenced {
		out = append(out, "unreferenced file: "+p)
	}
	for _, b := range r.NoImage {
		out = append(out, "no image: "+b)
	}
	for _, b := range r.NoPreview {
		out = append(out, "no preview: "+b)
	}
	return out
}

// OK reports whether the audit found no errors
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.MissingImages) == 0
}

// Auditor walks a registry source directory
type Auditor struct {
	root    string
	catalog *catalog.Catalog
	logger  *logging.Logger
}

// New creates an auditor for the catalog loaded from root
func New(root string, c *catalog.Catalog, logger *logging.Logger) *Auditor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Auditor{root: root, catalog: c, logger: logger.Named("audit")}
}

// Run walks the block sources and checks every block's references
func (a *Auditor) Run(ctx context.Context) (Report, error) {
	var report Report

	sources, err := a.walk(ctx)
	if err != nil {
		return report, err
	}
	report.Scanned = len(sources)

	referenced := make(map[string]bool)
	for _, b := range a.catalog.All() {
		for _, f := range b.Files {
			referenced[f.Path] = true
			if !sources[f.Path] && !a.exists(f.Path) {
				report.Missing = append(report.Missing, f.Path)
			}
		}

		switch {
		case b.Image == "":
			report.NoImage = append(report.NoImage, b.Name)
		case !a.exists(path.Join(paths.Public, strings.TrimPrefix(b.Image, "/"))):
			report.MissingImages = append(report.MissingImages, b.Image)
		}

		if b.Component == nil {
			report.NoPreview = append(report.NoPreview, b.Name)
		}
	}

	for p := range sources {
		if !referenced[p] {
			report.Unreferenced = append(report.Unreferenced, p)
		}
	}

	sort.Strings(report.Unreferenced)
	sort.Strings(report.Missing)
	sort.Strings(report.MissingImages)

	a.logger.Info("Audit complete",
		zap.Int("scanned", report.Scanned),
		zap.Int("errors", len(report.Errors())),
		zap.Int("warnings", len(report.Warnings())))

	return report, nil
}

// walk collects every file under the block source tree, slash-separated
// and relative to the root
func (a *Auditor) walk(ctx context.Context) (map[string]bool, error) {
	base := filepath.Join(a.root, filepath.FromSlash(paths.Blocks))
	files := make(map[string]bool)
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return files, nil
	}

	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, base, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(a.root, p)
		if relErr != nil {
			return nil
		}
		mu.Lock()
		files[filepath.ToSlash(rel)] = true
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", base, err)
	}
	return files, nil
}

func (a *Auditor) exists(rel string) bool {
	info, err := os.Stat(filepath.Join(a.root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}
