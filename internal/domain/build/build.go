// Package build publishes the registry as static JSON: one item per block
// under r/<name>.json and the index at r/registry.json.
package build

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/domain/catalog"
	"github.com/GriffinCanCode/blockhub/internal/domain/code"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/infrastructure/storage"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
)

const contentTypeJSON = "application/json"

// Report summarises a build
type Report struct {
	Items    int           `json:"items"`
	Bytes    int           `json:"bytes"`
	Empty    []string      `json:"empty,omitempty"` // files published without content
	Duration time.Duration `json:"duration"`
}

// Builder writes registry documents to a store
type Builder struct {
	catalog *catalog.Catalog
	reader  *code.Reader
	store   storage.ObjectStore
	opts    catalog.ProjectionOptions
	logger  *logging.Logger
}

// NewBuilder creates a builder
func NewBuilder(c *catalog.Catalog, reader *code.Reader, store storage.ObjectStore, opts catalog.ProjectionOptions, logger *logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{
		catalog: c,
		reader:  reader,
		store:   store,
		opts:    opts,
		logger:  logger.Named("build"),
	}
}

// Build publishes every block and the index
func (b *Builder) Build(ctx context.Context) (Report, error) {
	start := time.Now()
	var report Report

	for _, block := range b.catalog.All() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		item := catalog.ToRegistryItem(block, b.opts)
		b.reader.Attach(ctx, block, b.opts.Stack, &item)
		for _, f := range item.Files {
			if f.Content == "" {
				report.Empty = append(report.Empty, block.Name+":"+f.Path)
			}
		}

		data, err := sonic.MarshalIndent(item, "", "  ")
		if err != nil {
			return report, fmt.Errorf("failed to encode %s: %w", block.Name, err)
		}

		key := paths.BlockPath(block.Name).RegistryItem()
		if err := b.store.Put(ctx, key, data, contentTypeJSON); err != nil {
			return report, err
		}

		report.Items++
		report.Bytes += len(data)
		b.logger.Debug("Published item", zap.String("key", key), zap.Int("bytes", len(data)))
	}

	data, err := sonic.MarshalIndent(b.catalog.ToRegistryIndex(b.opts), "", "  ")
	if err != nil {
		return report, fmt.Errorf("failed to encode index: %w", err)
	}
	if err := b.store.Put(ctx, paths.RegistryIndex, data, contentTypeJSON); err != nil {
		return report, err
	}
	report.Bytes += len(data)
	report.Duration = time.Since(start)

	b.logger.Info("Registry published",
		zap.Int("items", report.Items),
		zap.Int("bytes", report.Bytes),
		zap.Int("empty_files", len(report.Empty)),
		zap.Duration("duration", report.Duration))

	return report, nil
}
