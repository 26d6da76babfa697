package code

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/GriffinCanCode/blockhub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

// MaxFileSize caps how much of a source file is served
const MaxFileSize = 1 << 20

// Observer is told about every read
type Observer interface {
	RecordCodeRead(empty bool)
}

// Reader reads block sources from the registry root
type Reader struct {
	fsys     fs.FS
	logger   *logging.Logger
	observer Observer
}

// NewReader creates a reader over the registry root
func NewReader(fsys fs.FS, logger *logging.Logger, observer Observer) *Reader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reader{
		fsys:     fsys,
		logger:   logger.Named("code"),
		observer: observer,
	}
}

// Get returns the UTF-8 text of the file at p, or "" when it cannot be
// shown. It never fails.
func (r *Reader) Get(ctx context.Context, p string) string {
	text := r.read(ctx, p)
	if r.observer != nil {
		r.observer.RecordCodeRead(text == "")
	}
	return text
}

func (r *Reader) read(ctx context.Context, p string) string {
	if err := ctx.Err(); err != nil {
		return ""
	}

	if err := paths.ValidateRelative(p); err != nil {
		r.logger.Warn("Rejected source path", zap.String("path", p), zap.Error(err))
		return ""
	}

	f, err := r.fsys.Open(p)
	if err != nil {
		r.logger.Warn("Source file unavailable", zap.String("path", p), zap.Error(err))
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		r.logger.Warn("Failed to read source file", zap.String("path", p), zap.Error(err))
		return ""
	}
	if len(data) > MaxFileSize {
		r.logger.Warn("Source file too large", zap.String("path", p), zap.Int("limit", MaxFileSize))
		return ""
	}

	if !IsText(data) {
		r.logger.Warn("Source file is binary", zap.String("path", p), zap.String("mime", mimetype.Detect(data).String()))
		return ""
	}

	if utf8.Valid(data) {
		return string(data)
	}

	text, err := toUTF8(data)
	if err != nil {
		r.logger.Warn("Failed to transcode source file", zap.String("path", p), zap.Error(err))
		return ""
	}
	return text
}

// IsText reports whether data is some kind of text
func IsText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// DetectCharset returns the most likely charset of data
func DetectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return result.Charset
}

func toUTF8(data []byte) (string, error) {
	rd, err := charset.NewReaderLabel(DetectCharset(data), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(rd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Source is one file of a block ready for display
type Source struct {
	Path       string `json:"path"`
	PublicPath string `json:"publicPath"`
	Type       string `json:"type"`
	Target     string `json:"target,omitempty"`
	Content    string `json:"content"`
}

// ForBlock reads and rewrites every file of a block for a stack
func (r *Reader) ForBlock(ctx context.Context, b types.Block, stack, publicTemplate string) []Source {
	files := b.FilesForStack(stack)
	out := make([]Source, 0, len(files))
	for _, f := range files {
		fileType := f.Type
		if fileType == "" {
			fileType = types.FileTypeComponent
		}
		out = append(out, Source{
			Path:       f.Path,
			PublicPath: paths.PublicPath(publicTemplate, b.Name, f.Path),
			Type:       fileType,
			Target:     f.Target,
			Content:    RewriteImports(r.Get(ctx, f.Path)),
		})
	}
	return out
}

// Attach fills in the content of a registry item's files. item must be the
// projection of b for the same stack, so its files line up with b's.
func (r *Reader) Attach(ctx context.Context, b types.Block, stack string, item *types.RegistryItem) {
	files := b.FilesForStack(stack)
	for i := range item.Files {
		if i >= len(files) {
			return
		}
		item.Files[i].Content = RewriteImports(r.Get(ctx, files[i].Path))
	}
}
