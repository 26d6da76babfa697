// Package content embeds the default block registry: the catalog manifest,
// the block source tree served as copyable code, and the preview fragments.
package content

import (
	"embed"
	"io/fs"
	"os"
)

// ManifestName is the default catalog manifest at the root of the registry
const ManifestName = "blocks.yaml"

//go:embed blocks.yaml registry previews
var files embed.FS

// FS returns the embedded registry
func FS() fs.FS {
	return files
}

// Open returns the registry rooted at dir, or the embedded registry when dir is empty
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return files, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
	}
	return os.DirFS(dir), nil
}
