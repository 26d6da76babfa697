// Package storage writes published registry files to a local directory or
// an S3 bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GriffinCanCode/blockhub/internal/shared/paths"
)

// ObjectStore receives published files
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// LocalStore writes objects below a root directory
type LocalStore struct {
	root string
	mu   sync.Mutex
}

// NewLocalStore creates a store rooted at dir
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Root returns the store directory
func (s *LocalStore) Root() string {
	return s.root
}

// Put writes body to root/key, creating directories as needed
func (s *LocalStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := paths.ValidateRelative(key); err != nil {
		return fmt.Errorf("invalid key %q: %w", key, err)
	}

	full := filepath.Join(s.root, filepath.FromSlash(key))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write through a temp file so readers never see a partial object
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// joinKey prefixes a key, tolerating a prefix with or without a trailing slash
func joinKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
