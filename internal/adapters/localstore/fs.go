package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store implements ports.ArchiveStore on the local filesystem, mirroring
// the bucket layout under a base directory. Used by the CLI for dry runs
// against a directory instead of a real bucket.
type Store struct {
	BaseDir string
}

// New creates a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

// Put writes body to <baseDir>/<key>, creating the directory if needed
// and overwriting any existing file.
func (s *Store) Put(ctx context.Context, key string, body []byte) error {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory %s: %w", s.BaseDir, err)
	}
	path := filepath.Join(s.BaseDir, key)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
