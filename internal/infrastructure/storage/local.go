// Package storage provides the profile picture backends: a local directory
// served as static files, and an S3/MinIO bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pingado/messaging-system/internal/core/ports"
)

// LocalStore writes pictures under a directory on disk. The router serves the
// same directory at /pictures.
type LocalStore struct {
	dir string
}

var _ ports.FileStore = (*LocalStore)(nil)

// NewLocalStore creates the directory if it does not exist yet.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, name string, data []byte) error {
	// filepath.Base strips any path components a client may sneak into the
	// original filename's extension.
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write picture %s: %w", name, err)
	}
	return nil
}

// Dir returns the backing directory, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}
