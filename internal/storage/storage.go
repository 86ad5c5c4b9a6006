package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the blob boundary the pipeline depends on: put bytes, get a
// handle back, retrieve bytes by handle. Nothing else leaks through.
type Store interface {
	Put(data []byte, ext string) (string, error)
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// FileStore keeps blobs on the local filesystem, keyed by random UUID.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(data []byte, ext string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	key := id.String()
	if ext != "" {
		key += "." + strings.TrimPrefix(ext, ".")
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FileStore) Get(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filepath.Base(key)))
}

func (s *FileStore) Delete(key string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(key)))
}
