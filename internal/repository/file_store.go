package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
	"github.com/noah-isme/sma-classroom/pkg/storage"
)

// FileStore keeps one JSON file per key under a directory.
type FileStore struct {
	files *storage.LocalStorage
}

// NewFileStore constructs a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	files, err := storage.NewLocalStorage(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{files: files}, nil
}

// Get reads the file for key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := s.files.Read(filename(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, appErrors.ErrStorageMiss
		}
		return nil, fmt.Errorf("file get %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the file for key.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if _, err := s.files.Save(filename(key), value); err != nil {
		return fmt.Errorf("file set %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := s.files.Delete(filename(key)); err != nil {
		return fmt.Errorf("file delete %s: %w", key, err)
	}
	return nil
}

// Path returns where key is stored on disk.
func (s *FileStore) Path(key string) string {
	return s.files.Path(filename(key))
}

// filename escapes key so it can never leave the storage directory.
func filename(key string) string {
	return url.PathEscape(key) + ".json"
}
