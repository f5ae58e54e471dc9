package storage

import (
	"context"

	"github.com/spec-kit/userstore/internal/domain"
)

var _ Storage = (*FileStorage)(nil)

// FileStorage is a stub: it remembers a base path and performs no I/O. Nothing it is given is
// ever persisted.
type FileStorage struct {
	basePath string
}

// NewFileStorage creates a stub rooted at basePath.
func NewFileStorage(basePath string) *FileStorage {
	return &FileStorage{basePath: basePath}
}

// BasePath returns the configured root.
func (f *FileStorage) BasePath() string {
	return f.basePath
}

func (f *FileStorage) Save(_ context.Context, _ domain.User) error {
	return nil
}

func (f *FileStorage) Load(_ context.Context, _ string) (domain.User, bool, error) {
	return domain.User{}, false, nil
}

func (f *FileStorage) Remove(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *FileStorage) List(_ context.Context) ([]domain.User, error) {
	return []domain.User{}, nil
}
