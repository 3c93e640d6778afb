package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaStore persists decoded media under relative paths. Implementations
// must tolerate Delete on a path that no longer exists.
type MediaStore interface {
	Put(ctx context.Context, folder, ext string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}

// newFileName builds a collision-resistant relative path.
func newFileName(folder, ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/%d_%s.%s", strings.Trim(folder, "/"), time.Now().Unix(), token, ext)
}

// DiskStore writes media under a local public root, the default driver.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at the given directory.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Put(_ context.Context, folder, ext string, data []byte) (string, error) {
	relPath := newFileName(folder, ext)
	fullPath := filepath.Join(s.root, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media folder: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image to storage: %w", err)
	}
	return relPath, nil
}

func (s *DiskStore) Delete(_ context.Context, path string) error {
	fullPath := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete stored image: %w", err)
	}
	return nil
}
