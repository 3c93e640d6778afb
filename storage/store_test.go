package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahsan-alam-500/tonycustom/storage"
)

func TestDiskStore_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	path, err := store.Put(ctx, "products/main", "png", []byte("fake-image-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "products/main/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-image-bytes"), data)

	require.NoError(t, store.Delete(ctx, path))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "products/main/nope.png"))
}

func TestDiskStore_UniquePaths(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	a, err := store.Put(ctx, "products/gallery", "jpg", []byte("a"))
	require.NoError(t, err)
	b, err := store.Put(ctx, "products/gallery", "jpg", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
