package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamthumb/internal/core/ports"
)

var _ ports.ArchiveStore = &Store{}

func TestPut(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "archive"))

	require.NoError(t, store.Put(context.Background(), "alice.jpg", []byte("one")))

	data, err := os.ReadFile(filepath.Join(dir, "archive", "alice.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestPutOverwrites(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "alice.jpg", []byte("one")))
	require.NoError(t, store.Put(ctx, "alice.jpg", []byte("two")))

	data, err := os.ReadFile(filepath.Join(store.BaseDir, "alice.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}
