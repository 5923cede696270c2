package filestore

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndOpen(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	written, err := store.Save(1, 42, "deadbeef.pdf", strings.NewReader("fake pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(14), written)

	f, err := store.Open(1, 42, "deadbeef.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "fake pdf bytes", string(data))
}

func TestDiskStore_SaveRejectsDuplicateName(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(1, 42, "deadbeef.pdf", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = store.Save(1, 42, "deadbeef.pdf", strings.NewReader("second"))
	assert.Error(t, err)
}

func TestDiskStore_OwnersAreIsolated(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	require.NoError(t, err)

	_, err = store.Save(1, 42, "doc.pdf", strings.NewReader("alice data"))
	require.NoError(t, err)

	// Файл лежит под сегментом владельца, другой владелец его не видит.
	_, err = store.Open(2, 42, "doc.pdf")
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "1", "42", "doc.pdf"))
	assert.NoError(t, statErr)
}

func TestDiskStore_Remove(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(1, 42, "doc.pdf", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(1, 42, "doc.pdf"))

	_, err = store.Open(1, 42, "doc.pdf")
	assert.Error(t, err)

	// Повторное удаление не ошибка.
	assert.NoError(t, store.Remove(1, 42, "doc.pdf"))
}

func TestDiskStore_RemoveApplicationDir(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	require.NoError(t, err)

	_, err = store.Save(1, 42, "a.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Save(1, 42, "b.pdf", strings.NewReader("b"))
	require.NoError(t, err)
	_, err = store.Save(1, 43, "c.pdf", strings.NewReader("c"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveApplicationDir(1, 42))

	_, err = os.Stat(filepath.Join(root, "1", "42"))
	assert.True(t, os.IsNotExist(err))

	// Соседний отклик не задет.
	_, err = store.Open(1, 43, "c.pdf")
	assert.NoError(t, err)
}
