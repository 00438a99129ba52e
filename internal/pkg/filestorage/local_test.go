package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	storedPath, err := storage.Save("1_DNI_20250101_120000.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("uploads", "documents", "1_DNI_20250101_120000.pdf"), storedPath)

	content, err := os.ReadFile(filepath.Join(dir, "1_DNI_20250101_120000.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(content))

	require.NoError(t, storage.Delete(storedPath))
	_, err = os.Stat(filepath.Join(dir, "1_DNI_20250101_120000.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageSaveEmptyName(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save("", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestLocalStorageSaveStripsPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = storage.Save("../escape.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.NoError(t, err)
}

func TestLocalStorageDeleteMissingFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, storage.Delete("uploads/documents/no-such-file.pdf"))
	assert.NoError(t, storage.Delete(""))
}

func TestLocalStorageFullPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.pdf"), storage.FullPath("uploads/documents/a.pdf"))
}
