package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(dir)
	require.NoError(t, err)

	path, err := storage.Save(strings.NewReader("id,name\n"), "Clientes.CSV", "imports")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "imports/"))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "id,name\n", string(content))

	require.NoError(t, storage.Delete(path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Delete(path))
}

func TestLocalFileStorage_DeleteStaysInsideBase(t *testing.T) {
	outside := t.TempDir()
	victim := filepath.Join(outside, "keep.txt")
	require.NoError(t, os.WriteFile(victim, []byte("x"), 0o644))

	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Delete("../../"+filepath.Base(outside)+"/keep.txt"))
	_, err = os.Stat(victim)
	assert.NoError(t, err)
}
