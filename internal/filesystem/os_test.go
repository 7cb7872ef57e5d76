package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_OpenFileSyncClose(t *testing.T) {
	osfs := NewOSFileSystem()
	path := filepath.Join(t.TempDir(), "Makefile.toml")

	f, err := osfs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte("[config]\n"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	content, err := osfs.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[config]\n", string(content))
}

func TestOSFileSystem_MkdirExisting(t *testing.T) {
	osfs := NewOSFileSystem()
	dir := filepath.Join(t.TempDir(), ".cargo")

	require.NoError(t, osfs.Mkdir(dir, 0755))
	err := osfs.Mkdir(dir, 0755)
	require.True(t, errors.Is(err, fs.ErrExist))
}
