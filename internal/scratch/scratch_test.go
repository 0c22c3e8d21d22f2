package scratch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesUniqueDirs(t *testing.T) {
	a, err := New("test")
	require.NoError(t, err)
	defer a.Cleanup()

	b, err := New("test")
	require.NoError(t, err)
	defer b.Cleanup()

	assert.NotEqual(t, a.Path, b.Path)

	info, err := os.Stat(a.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteFile(t *testing.T) {
	dir, err := New("test")
	require.NoError(t, err)
	defer dir.Cleanup()

	path, err := dir.WriteFile("input.hwp", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, dir.Join("input.hwp"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)
}

func TestWriteFile_FullPathUsesBaseName(t *testing.T) {
	dir, err := New("test")
	require.NoError(t, err)
	defer dir.Cleanup()

	path, err := dir.WriteFile("/home/user/docs/form.hwp", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, dir.Join("form.hwp"), path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteFile_TraversalStaysInside(t *testing.T) {
	dir, err := New("test")
	require.NoError(t, err)
	defer dir.Cleanup()

	escaped := filepath.Join(filepath.Dir(dir.Path), "escaped.txt")
	defer os.Remove(escaped)

	path, err := dir.WriteFile("../escaped.txt", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, dir.Join("escaped.txt"), path)

	_, err = os.Stat(escaped)
	assert.True(t, os.IsNotExist(err), "file must not land outside the scratch dir")

	dir.Cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file must not survive Cleanup")
}

func TestWriteFile_DegenerateNames(t *testing.T) {
	dir, err := New("test")
	require.NoError(t, err)
	defer dir.Cleanup()

	for _, name := range []string{"..", ".", "", "/"} {
		path, err := dir.WriteFile(name, []byte("data"))
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, dir.Join("input"), path, "name %q", name)
	}
}

func TestCleanup_RemovesEverything(t *testing.T) {
	dir, err := New("test")
	require.NoError(t, err)

	_, err = dir.WriteFile("a.txt", []byte("a"))
	require.NoError(t, err)

	dir.Cleanup()

	_, err = os.Stat(dir.Path)
	assert.True(t, os.IsNotExist(err))

	// Second call is a no-op, not a panic.
	dir.Cleanup()
}

func TestCleanup_NilSafe(t *testing.T) {
	var dir *Dir
	dir.Cleanup()
}
