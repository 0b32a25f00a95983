package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "dist", "page")
	require.NoError(t, fsys.MkdirAll(subDir, 0755))
	require.NoError(t, fsys.MkdirAll(subDir, 0755), "MkdirAll must tolerate an existing directory")

	target := filepath.Join(subDir, "index.html")
	require.NoError(t, fsys.WriteFile(target, []byte("first"), 0644))
	require.NoError(t, fsys.WriteFile(target, []byte("second"), 0644))

	content, err := fsys.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	info, err := fsys.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(subDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "atomic writes must not leave temporary files behind")
}

func TestMemoryFS(t *testing.T) {
	fsys := NewMemory()

	require.NoError(t, fsys.MkdirAll("/dist", 0755))
	require.NoError(t, fsys.WriteFile("/dist/index.html", []byte("<p>hi</p>"), 0644))

	content, err := fsys.ReadFile("/dist/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(content))

	_, err = fsys.ReadFile("/dist")
	assert.Error(t, err, "reading a directory must fail")
}

func TestExists(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.WriteFile("/a.tmpl", []byte("x"), 0644))

	assert.True(t, Exists(fsys, "/a.tmpl"))
	assert.False(t, Exists(fsys, "/missing.tmpl"))
}
