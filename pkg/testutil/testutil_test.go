package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryFS(t *testing.T) {
	fsys := NewMemoryFS(t, map[string]string{
		"/src/page.tmpl":  "hello",
		"/site/conf.yaml": "a: 1",
	})

	assert.Equal(t, "hello", ReadFile(t, fsys, "/src/page.tmpl"))
	info, err := fsys.Stat("/site")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := CreateFile(t, dir, "nested/page.tmpl", "x")

	assert.Equal(t, filepath.Join(dir, "nested", "page.tmpl"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestIsolate(t *testing.T) {
	t.Setenv("PAGESMITH_OUTDIR", "leaked")

	t.Run("isolated", func(t *testing.T) {
		workDir := Isolate(t)

		_, set := os.LookupEnv("PAGESMITH_OUTDIR")
		assert.False(t, set)
		assert.DirExists(t, workDir)
		assert.NotEmpty(t, os.Getenv("XDG_CONFIG_HOME"))
	})

	assert.Equal(t, "leaked", os.Getenv("PAGESMITH_OUTDIR"))
}

func TestTree(t *testing.T) {
	m := Tree(t, map[string]any{"a": map[string]any{"b": 1}})
	assert.Equal(t, []string{"a"}, m.Keys())
}
