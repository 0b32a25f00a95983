package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pagesmith/pkg/filesystem"
	"github.com/arthur-debert/pagesmith/pkg/tree"
)

// settingsKeys are the PAGESMITH_* variables read by the settings loader
var settingsKeys = []string{"OUTDIR", "CONFIG", "INDEXES", "FORMAT", "JOBS", "PARTIALS", "SITEMAP", "VERBOSE"}

// NewMemoryFS returns an in-memory filesystem holding files (path -> content).
// Parent directories are created as needed.
func NewMemoryFS(t *testing.T, files map[string]string) filesystem.FS {
	t.Helper()

	fsys := filesystem.NewMemory()
	for path, content := range files {
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create parent directories for %s: %v", path, err)
		}
		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
	return fsys
}

// ReadFile reads the content of a file and returns it as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, fsys filesystem.FS, path string) string {
	t.Helper()

	content, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// Isolate points the XDG directories at a fresh temporary directory and
// clears every PAGESMITH_* setting for the duration of the test. It returns
// an empty working directory.
func Isolate(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(root, "config-dirs"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))

	for _, key := range settingsKeys {
		// Setenv registers the restore; Unsetenv makes the variable absent
		// rather than empty.
		t.Setenv("PAGESMITH_"+key, "")
		if err := os.Unsetenv("PAGESMITH_" + key); err != nil {
			t.Fatalf("Failed to unset PAGESMITH_%s: %v", key, err)
		}
	}

	workDir := filepath.Join(root, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work directory: %v", err)
	}
	return workDir
}

// Tree converts a Go literal into a configuration mapping.
func Tree(t *testing.T, native map[string]any) *tree.Mapping {
	t.Helper()

	n, err := tree.FromNative(native)
	if err != nil {
		t.Fatalf("Failed to build tree: %v", err)
	}
	m, ok := n.(*tree.Mapping)
	if !ok {
		t.Fatalf("Expected a mapping, got %s", n.Kind())
	}
	return m
}
