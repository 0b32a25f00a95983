package filesystem

import (
	"errors"
	"io/fs"
)

// FS is the set of filesystem primitives a build needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces name with data. Implementations may write atomically.
	WriteFile(name string, data []byte, perm fs.FileMode) error
	// MkdirAll creates path and any parents; an existing directory is not an error.
	MkdirAll(path string, perm fs.FileMode) error
}

// Exists reports whether name exists. Errors other than "not exist" count as
// existing so the caller surfaces them on the next operation.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
