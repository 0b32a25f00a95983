package filesystem

import (
	"bytes"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
)

// osFS implements FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation. Writes go through a
// temporary file and rename, so readers never see a half-written page.
func NewOS() FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := atomic.WriteFile(name, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(name, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
