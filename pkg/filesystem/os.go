package filesystem

import (
	"os"

	"github.com/spf13/afero"
)

// osFS implements FS on the real filesystem. Reflink (and, on macOS,
// CloneTree) is provided per operating system in reflink_*.go.
type osFS struct {
	aferoFS
}

// NewOS creates a new OS filesystem implementation
func NewOS() FS {
	return newOS()
}

func (o *osFS) Hardlink(oldname, newname string) error {
	return os.Link(oldname, newname)
}

// Symlink creates newname pointing at oldname. On Windows os.Symlink picks
// directory or file symlink semantics from the target, so one call serves
// every platform.
func (o *osFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

func baseOS() aferoFS {
	return aferoFS{fs: afero.NewOsFs()}
}
