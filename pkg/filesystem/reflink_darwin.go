//go:build darwin

package filesystem

import (
	"golang.org/x/sys/unix"
)

// treeOSFS is the macOS filesystem: clonefile(2) clones whole directories.
type treeOSFS struct {
	osFS
}

func newOS() FS {
	return &treeOSFS{osFS: osFS{aferoFS: baseOS()}}
}

// Reflink clones src to dst with clonefile(2). dst must not exist.
func (o *osFS) Reflink(src, dst string) error {
	if err := unix.Clonefile(src, dst, unix.CLONE_NOFOLLOW); err != nil {
		return linkError("clonefile", src, dst, err)
	}
	return nil
}

// CloneTree clones the directory src and everything below it to dst.
func (o *treeOSFS) CloneTree(src, dst string) error {
	return o.Reflink(src, dst)
}
