//go:build linux

package filesystem

import (
	"os"

	"golang.org/x/sys/unix"
)

func newOS() FS {
	return &osFS{aferoFS: baseOS()}
}

// Reflink clones src into a new file at dst with the FICLONE ioctl. Only some
// filesystems (btrfs, xfs, ...) support it, and never across filesystems.
// Directories cannot be cloned; callers recreate them and recurse.
func (o *osFS) Reflink(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if err := unix.IoctlFileClone(int(out.Fd()), int(in.Fd())); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return linkError("reflink", src, dst, err)
	}
	return out.Close()
}
