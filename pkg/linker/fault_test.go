package linker

import (
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/arthur-debert/wheelink/pkg/filesystem"
)

// fault makes an operation fail once it has succeeded `after` times.
type fault struct {
	after int
	err   error
}

// faultFS counts placement calls and injects failures into them.
type faultFS struct {
	filesystem.FS

	mu     sync.Mutex
	calls  map[string]int
	faults map[string]fault
}

func newFaultFS(base filesystem.FS) *faultFS {
	return &faultFS{
		FS:     base,
		calls:  make(map[string]int),
		faults: make(map[string]fault),
	}
}

func (f *faultFS) failAfter(op string, after int, err error) *faultFS {
	f.faults[op] = fault{after: after, err: err}
	return f
}

func (f *faultFS) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *faultFS) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if rule, ok := f.faults[op]; ok && f.calls[op] > rule.after {
		return rule.err
	}
	return nil
}

func (f *faultFS) Hardlink(oldname, newname string) error {
	if err := f.hit("hardlink"); err != nil {
		return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: err}
	}
	return f.FS.Hardlink(oldname, newname)
}

func (f *faultFS) Symlink(oldname, newname string) error {
	if err := f.hit("symlink"); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *faultFS) Reflink(src, dst string) error {
	if err := f.hit("reflink"); err != nil {
		return &os.LinkError{Op: "reflink", Old: src, New: dst, Err: err}
	}
	return f.FS.Reflink(src, dst)
}

func (f *faultFS) CopyFile(src, dst string) error {
	if err := f.hit("copy"); err != nil {
		return &os.PathError{Op: "copy", Path: dst, Err: err}
	}
	return f.FS.CopyFile(src, dst)
}

func (f *faultFS) Rename(oldpath, newpath string) error {
	if err := f.hit("rename"); err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *faultFS) Chtimes(name string, atime, mtime time.Time) error {
	if err := f.hit("chtimes"); err != nil {
		return &os.PathError{Op: "chtimes", Path: name, Err: err}
	}
	return f.FS.Chtimes(name, atime, mtime)
}

var errIO = syscall.EIO
