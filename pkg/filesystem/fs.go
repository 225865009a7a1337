package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// ErrUnsupported is returned, wrapped in an *os.LinkError, when the
// filesystem cannot perform an accelerated placement operation.
var ErrUnsupported = errors.New("operation not supported")

const copyTempPattern = ".wheelink-copy-*"

// FS is the set of filesystem operations the linker needs.
//
// Placement operations (Hardlink, Symlink, Reflink, CopyFile's destination
// aside) must fail with an error satisfying errors.Is(err, fs.ErrExist) when
// the destination already exists.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	// ReadHeader returns the first n bytes of a file. Short files are an error.
	ReadHeader(name string, n int) ([]byte, error)

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	MkdirTemp(dir, prefix string) (string, error)
	Walk(root string, fn filepath.WalkFunc) error

	// Other operations
	Rename(oldpath, newpath string) error
	RemoveAll(path string) error
	Chtimes(name string, atime, mtime time.Time) error

	// CopyFile copies src to dst with src's permission bits. An existing dst
	// is atomically replaced rather than truncated.
	CopyFile(src, dst string) error

	// Accelerated placement
	Hardlink(oldname, newname string) error
	Symlink(oldname, newname string) error
	Reflink(src, dst string) error
}

// TreeCloner is implemented by filesystems that clone a directory and
// everything below it in a single call. CloneTree fails with fs.ErrExist when
// dst exists; existing directories have to be merged entry by entry.
type TreeCloner interface {
	CloneTree(src, dst string) error
}

// aferoFS implements the ordinary FS operations on top of an afero.Fs.
type aferoFS struct {
	fs afero.Fs
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) ReadHeader(name string, n int) ([]byte, error) {
	f, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) MkdirTemp(dir, prefix string) (string, error) {
	return afero.TempDir(a.fs, dir, prefix)
}

func (a *aferoFS) Walk(root string, fn filepath.WalkFunc) error {
	return afero.Walk(a.fs, root, fn)
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	return a.fs.Rename(oldpath, newpath)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) Chtimes(name string, atime, mtime time.Time) error {
	return a.fs.Chtimes(name, atime, mtime)
}

// CopyFile writes src into a temporary file next to dst and renames it into
// place. An existing dst is replaced, never written through, so a dst that is
// a hard link or symlink to src leaves src intact.
func (a *aferoFS) CopyFile(src, dst string) error {
	in, perm, err := a.openSource(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	tmp, err := afero.TempFile(a.fs, filepath.Dir(dst), copyTempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := a.fill(tmp, in, tmpName, perm); err != nil {
		_ = a.fs.Remove(tmpName)
		return err
	}
	if err := a.fs.Rename(tmpName, dst); err != nil {
		_ = a.fs.Remove(tmpName)
		return err
	}
	return nil
}

// copyExclusive copies src to dst, failing with fs.ErrExist if dst exists.
func (a *aferoFS) copyExclusive(src, dst string) error {
	in, perm, err := a.openSource(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := a.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	return a.fill(out, in, dst, perm)
}

func (a *aferoFS) openSource(src string) (afero.File, fs.FileMode, error) {
	in, err := a.fs.Open(src)
	if err != nil {
		return nil, 0, err
	}
	info, err := in.Stat()
	if err != nil {
		_ = in.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		_ = in.Close()
		return nil, 0, &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}
	return in, info.Mode().Perm(), nil
}

// fill copies in to out, closes out and sets name's permission bits.
func (a *aferoFS) fill(out afero.File, in io.Reader, name string, perm fs.FileMode) error {
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return a.fs.Chmod(name, perm)
}

func linkError(op, oldname, newname string, err error) error {
	return &os.LinkError{Op: op, Old: oldname, New: newname, Err: err}
}
