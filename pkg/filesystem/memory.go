package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// MemOption configures an in-memory filesystem.
type MemOption func(*memFS)

// WithoutHardlinks makes Hardlink fail as on a filesystem without link(2) support.
func WithoutHardlinks() MemOption {
	return func(m *memFS) { m.hardlinks = false }
}

// WithoutReflinks makes Reflink and CloneTree fail as on a filesystem without
// copy-on-write support.
func WithoutReflinks() MemOption {
	return func(m *memFS) { m.reflinks = false }
}

// WithTreeClone makes the filesystem implement TreeCloner, so clone mode
// behaves as it does on macOS.
func WithTreeClone() MemOption {
	return func(m *memFS) { m.treeClone = true }
}

// memFS implements FS using afero's MemMapFs. Afero has no notion of links,
// so hard links and reflinks are simulated as exclusive copies: the content
// contract holds, inode sharing does not. Symbolic links are unsupported.
type memFS struct {
	aferoFS
	hardlinks bool
	reflinks  bool
	treeClone bool
}

type memTreeFS struct {
	*memFS
}

// NewMemFS creates a new in-memory filesystem for testing.
func NewMemFS(opts ...MemOption) FS {
	return NewAferoFS(afero.NewMemMapFs(), opts...)
}

// NewAferoFS wraps an existing afero filesystem with simulated links.
func NewAferoFS(base afero.Fs, opts ...MemOption) FS {
	m := &memFS{
		aferoFS:   aferoFS{fs: base},
		hardlinks: true,
		reflinks:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.treeClone {
		return &memTreeFS{memFS: m}
	}
	return m
}

func (m *memFS) Hardlink(oldname, newname string) error {
	if !m.hardlinks {
		return linkError("link", oldname, newname, ErrUnsupported)
	}
	return m.placeCopy("link", oldname, newname)
}

func (m *memFS) Symlink(oldname, newname string) error {
	return linkError("symlink", oldname, newname, ErrUnsupported)
}

func (m *memFS) Reflink(src, dst string) error {
	if !m.reflinks {
		return linkError("reflink", src, dst, ErrUnsupported)
	}
	return m.placeCopy("reflink", src, dst)
}

func (m *memFS) placeCopy(op, src, dst string) error {
	if err := m.copyExclusive(src, dst); err != nil {
		return linkError(op, src, dst, unwrapPathError(err))
	}
	return nil
}

// CloneTree copies the tree at src to dst, refusing an existing dst.
func (m *memTreeFS) CloneTree(src, dst string) error {
	if !m.reflinks {
		return linkError("clonefile", src, dst, ErrUnsupported)
	}
	if _, err := m.Lstat(dst); err == nil {
		return linkError("clonefile", src, dst, fs.ErrExist)
	}
	return m.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return m.fs.MkdirAll(target, info.Mode().Perm())
		}
		return m.copyExclusive(path, target)
	})
}

func unwrapPathError(err error) error {
	if pathErr, ok := err.(*os.PathError); ok {
		return pathErr.Err
	}
	return err
}
