package linker

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/filesystem"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// cloner extracts one package with copy-on-write clones. When the
// filesystem can clone whole trees, each top level directory is cloned in
// one call and only directories that already exist in the destination are
// walked; otherwise every file is reflinked on its own.
type cloner struct {
	l      *Linker
	logger zerolog.Logger
	tree   filesystem.TreeCloner
	files  *placement
	count  int
}

func (l *Linker) clonePackage(logger zerolog.Logger, dest, src string, id types.Identity) (int, error) {
	c := &cloner{
		l:      l,
		logger: logger,
		files:  l.newPlacement(logger, "clone", "reflinking", errors.ErrLinkClone, l.fs.Reflink),
	}
	if tree, ok := l.fs.(filesystem.TreeCloner); ok {
		c.tree = tree
	}

	if err := l.mkdirAll(dest); err != nil {
		return 0, err
	}
	entries, err := l.fs.ReadDir(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrWalk, "failed to read directory `%s`", src)
	}
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		if entry.IsDir() && l.hasInitFile(from) {
			l.locks.warnModuleConflict(entry.Name(), id)
		}
		if err := c.entry(from, filepath.Join(dest, entry.Name()), entry.IsDir()); err != nil {
			return c.count, err
		}
	}

	// Clones keep the source timestamps, so tools watching the destination
	// would not notice the install without this.
	now := time.Now()
	if err := l.fs.Chtimes(dest, now, now); err != nil {
		logger.Debug().Err(err).Str("dest", dest).Msg("Failed to update destination mtime")
	}
	return c.count, nil
}

func (l *Linker) hasInitFile(dir string) bool {
	info, err := l.fs.Stat(filepath.Join(dir, "__init__.py"))
	return err == nil && !info.IsDir()
}

func (c *cloner) entry(from, to string, isDir bool) error {
	if isDir {
		if c.tree != nil && c.files.attempt != UseCopyFallback {
			return c.cloneTree(from, to)
		}
		return c.recurse(from, to)
	}

	if c.l.preserveExecutables && c.files.attempt != UseCopyFallback && IsPreserveInodeCandidate(c.l.fs, from) {
		placed, err := c.linkExecutable(from, to)
		if err != nil {
			return err
		}
		if placed {
			c.count++
			return nil
		}
	}

	if err := c.files.apply(from, to); err != nil {
		return err
	}
	c.count++
	return nil
}

// recurse recreates the directory from at to and handles its entries one
// by one.
func (c *cloner) recurse(from, to string) error {
	if err := c.l.mkdirAll(to); err != nil {
		return err
	}
	entries, err := c.l.fs.ReadDir(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWalk, "failed to read directory `%s`", from)
	}
	for _, entry := range entries {
		name := entry.Name()
		if err := c.entry(filepath.Join(from, name), filepath.Join(to, name), entry.IsDir()); err != nil {
			return err
		}
	}
	return nil
}

func (c *cloner) cloneTree(from, to string) error {
	err := c.tree.CloneTree(from, to)
	if err == nil {
		c.files.succeed()
		n, err := c.countFiles(from)
		if err != nil {
			return err
		}
		c.count += n
		c.logger.Trace().Str("from", from).Str("to", to).Int("files", n).Msg("Cloned directory")
		return nil
	}
	if stderrors.Is(err, fs.ErrExist) {
		// Another package owns part of this directory.
		c.logger.Trace().Str("to", to).Msg("Directory exists, merging")
		return c.recurse(from, to)
	}
	return c.files.fail(err, from, to, func() error { return c.recurse(from, to) })
}

func (c *cloner) countFiles(root string) (int, error) {
	n := 0
	err := c.l.fs.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrWalk, "failed to walk `%s`", path)
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	return n, err
}

// linkExecutable hard links a native binary so it keeps its inode. It
// reports false when the caller should clone the file instead; a failed hard
// link never changes the package's Attempt state.
func (c *cloner) linkExecutable(from, to string) (bool, error) {
	err := c.l.fs.Hardlink(from, to)
	if err == nil {
		c.logger.Trace().Str("from", from).Str("to", to).Msg("Hard linked executable")
		return true, nil
	}
	if !stderrors.Is(err, fs.ErrExist) {
		c.logger.Debug().Err(err).Str("from", from).Msg("Failed to hard link executable, cloning instead")
		return false, nil
	}

	placed := false
	err = withTempDir(c.l.fs, filepath.Dir(to), func(tmp string) error {
		staged := filepath.Join(tmp, filepath.Base(to))
		if err := c.l.fs.Hardlink(from, staged); err != nil {
			c.logger.Debug().Err(err).Str("from", from).Msg("Failed to hard link executable, cloning instead")
			return nil
		}
		if err := c.l.fs.Rename(staged, to); err != nil {
			return errors.WrapPaths(err, errors.ErrRename, staged, to)
		}
		placed = true
		return nil
	})
	return placed, err
}
