package linker

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// walkPackage recreates the directories of src under dest and hands every
// other entry to place. It returns the number of entries placed.
func (l *Linker) walkPackage(dest, src string, id types.Identity, place func(from, to string) error) (int, error) {
	count := 0
	err := l.fs.Walk(src, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrWalk, "failed to walk `%s`", path)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrWalk, "failed to relativize `%s`", path)
		}
		out := filepath.Join(dest, rel)

		l.checkModuleConflict(rel, id)

		if info.IsDir() {
			return l.mkdirAll(out)
		}
		if err := place(path, out); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func (l *Linker) copyPackage(dest, src string, id types.Identity) (int, error) {
	return l.walkPackage(dest, src, id, l.synchronizedCopy)
}

func (l *Linker) hardlinkPackage(logger zerolog.Logger, dest, src string, id types.Identity) (int, error) {
	p := l.newPlacement(logger, "hardlink", "hardlinking", errors.ErrLinkHardlink, l.fs.Hardlink)
	return l.walkPackage(dest, src, id, func(from, to string) error {
		if isRecord(from) {
			return l.synchronizedCopy(from, to)
		}
		return p.apply(from, to)
	})
}

func (l *Linker) symlinkPackage(logger zerolog.Logger, dest, src string, id types.Identity) (int, error) {
	// Link targets are stored verbatim, so they must not depend on the
	// working directory.
	abs, err := filepath.Abs(src)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve `%s`", src)
	}
	p := l.newPlacement(logger, "symlink", "symlinking", errors.ErrLinkSymlink, l.fs.Symlink)
	return l.walkPackage(dest, abs, id, func(from, to string) error {
		if isRecord(from) {
			return l.synchronizedCopy(from, to)
		}
		return p.apply(from, to)
	})
}
