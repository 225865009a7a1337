package linker

import (
	"path/filepath"

	"github.com/arthur-debert/wheelink/pkg/errors"
)

// synchronizedCopy copies from to to while holding the lock of to's parent
// directory, so concurrent installers never interleave writes there.
func (l *Linker) synchronizedCopy(from, to string) error {
	mu := l.locks.dirLock(filepath.Dir(to))
	mu.Lock()
	defer mu.Unlock()

	if err := l.fs.CopyFile(from, to); err != nil {
		return errors.WrapPaths(err, errors.ErrCopy, from, to)
	}
	return nil
}
