package linker

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/filesystem"
	"github.com/arthur-debert/wheelink/pkg/logging"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// recordFile is the wheel's installed-files manifest. Installers rewrite it
// in place, so it is never shared with the cache through a link.
const recordFile = "RECORD"

// Linker places unpacked wheels into an installation directory.
type Linker struct {
	fs                  filesystem.FS
	locks               *Locks
	preserveExecutables bool
	logger              zerolog.Logger
}

// Option configures a Linker.
type Option func(*Linker)

// WithPreserveExecutables controls whether clone mode hard links native
// binaries instead of cloning them. It defaults to true on macOS only.
func WithPreserveExecutables(preserve bool) Option {
	return func(l *Linker) { l.preserveExecutables = preserve }
}

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Linker) { l.logger = logger }
}

// New creates a Linker working on fsys. All linkers of one installation
// session must share locks.
func New(fsys filesystem.FS, locks *Locks, opts ...Option) *Linker {
	l := &Linker{
		fs:                  fsys,
		locks:               locks,
		preserveExecutables: runtime.GOOS == "darwin",
		logger:              logging.GetLogger("linker"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LinkPackageFiles places every file under src, the unpacked wheel of id,
// into dest using mode. It returns the number of regular files placed.
//
// The destination root may already exist and contain files from other
// packages; directories are merged and files are replaced. On error the
// destination may be partially populated.
func (l *Linker) LinkPackageFiles(mode types.LinkMode, dest, src string, id types.Identity) (int, error) {
	logger := l.logger.With().
		Str("package", id.String()).
		Str("mode", mode.String()).
		Logger()
	done := logging.LogOperationStart(logger, "link package files")
	defer done()

	var (
		count int
		err   error
	)
	switch mode {
	case types.LinkModeClone:
		count, err = l.clonePackage(logger, dest, src, id)
	case types.LinkModeCopy:
		count, err = l.copyPackage(dest, src, id)
	case types.LinkModeHardlink:
		count, err = l.hardlinkPackage(logger, dest, src, id)
	case types.LinkModeSymlink:
		count, err = l.symlinkPackage(logger, dest, src, id)
	default:
		return 0, errors.Newf(errors.ErrInvalidInput, "unknown link mode %d", int(mode))
	}
	if err != nil {
		return count, err
	}

	logger.Debug().Int("files", count).Str("dest", dest).Msg("Package files placed")
	return count, nil
}

// checkModuleConflict registers rel if it is the __init__.py of a top level
// package, that is exactly "<name>/__init__.py".
func (l *Linker) checkModuleConflict(rel string, id types.Identity) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) == 2 && parts[1] == "__init__.py" {
		l.locks.warnModuleConflict(parts[0], id)
	}
}

func isRecord(path string) bool {
	return filepath.Base(path) == recordFile
}

func (l *Linker) mkdirAll(dir string) error {
	if err := l.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory `%s`", dir)
	}
	return nil
}
