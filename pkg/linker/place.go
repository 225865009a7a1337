package linker

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/filesystem"
)

const tempPrefix = ".wheelink-"

// placement applies one accelerated operation to the files of a single
// package, tracking whether it works.
type placement struct {
	l      *Linker
	logger zerolog.Logger
	// verb names the operation in warnings, e.g. "hardlink".
	verb string
	// noun names it in the fallback explanation, e.g. "hardlinking".
	noun    string
	code    errors.ErrorCode
	place   func(from, to string) error
	attempt Attempt
}

func (l *Linker) newPlacement(logger zerolog.Logger, verb, noun string, code errors.ErrorCode, place func(from, to string) error) *placement {
	return &placement{
		l:      l,
		logger: logger,
		verb:   verb,
		noun:   noun,
		code:   code,
		place:  place,
	}
}

// apply places from at to. If the operation has already failed for this
// package the file is copied instead.
func (p *placement) apply(from, to string) error {
	if p.attempt == UseCopyFallback {
		return p.l.synchronizedCopy(from, to)
	}

	err := p.place(from, to)
	if stderrors.Is(err, fs.ErrExist) {
		p.logger.Trace().Str("to", to).Msg("Destination exists, replacing through a temporary file")
		err = p.replace(from, to)
		if errors.IsErrorCode(err, errors.ErrRename) || errors.IsErrorCode(err, errors.ErrTempDir) {
			return err
		}
	}
	if err == nil {
		p.succeed()
		p.logger.Trace().Str("from", from).Str("to", to).Msgf("Placed with %s", p.verb)
		return nil
	}
	return p.fail(err, from, to, func() error { return p.l.synchronizedCopy(from, to) })
}

func (p *placement) succeed() {
	p.attempt, _ = p.attempt.next(succeeded)
}

// fail records a failed accelerated operation. In the Initial state the
// package switches to copying and fallback runs; otherwise err is returned.
func (p *placement) fail(err error, from, to string, fallback func() error) error {
	next, ok := p.attempt.next(failed)
	if !ok {
		return errors.WrapPaths(err, p.code, from, to)
	}
	p.logger.Debug().
		Err(err).
		Str("from", from).
		Str("to", to).
		Msgf("Failed to %s, falling back to copy", p.verb)
	p.attempt = next
	p.l.locks.warnFallback(p.verb, p.noun)
	return fallback()
}

// replace places from next to an existing to and renames it over to.
func (p *placement) replace(from, to string) error {
	return withTempDir(p.l.fs, filepath.Dir(to), func(tmp string) error {
		staged := filepath.Join(tmp, filepath.Base(to))
		if err := p.place(from, staged); err != nil {
			return err
		}
		if err := p.l.fs.Rename(staged, to); err != nil {
			return errors.WrapPaths(err, errors.ErrRename, staged, to)
		}
		return nil
	})
}

// withTempDir runs fn with a fresh directory inside dir, removing it
// afterwards whatever fn returns.
func withTempDir(fsys filesystem.FS, dir string, fn func(tmp string) error) error {
	tmp, err := fsys.MkdirTemp(dir, tempPrefix)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTempDir, "failed to create temporary directory in `%s`", dir)
	}
	defer func() { _ = fsys.RemoveAll(tmp) }()
	return fn(tmp)
}
