// Package installer links the packages of an install plan into one
// destination, several at a time.
package installer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/wheelink/pkg/diagnostics"
	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/filesystem"
	"github.com/arthur-debert/wheelink/pkg/linker"
	"github.com/arthur-debert/wheelink/pkg/logging"
	"github.com/arthur-debert/wheelink/pkg/plan"
	"github.com/arthur-debert/wheelink/pkg/report"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// PackageLinker places the files of one package.
type PackageLinker interface {
	LinkPackageFiles(mode types.LinkMode, dest, src string, id types.Identity) (int, error)
}

// LinkerFactory creates the linker for one session from its shared locks.
type LinkerFactory func(locks *linker.Locks) PackageLinker

// Installer runs installation sessions.
type Installer struct {
	fs        filesystem.FS
	mode      types.LinkMode
	jobs      int
	preview   types.Preview
	sink      diagnostics.Sink
	warnings  bool
	onDone    func(report.Package)
	newLinker LinkerFactory
	logger    zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithMode sets the link mode used for every package.
func WithMode(mode types.LinkMode) Option {
	return func(i *Installer) { i.mode = mode }
}

// WithJobs bounds how many packages are linked at once. Values below one
// use one per CPU.
func WithJobs(jobs int) Option {
	return func(i *Installer) { i.jobs = jobs }
}

// WithPreview enables preview features.
func WithPreview(preview types.Preview) Option {
	return func(i *Installer) { i.preview = preview }
}

// WithWarnings controls whether sessions collect user-facing warnings, and
// forwards each new warning to sink when it is not nil.
func WithWarnings(enabled bool, sink diagnostics.Sink) Option {
	return func(i *Installer) {
		i.warnings = enabled
		i.sink = sink
	}
}

// WithPackageDone registers a callback run after each package, from the
// goroutine that linked it.
func WithPackageDone(fn func(report.Package)) Option {
	return func(i *Installer) { i.onDone = fn }
}

// WithLinkerOptions configures the linker of every session.
func WithLinkerOptions(opts ...linker.Option) Option {
	return func(i *Installer) {
		fsys := i.fs
		i.newLinker = func(locks *linker.Locks) PackageLinker {
			return linker.New(fsys, locks, opts...)
		}
	}
}

// WithLinkerFactory replaces the linker used by sessions.
func WithLinkerFactory(factory LinkerFactory) Option {
	return func(i *Installer) { i.newLinker = factory }
}

// New creates an Installer working on fsys.
func New(fsys filesystem.FS, opts ...Option) *Installer {
	i := &Installer{
		fs:       fsys,
		mode:     types.DefaultLinkMode(),
		warnings: true,
		logger:   logging.GetLogger("installer"),
	}
	i.newLinker = func(locks *linker.Locks) PackageLinker {
		return linker.New(fsys, locks)
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.jobs < 1 {
		i.jobs = runtime.NumCPU()
	}
	return i
}

// Install links packages into dest. All packages share one set of locks and
// one warning collector.
//
// The first failure stops packages that have not started yet; packages
// already being linked run to completion. The report lists every package
// that started, and the destination may be partially populated on error.
func (i *Installer) Install(ctx context.Context, dest string, packages []plan.Package) (*report.Report, error) {
	start := time.Now()
	logger := i.logger.With().Str("dest", dest).Str("mode", i.mode.String()).Logger()
	logger.Info().Int("packages", len(packages)).Int("jobs", i.jobs).Msg("Installing packages")

	diagOpts := []diagnostics.Option{diagnostics.WithSink(i.sink)}
	if !i.warnings {
		diagOpts = append(diagOpts, diagnostics.Disabled())
	}
	diag := diagnostics.NewCollector(diagOpts...)
	l := i.newLinker(linker.NewLocks(diag, i.preview))

	rep := &report.Report{Destination: dest, Mode: i.mode}

	if err := i.fs.MkdirAll(dest, 0o755); err != nil {
		rep.Err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create destination `%s`", dest)
		return rep, rep.Err
	}

	var (
		mu      sync.Mutex
		results = make([]*report.Package, len(packages))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.jobs)
	for idx, pkg := range packages {
		idx, pkg := idx, pkg
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := i.installOne(logger, l, dest, pkg)

			mu.Lock()
			results[idx] = &res
			mu.Unlock()

			if i.onDone != nil {
				i.onDone(res)
			}
			return res.Err
		})
	}
	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	for _, res := range results {
		if res != nil {
			rep.Packages = append(rep.Packages, *res)
		}
	}
	rep.Warnings = diag.Warnings()
	rep.Duration = time.Since(start)
	rep.Err = err

	if err != nil {
		logger.Error().Err(err).Msg("Installation failed")
		return rep, err
	}
	logger.Info().
		Int("files", rep.TotalFiles()).
		Dur("duration", rep.Duration).
		Msg("Installation complete")
	return rep, nil
}

func (i *Installer) installOne(logger zerolog.Logger, l PackageLinker, dest string, pkg plan.Package) report.Package {
	id := pkg.Identity()
	start := time.Now()
	files, err := l.LinkPackageFiles(i.mode, dest, pkg.Source, id)
	res := report.Package{
		Identity: id,
		Source:   pkg.Source,
		Files:    files,
		Duration: time.Since(start),
	}
	if err != nil {
		res.Err = errors.Wrapf(err, errors.GetErrorCode(err), "failed to install %s", id)
		logger.Debug().Err(err).Str("package", id.String()).Msg("Package failed")
		return res
	}
	logger.Debug().Str("package", id.String()).Int("files", files).Msg("Package installed")
	return res
}
