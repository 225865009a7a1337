package plan

import (
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// SupportedFormats is the range of plan format versions this build reads.
const SupportedFormats = "^1"

// Plan is a validated install plan.
type Plan struct {
	Format      string    `toml:"format" yaml:"format"`
	Destination string    `toml:"destination,omitempty" yaml:"destination,omitempty"`
	Packages    []Package `toml:"package" yaml:"package"`
}

// Package is one unpacked wheel to install.
type Package struct {
	Name    string `toml:"name" yaml:"name"`
	Version string `toml:"version" yaml:"version"`
	// Source is the unpacked wheel directory. Relative paths are resolved
	// against the plan file's directory when loaded from a file.
	Source string `toml:"source" yaml:"source"`
}

// Identity returns the package's name and version.
func (p Package) Identity() types.Identity {
	return types.Identity{Name: p.Name, Version: p.Version}
}

// checkFormat rejects plans written for an incompatible format version.
func checkFormat(format string) error {
	version, err := semver.NewVersion(format)
	if err != nil {
		return errors.Wrapf(err, errors.ErrPlanVersion, "invalid plan format %q", format)
	}
	constraint, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "invalid supported format constraint")
	}
	if !constraint.Check(version) {
		return errors.Newf(errors.ErrPlanVersion,
			"plan format %s is not supported (expected %s)", format, SupportedFormats).
			WithDetail("format", format)
	}
	return nil
}

// checkPackages rejects duplicate package names.
func checkPackages(packages []Package) error {
	seen := make(map[string]int, len(packages))
	for i, pkg := range packages {
		if first, ok := seen[pkg.Name]; ok {
			return errors.Newf(errors.ErrPlanInvalid,
				"package %q is listed twice (entries %d and %d)", pkg.Name, first+1, i+1).
				WithDetail("package", pkg.Name)
		}
		seen[pkg.Name] = i
	}
	return nil
}

// resolveSources makes relative sources absolute against baseDir.
func (p *Plan) resolveSources(baseDir string) {
	if baseDir == "" {
		return
	}
	for i := range p.Packages {
		if !filepath.IsAbs(p.Packages[i].Source) {
			p.Packages[i].Source = filepath.Join(baseDir, p.Packages[i].Source)
		}
	}
}

func (p *Plan) String() string {
	return fmt.Sprintf("plan(format=%s, packages=%d)", p.Format, len(p.Packages))
}
