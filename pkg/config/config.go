package config

import (
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// Values accepted by link.preserve_executables.
const (
	PreserveAuto   = "auto"
	PreserveAlways = "always"
	PreserveNever  = "never"
)

// Config is the complete wheelink configuration.
type Config struct {
	Link        Link        `koanf:"link" toml:"link"`
	Diagnostics Diagnostics `koanf:"diagnostics" toml:"diagnostics"`
	Preview     Preview     `koanf:"preview" toml:"preview"`
}

// Link configures how package files are placed.
type Link struct {
	Mode                string `koanf:"mode" toml:"mode"`
	Jobs                int    `koanf:"jobs" toml:"jobs"`
	PreserveExecutables string `koanf:"preserve_executables" toml:"preserve_executables"`
}

// Diagnostics configures user-facing warnings.
type Diagnostics struct {
	Warnings bool `koanf:"warnings" toml:"warnings"`
}

// Preview lists opt-in preview features.
type Preview struct {
	Features []string `koanf:"features" toml:"features"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Link: Link{
			PreserveExecutables: PreserveAuto,
		},
		Diagnostics: Diagnostics{Warnings: true},
		Preview:     Preview{Features: []string{}},
	}
}

// Validate checks every value that can be set by the user.
func (c *Config) Validate() error {
	if c.Link.Mode != "" {
		if _, err := types.ParseLinkMode(c.Link.Mode); err != nil {
			return errors.Wrap(err, errors.ErrConfigValid, "invalid link.mode").
				WithDetail("value", c.Link.Mode)
		}
	}
	if c.Link.Jobs < 0 {
		return errors.Newf(errors.ErrConfigValid, "link.jobs must not be negative, got %d", c.Link.Jobs)
	}
	switch c.Link.PreserveExecutables {
	case PreserveAuto, PreserveAlways, PreserveNever:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"link.preserve_executables must be one of auto, always, never, got %q", c.Link.PreserveExecutables)
	}
	if _, err := types.ParsePreview(c.Preview.Features); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid preview.features")
	}
	return nil
}

// LinkMode returns the configured link mode, or the platform default when
// none is set.
func (c *Config) LinkMode() types.LinkMode {
	if c.Link.Mode == "" {
		return types.SelectLinkMode(nil)
	}
	mode, err := types.ParseLinkMode(c.Link.Mode)
	if err != nil {
		return types.SelectLinkMode(nil)
	}
	return types.SelectLinkMode(&mode)
}

// Jobs returns the number of packages to link in parallel.
func (c *Config) Jobs() int {
	if c.Link.Jobs > 0 {
		return c.Link.Jobs
	}
	return runtime.NumCPU()
}

// PreserveExecutablesFor resolves link.preserve_executables for goos.
func (c *Config) PreserveExecutablesFor(goos string) bool {
	switch c.Link.PreserveExecutables {
	case PreserveAlways:
		return true
	case PreserveNever:
		return false
	default:
		return goos == "darwin"
	}
}

// PreviewSet returns the enabled preview features. Unknown names are
// rejected by Validate.
func (c *Config) PreviewSet() types.Preview {
	preview, err := types.ParsePreview(c.Preview.Features)
	if err != nil {
		return types.NewPreview()
	}
	return preview
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
