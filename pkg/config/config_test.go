package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/wheelink/pkg/types"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLinkModeFallsBackToPlatformDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, types.DefaultLinkMode(), cfg.LinkMode())

	cfg.Link.Mode = "symlink"
	assert.Equal(t, types.LinkModeSymlink, cfg.LinkMode())
}

func TestPreserveExecutablesFor(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.PreserveExecutablesFor("darwin"))
	assert.False(t, cfg.PreserveExecutablesFor("linux"))

	cfg.Link.PreserveExecutables = PreserveAlways
	assert.True(t, cfg.PreserveExecutablesFor("linux"))

	cfg.Link.PreserveExecutables = PreserveNever
	assert.False(t, cfg.PreserveExecutablesFor("darwin"))
}

func TestTOMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Link.Mode = "copy"
	cfg.Preview.Features = []string{"detect-module-conflicts"}

	out, err := cfg.TOML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "[link]")
	assert.Contains(t, string(out), "preserve_executables")

	var decoded Config
	require.NoError(t, toml.Unmarshal(out, &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestGlobalConfig(t *testing.T) {
	t.Cleanup(func() { Initialize(nil) })

	Initialize(nil)
	assert.Equal(t, Default(), Get())

	cfg := Default()
	cfg.Link.Jobs = 7
	Initialize(cfg)
	assert.Same(t, cfg, Get())
}

func TestDefaultsContentMatchesDefault(t *testing.T) {
	var decoded Config
	require.NoError(t, toml.Unmarshal([]byte(DefaultsContent()), &decoded))

	want := Default()
	assert.Equal(t, want.Link, decoded.Link)
	assert.Equal(t, want.Diagnostics, decoded.Diagnostics)
	assert.Empty(t, decoded.Preview.Features)
}
