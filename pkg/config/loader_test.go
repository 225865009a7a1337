package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/types"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	return filepath.Join(home, "wheelink")
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Link.Mode)
	assert.Equal(t, 0, cfg.Link.Jobs)
	assert.Equal(t, PreserveAuto, cfg.Link.PreserveExecutables)
	assert.True(t, cfg.Diagnostics.Warnings)
	assert.Empty(t, cfg.Preview.Features)

	assert.Equal(t, types.DefaultLinkMode(), cfg.LinkMode())
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs())
}

func TestLoadUserConfigFile(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "config.toml"), `
[link]
mode = "copy"
jobs = 3

[preview]
features = ["detect-module-conflicts"]
`)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, types.LinkModeCopy, cfg.LinkMode())
		assert.Equal(t, 3, cfg.Jobs())
		assert.True(t, cfg.PreviewSet().IsEnabled(types.PreviewDetectModuleConflicts))
		// Keys absent from the file keep their defaults.
		assert.True(t, cfg.Diagnostics.Warnings)
	})

	t.Run("yaml", func(t *testing.T) {
		dir := isolate(t)
		writeFile(t, filepath.Join(dir, "config.yaml"), `
link:
  mode: symlink
diagnostics:
  warnings: false
`)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, types.LinkModeSymlink, cfg.LinkMode())
		assert.False(t, cfg.Diagnostics.Warnings)
	})
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[link]\nmode = \"copy\"\n")
	explicit := writeFile(t, filepath.Join(t.TempDir(), "custom.yml"), "link:\n  mode: hardlink\n")

	cfg, err := Load(LoadOptions{File: explicit})
	require.NoError(t, err)
	assert.Equal(t, types.LinkModeHardlink, cfg.LinkMode())
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "bad.toml"), "[link\nmode = ")

	_, err := Load(LoadOptions{File: path})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[link]
mode = "symlink"
jobs = 2
preserve_executables = "never"
`)
	t.Setenv("WHEELINK_LINK_MODE", "copy")
	t.Setenv("WHEELINK_LINK_JOBS", "5")
	t.Setenv("WHEELINK_LINK_PRESERVE_EXECUTABLES", "always")
	t.Setenv("WHEELINK_PREVIEW_FEATURES", "detect-module-conflicts")

	cfg, err := Load(LoadOptions{
		Overrides: map[string]interface{}{"link.mode": "hardlink"},
	})
	require.NoError(t, err)

	assert.Equal(t, types.LinkModeHardlink, cfg.LinkMode(), "flags win over env")
	assert.Equal(t, 5, cfg.Jobs(), "env wins over file")
	assert.Equal(t, PreserveAlways, cfg.Link.PreserveExecutables)
	assert.Equal(t, []string{"detect-module-conflicts"}, cfg.Preview.Features)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{"link mode", "link.mode", "teleport"},
		{"jobs", "link.jobs", -1},
		{"preserve executables", "link.preserve_executables", "sometimes"},
		{"preview", "preview.features", []string{"time-travel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(LoadOptions{Overrides: map[string]interface{}{tt.key: tt.val}})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "link.mode", envKey("WHEELINK_LINK_MODE"))
	assert.Equal(t, "link.preserve_executables", envKey("WHEELINK_LINK_PRESERVE_EXECUTABLES"))
	assert.Equal(t, "diagnostics.warnings", envKey("WHEELINK_DIAGNOSTICS_WARNINGS"))
}
