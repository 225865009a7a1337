package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/wheelink/pkg/errors"
	"github.com/arthur-debert/wheelink/pkg/logging"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "WHEELINK_"

var userConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// LoadOptions selects the optional configuration sources.
type LoadOptions struct {
	// File is an explicit config file. It must exist. When empty the
	// user config directory is searched.
	File string
	// Overrides are applied last, keyed by dotted path such as "link.mode".
	Overrides map[string]interface{}
}

// Load builds the configuration from every source and validates it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config file
	path, err := configFilePath(opts.File)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps WHEELINK_LINK_PRESERVE_EXECUTABLES to
// link.preserve_executables: the first underscore separates the section.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// configFilePath returns the config file to load, or "" if there is none.
func configFilePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", explicit)
		}
		return explicit, nil
	}

	dir := UserConfigDir()
	for _, name := range userConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// UserConfigDir returns the directory searched for the user config file.
func UserConfigDir() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "wheelink")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
