// Package config loads wheelink's configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the user config file, either given explicitly or found at
//     $XDG_CONFIG_HOME/wheelink/config.{toml,yaml,yml}
//  3. WHEELINK_<SECTION>_<KEY> environment variables, e.g. WHEELINK_LINK_MODE
//  4. command line flag overrides
package config
