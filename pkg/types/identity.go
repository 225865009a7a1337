package types

import "fmt"

// Identity names an installed package. It is only used in diagnostics,
// never for control flow.
type Identity struct {
	Name    string `json:"name" toml:"name" yaml:"name"`
	Version string `json:"version" toml:"version" yaml:"version"`
}

// String renders the identity as name==version.
func (i Identity) String() string {
	if i.Version == "" {
		return i.Name
	}
	return fmt.Sprintf("%s==%s", i.Name, i.Version)
}

// DisplayVersion renders the version with a leading v.
func (i Identity) DisplayVersion() string {
	return "v" + i.Version
}
