package types

import (
	"fmt"
	"runtime"
	"strings"
)

// LinkMode selects how files are placed from an unpacked wheel into the
// installation directory.
type LinkMode int

const (
	// LinkModeClone duplicates files copy-on-write (clonefile on macOS, FICLONE on Linux).
	LinkModeClone LinkMode = iota
	// LinkModeCopy copies every byte.
	LinkModeCopy
	// LinkModeHardlink hard links files from the wheel.
	LinkModeHardlink
	// LinkModeSymlink symbolically links files from the wheel. The installed files
	// depend on the wheel staying where it is.
	LinkModeSymlink
)

var linkModeNames = map[LinkMode]string{
	LinkModeClone:    "clone",
	LinkModeCopy:     "copy",
	LinkModeHardlink: "hardlink",
	LinkModeSymlink:  "symlink",
}

// AllLinkModes lists the link modes in declaration order.
func AllLinkModes() []LinkMode {
	return []LinkMode{LinkModeClone, LinkModeCopy, LinkModeHardlink, LinkModeSymlink}
}

// DefaultLinkMode returns the compiled-in default for the running platform:
// clone where copy-on-write filesystems are the norm, hardlink elsewhere.
func DefaultLinkMode() LinkMode {
	return defaultLinkModeFor(runtime.GOOS)
}

func defaultLinkModeFor(goos string) LinkMode {
	switch goos {
	case "darwin", "ios":
		return LinkModeClone
	default:
		return LinkModeHardlink
	}
}

// SelectLinkMode returns the explicitly configured mode, or the platform
// default when none was configured.
func SelectLinkMode(configured *LinkMode) LinkMode {
	if configured != nil {
		return *configured
	}
	return DefaultLinkMode()
}

// ParseLinkMode parses a kebab-case link mode name.
func ParseLinkMode(s string) (LinkMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range linkModeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown link mode %q (expected one of clone, copy, hardlink, symlink)", s)
}

func (m LinkMode) String() string {
	if name, ok := linkModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("LinkMode(%d)", int(m))
}

// IsSymlink reports whether the mode is LinkModeSymlink.
func (m LinkMode) IsSymlink() bool {
	return m == LinkModeSymlink
}

// MarshalText implements encoding.TextMarshaler.
func (m LinkMode) MarshalText() ([]byte, error) {
	name, ok := linkModeNames[m]
	if !ok {
		return nil, fmt.Errorf("invalid link mode %d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *LinkMode) UnmarshalText(text []byte) error {
	parsed, err := ParseLinkMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
