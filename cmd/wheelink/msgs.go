package wheelink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link unpacked Python wheels into site-packages"
	MsgInstallShort    = "Install every package of an install plan"
	MsgLinkShort       = "Link a single unpacked wheel"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "wheelink version %s\n  commit: %s\n  built:  %s\n"
	MsgProgressTitle = "Linking packages"

	// Error messages
	MsgErrNoDestination = "no destination: pass --dest or set destination in the plan"
	MsgErrNoCommand     = "no command specified"
	MsgErrOutputFormat  = "invalid --output: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default $XDG_CONFIG_HOME/wheelink/config.toml)"
	MsgFlagLinkMode   = "Link mode: clone, copy, hardlink or symlink (default: platform)"
	MsgFlagPreview    = "Enable a preview feature (repeatable)"
	MsgFlagNoWarnings = "Do not show fallback and module conflict warnings"
	MsgFlagDest       = "Destination directory (site-packages)"
	MsgFlagJobs       = "Packages linked in parallel (default: one per CPU)"
	MsgFlagOutput     = "Report format: auto, term, text, json or xml"
	MsgFlagName       = "Package name (default: source directory name)"
	MsgFlagVersion    = "Package version"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)
)
