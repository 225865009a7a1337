package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	PrimaryColor = lipgloss.AdaptiveColor{
		Light: "#007ACC", // Blue
		Dark:  "#3D9EFF",
	}

	SuccessColor = lipgloss.AdaptiveColor{
		Light: "#28A745", // Green
		Dark:  "#4CDD76",
	}

	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}

	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529", // Almost black
		Dark:  "#F8F9FA", // Almost white
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D", // Medium gray
		Dark:  "#ADB5BD",
	}

	PathColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#A0A8B0",
	}
)

// Link mode colors
var (
	CloneColor = lipgloss.AdaptiveColor{
		Light: "#7C3AED", // Violet
		Dark:  "#A78BFA",
	}

	HardlinkColor = lipgloss.AdaptiveColor{
		Light: "#0EA5E9", // Sky blue
		Dark:  "#38BDF8",
	}

	SymlinkColor = lipgloss.AdaptiveColor{
		Light: "#10B981", // Emerald
		Dark:  "#34D399",
	}

	CopyColor = lipgloss.AdaptiveColor{
		Light: "#F59E0B", // Amber
		Dark:  "#FBBF24",
	}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
)

// Operation indicators
const (
	SuccessMark = "✓"
	ErrorMark   = "✗"
	WarningMark = "!"
)

var modeColors = map[string]lipgloss.AdaptiveColor{
	"clone":    CloneColor,
	"hardlink": HardlinkColor,
	"symlink":  SymlinkColor,
	"copy":     CopyColor,
}

// ModeStyle returns the style used to print a link mode name.
func ModeStyle(mode string) lipgloss.Style {
	color, ok := modeColors[mode]
	if !ok {
		return MutedStyle
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// Indent pads s on the left by level steps.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
