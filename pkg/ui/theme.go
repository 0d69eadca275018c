package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the colors and pre-computed styles every view shares.
// Adaptive colors keep light terminals readable without a second palette.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Board columns
	New     lipgloss.AdaptiveColor
	Open    lipgloss.AdaptiveColor
	Waiting lipgloss.AdaptiveColor
	Fixed   lipgloss.AdaptiveColor

	// Severity
	SevHigh   lipgloss.AdaptiveColor
	SevMedium lipgloss.AdaptiveColor
	SevLow    lipgloss.AdaptiveColor

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Emphasis is the transient highlight applied by the cross-view
	// highlight coordinator.
	Emphasis lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		New:     lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan - just reported
		Open:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green - acknowledged
		Waiting: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange - pending action
		Fixed:   lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray - resolved

		SevHigh:   lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
		SevMedium: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		SevLow:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})
	t.Selected = r.NewStyle().Background(t.Highlight).Bold(true)
	t.Header = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Emphasis = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#282A36"}).
		Background(lipgloss.AdaptiveColor{Light: "#FFE9A8", Dark: "#F1FA8C"}).
		Bold(true)

	return t
}

// StatusColor returns the theme color for a (normalized) status.
func (t Theme) StatusColor(s string) lipgloss.AdaptiveColor {
	switch s {
	case "open":
		return t.Open
	case "waiting":
		return t.Waiting
	case "fixed":
		return t.Fixed
	default:
		return t.New
	}
}

// SeverityColor returns the theme color for a severity value. Unknown
// severities render muted rather than alarming.
func (t Theme) SeverityColor(s string) lipgloss.AdaptiveColor {
	switch s {
	case "high", "critical", "severe":
		return t.SevHigh
	case "medium", "moderate":
		return t.SevMedium
	case "low", "minor":
		return t.SevLow
	default:
		return t.Muted
	}
}
