package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#44475A"))

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#BD93F9"))
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderStatusBadge returns a styled board-column badge for a status.
func RenderStatusBadge(t Theme, s model.Status) string {
	var label string
	switch s.Normalize() {
	case model.StatusOpen:
		label = "OPEN"
	case model.StatusWaiting:
		label = "WAIT"
	case model.StatusFixed:
		label = "FIXD"
	default:
		label = "NEW "
	}
	return t.Renderer.NewStyle().
		Foreground(t.StatusColor(string(s.Normalize()))).
		Bold(true).
		Render(label)
}

// RenderSeverityBadge returns a styled severity badge; unknown severities
// render a muted placeholder.
func RenderSeverityBadge(t Theme, severity string) string {
	label := "  ?  "
	switch strings.ToLower(severity) {
	case "high", "critical", "severe":
		label = "HIGH "
	case "medium", "moderate":
		label = "MED  "
	case "low", "minor":
		label = "LOW  "
	}
	return t.Renderer.NewStyle().
		Foreground(t.SeverityColor(strings.ToLower(severity))).
		Render(label)
}

// MarkerRune returns the map glyph for a marker.
func MarkerRune(selected bool) string {
	if selected {
		return "◎"
	}
	return "●"
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	// Choose color based on value
	var barColor lipgloss.AdaptiveColor
	if value >= 0.75 {
		barColor = t.Open
	} else if value >= 0.5 {
		barColor = t.Waiting
	} else if value >= 0.25 {
		barColor = t.New
	} else {
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}
