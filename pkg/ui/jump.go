package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// JumpModel is the fuzzy issue picker overlay. Selecting an entry routes
// through the highlight coordinator, same as activating a map marker.
type JumpModel struct {
	all      []model.Issue
	filtered []model.Issue

	searchInput textinput.Model
	selected    int

	width  int
	height int
	theme  Theme

	confirmed bool
	choice    *model.Issue
}

// NewJumpModel creates a jump picker over the current collection.
func NewJumpModel(issues []model.Issue, theme Theme) JumpModel {
	ti := textinput.New()
	ti.Placeholder = "Jump to issue..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return JumpModel{
		all:         issues,
		filtered:    issues,
		searchInput: ti,
		theme:       theme,
		width:       60,
		height:      20,
	}
}

// SetSize updates the overlay dimensions.
func (m *JumpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 50 {
		inputWidth = 50
	}
	m.searchInput.Width = inputWidth
}

// Update handles a key and reports whether it was consumed.
func (m *JumpModel) Update(key string) (handled bool) {
	switch key {
	case "up", "ctrl+k":
		if m.selected > 0 {
			m.selected--
		}
		return true
	case "down", "ctrl+j":
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
		return true
	case "enter":
		if len(m.filtered) > 0 && m.selected < len(m.filtered) {
			choice := m.filtered[m.selected]
			m.choice = &choice
			m.confirmed = true
		}
		return true
	case "esc":
		m.confirmed = false
		m.choice = nil
		return true
	case "backspace":
		if v := m.searchInput.Value(); len(v) > 0 {
			m.searchInput.SetValue(v[:len(v)-1])
			m.filterItems()
		}
		return true
	default:
		if len(key) == 1 {
			m.searchInput.SetValue(m.searchInput.Value() + key)
			m.filterItems()
			return true
		}
	}
	return false
}

func (m *JumpModel) filterItems() {
	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		m.filtered = m.all
		m.selected = 0
		return
	}

	haystack := make([]string, len(m.all))
	for i, issue := range m.all {
		haystack[i] = issue.ID + " " + issue.DisplayLabel()
	}
	matches := fuzzy.Find(query, haystack)

	m.filtered = make([]model.Issue, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.all[match.Index])
	}
	m.selected = 0
}

// IsConfirmed returns true after the user picked an entry.
func (m *JumpModel) IsConfirmed() bool { return m.confirmed }

// Choice returns the picked issue, or nil.
func (m *JumpModel) Choice() *model.Issue { return m.choice }

// View renders the picker overlay centered in the window.
func (m *JumpModel) View() string {
	t := m.theme

	boxWidth := 55
	if m.width < 65 {
		boxWidth = m.width - 10
	}
	if boxWidth < 35 {
		boxWidth = 35
	}
	contentWidth := boxWidth - 4

	var lines []string
	lines = append(lines, t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).
		Render("Jump to Issue"))
	lines = append(lines, "")

	inputStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(contentWidth - 2)
	searchValue := m.searchInput.Value()
	if searchValue == "" {
		searchValue = t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.searchInput.Placeholder)
	}
	lines = append(lines, inputStyle.Render(searchValue))
	lines = append(lines, "")

	maxVisible := m.height - 10
	if maxVisible < 5 {
		maxVisible = 5
	}
	if maxVisible > 12 {
		maxVisible = 12
	}

	if len(m.filtered) == 0 {
		lines = append(lines, t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).
			Render("  No matching issues"))
	} else {
		for i, issue := range m.filtered {
			if i >= maxVisible {
				more := len(m.filtered) - maxVisible
				lines = append(lines, t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).
					Render("  ... and "+strconv.Itoa(more)+" more"))
				break
			}
			lines = append(lines, m.renderRow(issue, i == m.selected, contentWidth))
		}
	}

	lines = append(lines, "")
	lines = append(lines, t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true).
		Render("enter: jump · esc: cancel"))

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *JumpModel) renderRow(issue model.Issue, selected bool, width int) string {
	t := m.theme
	prefix := "  "
	style := t.Base
	if selected {
		prefix = "▸ "
		style = t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	}
	badge := RenderStatusBadge(t, issue.Status)
	label := Truncate(issue.DisplayLabel(), width-12)
	return style.Render(prefix) + badge + " " + style.Render(label)
}
