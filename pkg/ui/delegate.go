package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IssueDelegate renders one issue per row: severity, status, label, age.
type IssueDelegate struct {
	Theme Theme

	// EmphasizedID marks the card the highlight coordinator is currently
	// emphasizing; empty means none.
	EmphasizedID string
}

func (d IssueDelegate) Height() int {
	return 1
}

func (d IssueDelegate) Spacing() int {
	return 0
}

func (d IssueDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d IssueDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(IssueItem)
	if !ok {
		return
	}
	t := d.Theme

	sev := RenderSeverityBadge(t, i.Issue.Severity)
	status := RenderStatusBadge(t, i.Issue.Status)

	age := "   ?"
	if created, ok := i.Issue.CreatedTime(); ok {
		age = fmt.Sprintf("%4s", FormatTimeRel(created))
	}
	ageCol := t.Renderer.NewStyle().Foreground(t.Muted).Render(age)

	attach := " "
	if i.Issue.HasImage() {
		attach = "IMG"
	}
	attachCol := t.Renderer.NewStyle().Foreground(t.Secondary).Width(4).Render(attach)

	// Fixed widths: severity(5) + status(4) + age(4) + attachment(4) + gaps.
	fixedWidth := 5 + 4 + 4 + 4 + 8
	availableWidth := m.Width() - fixedWidth - 4
	if availableWidth < 10 {
		availableWidth = 10
	}

	titleStyle := t.Renderer.NewStyle().Width(availableWidth).MaxWidth(availableWidth)
	switch {
	case i.Issue.ID == d.EmphasizedID:
		titleStyle = t.Emphasis.Width(availableWidth).MaxWidth(availableWidth)
	case index == m.Index():
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	}
	title := titleStyle.Render(Truncate(i.Issue.DisplayLabel(), availableWidth))

	row := lipgloss.JoinHorizontal(lipgloss.Left,
		sev, " ", status, " ", title, " ", attachCol, ageCol,
	)

	var baseStyle lipgloss.Style
	if index == m.Index() {
		baseStyle = t.Selected
	} else {
		baseStyle = t.Base
	}
	fmt.Fprint(w, baseStyle.Render(row))
}
