package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// ListPane is the "Reported Issues" list on the dashboard. Every collection
// change rebuilds all rows from scratch; no row survives a rebuild by
// mutation.
type ListPane struct {
	list         list.Model
	theme        Theme
	emphasizedID string
	count        int
}

// NewListPane creates an empty list pane.
func NewListPane(theme Theme) ListPane {
	d := IssueDelegate{Theme: theme}
	l := list.New(nil, d, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Title = "Reported Issues (0)"
	return ListPane{list: l, theme: theme}
}

// SetIssues rebuilds the pane from the full collection, in collection
// order, and updates the visible total count.
func (p *ListPane) SetIssues(issues []model.Issue) {
	items := make([]list.Item, len(issues))
	for i, issue := range issues {
		items[i] = IssueItem{Issue: issue}
	}
	p.count = len(issues)
	p.list.SetItems(items)
	p.list.Title = fmt.Sprintf("Reported Issues (%d)", p.count)
	// A rebuild destroys any lingering emphasis; the decay timer becomes
	// a no-op when it fires.
	p.setEmphasis("")
}

// Count returns the displayed collection size.
func (p *ListPane) Count() int { return p.count }

// SetSize updates the pane dimensions.
func (p *ListPane) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

// Selected returns the issue under the cursor.
func (p *ListPane) Selected() (model.Issue, bool) {
	item, ok := p.list.SelectedItem().(IssueItem)
	if !ok {
		return model.Issue{}, false
	}
	return item.Issue, true
}

// MoveToFront relocates the card with the given ID to the top of the list,
// selects it (the scroll-into-view equivalent), and applies the emphasis
// style. Returns false without mutating anything when the ID is not
// currently rendered.
func (p *ListPane) MoveToFront(issueID string) bool {
	items := p.list.Items()
	at := -1
	for i, it := range items {
		if ii, ok := it.(IssueItem); ok && ii.Issue.ID == issueID {
			at = i
			break
		}
	}
	if at == -1 {
		return false
	}

	moved := items[at]
	reordered := make([]list.Item, 0, len(items))
	reordered = append(reordered, moved)
	reordered = append(reordered, items[:at]...)
	reordered = append(reordered, items[at+1:]...)
	p.list.SetItems(reordered)
	p.list.Select(0)
	p.setEmphasis(issueID)
	return true
}

// ClearEmphasis removes the highlight emphasis if it is still on the given
// card; a no-op otherwise (the card may have been rebuilt away).
func (p *ListPane) ClearEmphasis(issueID string) {
	if p.emphasizedID == issueID {
		p.setEmphasis("")
	}
}

func (p *ListPane) setEmphasis(issueID string) {
	p.emphasizedID = issueID
	p.list.SetDelegate(IssueDelegate{Theme: p.theme, EmphasizedID: issueID})
}

// Update forwards navigation keys to the underlying list.
func (p ListPane) Update(msg tea.Msg) (ListPane, tea.Cmd) {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the pane.
func (p ListPane) View() string {
	return p.list.View()
}
