package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// Column indices for the kanban board. Order matches model.Statuses.
const (
	ColNew = iota
	ColOpen
	ColWaiting
	ColFixed
	columnCount
)

// statusForColumn maps a column index to the status a drop there means.
func statusForColumn(col int) model.Status {
	return model.Statuses[col]
}

// columnForStatus maps a status to its column; unrecognized values land in
// NEW, same as the server's own mapping.
func columnForStatus(s model.Status) int {
	switch s.Normalize() {
	case model.StatusOpen:
		return ColOpen
	case model.StatusWaiting:
		return ColWaiting
	case model.StatusFixed:
		return ColFixed
	default:
		return ColNew
	}
}

// Drop describes a completed grab-and-move gesture: the card, where it came
// from, and the status its destination column implies.
type Drop struct {
	IssueID string
	From    model.Status
	To      model.Status
}

// BoardModel is the kanban view: exactly four columns, cleared and rebuilt
// from the full collection on every change. Cards move between columns
// through the grab gesture; the local placement is optimistic and the store
// reload after a confirmed PATCH is the source of truth.
type BoardModel struct {
	columns     [columnCount][]model.Issue
	focusedCol  int
	selectedRow [columnCount]int

	// Grab state: liftedFrom is only meaningful while lifted.
	lifted     bool
	liftedFrom int

	emphasizedID string
	theme        Theme
	width        int
	height       int
}

// NewBoardModel creates an empty board.
func NewBoardModel(theme Theme) BoardModel {
	return BoardModel{theme: theme}
}

// SetIssues clears and rebuilds all four columns. A rebuild destroys every
// card, so any in-flight grab or emphasis is dropped with it.
func (b *BoardModel) SetIssues(issues []model.Issue) {
	for i := range b.columns {
		b.columns[i] = nil
	}
	for _, issue := range issues {
		col := columnForStatus(issue.Status)
		b.columns[col] = append(b.columns[col], issue)
	}

	b.lifted = false
	b.emphasizedID = ""
	for i := range b.selectedRow {
		if b.selectedRow[i] >= len(b.columns[i]) {
			b.selectedRow[i] = max(0, len(b.columns[i])-1)
		}
	}
}

// ColumnCount returns how many cards a column holds.
func (b *BoardModel) ColumnCount(col int) int {
	return len(b.columns[col])
}

// ColumnIssues returns the cards in a column, top to bottom.
func (b *BoardModel) ColumnIssues(col int) []model.Issue {
	return b.columns[col]
}

// Selected returns the card under the cursor.
func (b *BoardModel) Selected() (model.Issue, bool) {
	col := b.columns[b.focusedCol]
	if len(col) == 0 {
		return model.Issue{}, false
	}
	return col[b.selectedRow[b.focusedCol]], true
}

// Lifted reports whether a card is currently grabbed.
func (b *BoardModel) Lifted() bool { return b.lifted }

// SetSize updates the board dimensions.
func (b *BoardModel) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Grab lifts the selected card so column moves carry it.
func (b *BoardModel) Grab() bool {
	if _, ok := b.Selected(); !ok {
		return false
	}
	b.lifted = true
	b.liftedFrom = b.focusedCol
	return true
}

// Release drops the lifted card where it sits. The returned Drop is only
// meaningful (ok) when the card actually changed columns; dropping back
// into the origin column is a cancelled gesture, not a mutation.
func (b *BoardModel) Release() (Drop, bool) {
	if !b.lifted {
		return Drop{}, false
	}
	b.lifted = false

	issue, ok := b.Selected()
	if !ok || b.focusedCol == b.liftedFrom {
		return Drop{}, false
	}
	return Drop{
		IssueID: issue.ID,
		From:    statusForColumn(b.liftedFrom),
		To:      statusForColumn(b.focusedCol),
	}, true
}

// Cancel aborts a grab, restoring the card to its origin column.
func (b *BoardModel) Cancel() {
	if !b.lifted {
		return
	}
	if b.focusedCol != b.liftedFrom {
		b.moveLifted(b.liftedFrom)
	}
	b.lifted = false
}

// moveLifted re-parents the grabbed card into the destination column. This
// is the optimistic local placement; the server-confirmed grouping arrives
// with the next reload.
func (b *BoardModel) moveLifted(dest int) {
	src := b.focusedCol
	row := b.selectedRow[src]
	issue := b.columns[src][row]

	b.columns[src] = append(b.columns[src][:row], b.columns[src][row+1:]...)
	if b.selectedRow[src] >= len(b.columns[src]) {
		b.selectedRow[src] = max(0, len(b.columns[src])-1)
	}

	b.columns[dest] = append(b.columns[dest], issue)
	b.focusedCol = dest
	b.selectedRow[dest] = len(b.columns[dest]) - 1
}

// MoveToTopOfOpen relocates the card with the given ID to the top of the
// OPEN column and emphasizes it. Returns false, touching nothing, when the
// ID is not on the board.
func (b *BoardModel) MoveToTopOfOpen(issueID string) bool {
	for col := range b.columns {
		for row, issue := range b.columns[col] {
			if issue.ID != issueID {
				continue
			}
			b.columns[col] = append(b.columns[col][:row], b.columns[col][row+1:]...)
			if b.selectedRow[col] >= len(b.columns[col]) {
				b.selectedRow[col] = max(0, len(b.columns[col])-1)
			}
			b.columns[ColOpen] = append([]model.Issue{issue}, b.columns[ColOpen]...)
			b.focusedCol = ColOpen
			b.selectedRow[ColOpen] = 0
			b.emphasizedID = issueID
			return true
		}
	}
	return false
}

// ClearEmphasis removes the highlight emphasis if it is still on the given
// card; tolerates the card being long gone.
func (b *BoardModel) ClearEmphasis(issueID string) {
	if b.emphasizedID == issueID {
		b.emphasizedID = ""
	}
}

// HasIssue reports whether a card with the given ID is rendered anywhere on
// the board.
func (b *BoardModel) HasIssue(issueID string) bool {
	for col := range b.columns {
		for _, issue := range b.columns[col] {
			if issue.ID == issueID {
				return true
			}
		}
	}
	return false
}

// Update handles board navigation and the grab gesture's column moves.
// Grab/drop/cancel themselves are routed by the root model so it can issue
// the PATCH command.
func (b BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch key.String() {
	case "h", "left":
		dest := b.focusedCol - 1
		if dest < 0 {
			break
		}
		if b.lifted {
			b.moveLifted(dest)
		} else {
			b.focusedCol = dest
		}
	case "l", "right":
		dest := b.focusedCol + 1
		if dest >= columnCount {
			break
		}
		if b.lifted {
			b.moveLifted(dest)
		} else {
			b.focusedCol = dest
		}
	case "j", "down":
		// Row navigation is suspended while a card is grabbed so the
		// gesture cannot switch to a different card mid-carry.
		if b.lifted {
			break
		}
		if n := len(b.columns[b.focusedCol]); n > 0 && b.selectedRow[b.focusedCol] < n-1 {
			b.selectedRow[b.focusedCol]++
		}
	case "k", "up":
		if b.lifted {
			break
		}
		if b.selectedRow[b.focusedCol] > 0 {
			b.selectedRow[b.focusedCol]--
		}
	case "g":
		if b.lifted {
			break
		}
		b.selectedRow[b.focusedCol] = 0
	case "G":
		if b.lifted {
			break
		}
		b.selectedRow[b.focusedCol] = max(0, len(b.columns[b.focusedCol])-1)
	}
	return b, nil
}

var columnTitles = [columnCount]string{"NEW", "OPEN", "WAITING", "FIXED"}

// View renders the four columns side by side.
func (b BoardModel) View() string {
	if b.width < 20 {
		return ""
	}
	colWidth := b.width/columnCount - 2
	colHeight := b.height - 2

	rendered := make([]string, columnCount)
	for col := 0; col < columnCount; col++ {
		rendered[col] = b.renderColumn(col, colWidth, colHeight)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (b BoardModel) renderColumn(col, width, height int) string {
	t := b.theme
	statusColor := t.StatusColor(string(statusForColumn(col)))

	title := t.Renderer.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(fmt.Sprintf("%s (%d)", columnTitles[col], len(b.columns[col])))

	var rows []string
	rows = append(rows, title)
	for row, issue := range b.columns[col] {
		rows = append(rows, b.renderCard(issue, col, row, width-2))
	}

	style := PanelStyle
	if col == b.focusedCol {
		style = FocusedPanelStyle
	}
	return style.Width(width).Height(height).Render(strings.Join(rows, "\n"))
}

func (b BoardModel) renderCard(issue model.Issue, col, row, width int) string {
	t := b.theme
	label := Truncate(issue.DisplayLabel(), width-2)

	style := t.Base
	prefix := "  "
	selected := col == b.focusedCol && row == b.selectedRow[col]
	switch {
	case issue.ID == b.emphasizedID:
		style = t.Emphasis
		prefix = "▌ "
	case selected && b.lifted:
		// The card in motion.
		style = t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Italic(true)
		prefix = "≡ "
	case selected:
		style = t.Selected
		prefix = "> "
	}
	return style.Render(prefix + label)
}
