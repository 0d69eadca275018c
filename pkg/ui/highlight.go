package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldboard/fieldboard/pkg/debug"
)

// highlightDecay is how long the emphasis style lingers after a marker
// activation before fading.
const highlightDecay = 3 * time.Second

// highlightCmd schedules the emphasis decay for an activated issue. The
// expiry handler must tolerate the card having been rebuilt or removed in
// the meantime; clearing by ID makes it a natural no-op.
func highlightCmd(issueID string) tea.Cmd {
	debug.Log("highlight: emphasizing %s for %s", issueID, highlightDecay)
	return tea.Tick(highlightDecay, func(time.Time) tea.Msg {
		return HighlightExpiredMsg{IssueID: issueID}
	})
}
