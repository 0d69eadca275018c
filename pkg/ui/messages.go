package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/config"
	"github.com/fieldboard/fieldboard/pkg/model"
)

// ResponsesLoadedMsg carries an issue's fetched history. IssueID lets the
// modal drop results that arrive after it moved on to another issue.
type ResponsesLoadedMsg struct {
	IssueID string
	Entries []model.ResponseEntry
}

// ResponsesErrorMsg reports a failed history fetch.
type ResponsesErrorMsg struct {
	IssueID string
	Err     error
}

// StatusUpdatedMsg reports a confirmed status mutation; the root model
// reacts by reloading the store so server-confirmed grouping wins.
type StatusUpdatedMsg struct {
	IssueID string
	From    model.Status
	To      model.Status
	Updated model.Issue
}

// StatusUpdateErrorMsg reports a failed status mutation. The optimistic
// board placement stays; the error is logged and journaled.
type StatusUpdateErrorMsg struct {
	IssueID string
	From    model.Status
	To      model.Status
	Err     error
}

// HighlightExpiredMsg clears a highlight emphasis after its decay window.
// Handling it must tolerate the card having been rebuilt or removed.
type HighlightExpiredMsg struct {
	IssueID string
}

// RefreshTickMsg drives the optional periodic background reload.
type RefreshTickMsg struct{}

// ConfigReloadedMsg delivers a re-read configuration from the file watcher.
type ConfigReloadedMsg struct {
	Config config.Config
}

// fetchResponsesCmd asynchronously fetches one issue's history.
func fetchResponsesCmd(client *api.Client, issueID string) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.FetchResponses(context.Background(), issueID)
		if err != nil {
			return ResponsesErrorMsg{IssueID: issueID, Err: err}
		}
		return ResponsesLoadedMsg{IssueID: issueID, Entries: entries}
	}
}

// updateStatusCmd asynchronously issues the PATCH for a board drop.
func updateStatusCmd(client *api.Client, issueID string, from, to model.Status) tea.Cmd {
	return func() tea.Msg {
		updated, err := client.UpdateIssueStatus(context.Background(), issueID, to)
		if err != nil {
			return StatusUpdateErrorMsg{IssueID: issueID, From: from, To: to, Err: err}
		}
		return StatusUpdatedMsg{IssueID: issueID, From: from, To: to, Updated: updated}
	}
}

// refreshTickCmd schedules the next periodic reload.
func refreshTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return RefreshTickMsg{}
	})
}
