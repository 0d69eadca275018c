package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/config"
	"github.com/fieldboard/fieldboard/pkg/debug"
	"github.com/fieldboard/fieldboard/pkg/journal"
	"github.com/fieldboard/fieldboard/pkg/store"
)

// Page identifies the active top-level view.
type Page int

const (
	PageDashboard Page = iota
	PageBoard
	PageStats
)

// dashboard pane focus
type focusPane int

const (
	focusList focusPane = iota
	focusMap
)

// Model is the root application model. It owns the store, routes keys to
// whichever page or overlay is active, and fans collection changes out to
// every view so they stay synchronized.
type Model struct {
	store   *store.Store
	client  *api.Client
	journal *journal.Journal
	cfg     config.Config

	theme Theme
	page  Page
	focus focusPane

	listPane ListPane
	mapView  MapView
	board    BoardModel
	stats    StatsModel
	modal    Modal
	help     HelpOverlayModel

	// Overlays; nil when closed.
	filter *FilterForm
	jump   *JumpModel

	width      int
	height     int
	statusLine string
}

// New builds the root model. jrnl may be nil when journaling is disabled.
func New(client *api.Client, st *store.Store, jrnl *journal.Journal, cfg config.Config) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	return Model{
		store:    st,
		client:   client,
		journal:  jrnl,
		cfg:      cfg,
		theme:    theme,
		listPane: NewListPane(theme),
		mapView:  NewMapView(theme),
		board:    NewBoardModel(theme),
		stats:    NewStatsModel(theme),
		modal:    NewModal(client, theme),
		help:     NewHelpOverlayModel(theme),
	}
}

// Init kicks off the first fetch and, when configured, the refresh ticker.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.store.Reload()}
	if m.cfg.RefreshInterval > 0 {
		cmds = append(cmds, refreshTickCmd(m.cfg.RefreshInterval.Std()))
	}
	return tea.Batch(cmds...)
}

// applyIssues fans the accepted collection out to every view.
func (m *Model) applyIssues() {
	issues := m.store.Issues()
	m.listPane.SetIssues(issues)
	m.mapView.SetIssues(issues)
	m.board.SetIssues(issues)
	m.stats.SetIssues(issues)
	m.modal.SyncIssue(issues)
	m.statusLine = fmt.Sprintf("%d issues", len(issues))
}

// activateHighlight brings an issue to the front of the list and open
// column, emphasizes it, and schedules the decay. Unknown IDs are a no-op.
func (m *Model) activateHighlight(issueID string) tea.Cmd {
	inList := m.listPane.MoveToFront(issueID)
	onBoard := m.board.MoveToTopOfOpen(issueID)
	if !inList && !onBoard {
		debug.Log("highlight: %s not in any view, ignoring", issueID)
		return nil
	}
	return highlightCmd(issueID)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case store.IssuesLoadedMsg:
		if m.store.Accept(msg) {
			m.applyIssues()
		}
		return m, nil

	case store.IssuesErrorMsg:
		if !m.store.Stale(msg) {
			debug.Log("fetch failed: %v", msg.Err)
			m.statusLine = "fetch failed: " + msg.Err.Error()
		}
		return m, nil

	case ResponsesLoadedMsg, ResponsesErrorMsg:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd

	case StatusUpdatedMsg:
		if m.journal != nil {
			if err := m.journal.Record(msg.IssueID, msg.From, msg.To, true); err != nil {
				debug.Log("journal: %v", err)
			}
		}
		m.statusLine = fmt.Sprintf("%s moved to %s", msg.IssueID, msg.To)
		// Server-confirmed grouping replaces the optimistic placement.
		return m, m.store.Reload()

	case StatusUpdateErrorMsg:
		if m.journal != nil {
			if err := m.journal.Record(msg.IssueID, msg.From, msg.To, false); err != nil {
				debug.Log("journal: %v", err)
			}
		}
		debug.Log("status update failed for %s: %v", msg.IssueID, msg.Err)
		// The optimistic placement stays until the next reload.
		m.statusLine = fmt.Sprintf("update failed for %s: %v", msg.IssueID, msg.Err)
		return m, nil

	case HighlightExpiredMsg:
		m.listPane.ClearEmphasis(msg.IssueID)
		m.board.ClearEmphasis(msg.IssueID)
		return m, nil

	case RefreshTickMsg:
		cmds := []tea.Cmd{m.store.Reload()}
		if m.cfg.RefreshInterval > 0 {
			cmds = append(cmds, refreshTickCmd(m.cfg.RefreshInterval.Std()))
		}
		return m, tea.Batch(cmds...)

	case ConfigReloadedMsg:
		hadTicker := m.cfg.RefreshInterval > 0
		m.cfg = msg.Config
		m.statusLine = "configuration reloaded"
		if !hadTicker && m.cfg.RefreshInterval > 0 {
			return m, refreshTickCmd(m.cfg.RefreshInterval.Std())
		}
		return m, nil

	case FilterApplyMsg:
		m.filter = nil
		return m, m.store.SetFiltersAndReload(msg.Criteria)

	case FilterCancelMsg:
		m.filter = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.filter != nil {
		cmd, _ := m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays swallow input while open, topmost first.
	if m.help.IsVisible() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(key)
		return m, cmd
	}
	if m.filter != nil {
		cmd, _ := m.filter.Update(key)
		return m, cmd
	}
	if m.jump != nil {
		return m.handleJumpKey(key)
	}
	if m.modal.IsOpen() {
		switch key.String() {
		case "esc", "q", "enter":
			m.modal.Close()
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(key)
		return m, cmd
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.help.Show()
		return m, nil
	case "1":
		m.page = PageDashboard
		return m, nil
	case "2":
		m.page = PageBoard
		return m, nil
	case "3":
		m.page = PageStats
		return m, nil
	case "f":
		f := NewFilterForm(m.store.Filters(), m.theme)
		f.SetSize(m.width, m.height)
		m.filter = f
		return m, f.Init()
	case "F":
		m.statusLine = "filters cleared"
		return m, m.store.ResetFilters()
	case "r":
		m.statusLine = "reloading"
		return m, m.store.Reload()
	case "/":
		j := NewJumpModel(m.store.Issues(), m.theme)
		j.SetSize(m.width, m.height)
		m.jump = &j
		return m, nil
	case "y":
		cmd := m.yankSelected()
		return m, cmd
	}

	switch m.page {
	case PageDashboard:
		return m.handleDashboardKey(key)
	case PageBoard:
		return m.handleBoardKey(key)
	}
	return m, nil
}

func (m Model) handleJumpKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.jump.Update(key.String())
	if m.jump.IsConfirmed() {
		choice := m.jump.Choice()
		m.jump = nil
		if choice != nil {
			return m, m.activateHighlight(choice.ID)
		}
		return m, nil
	}
	if key.String() == "esc" {
		m.jump = nil
	}
	return m, nil
}

func (m Model) handleDashboardKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "tab":
		if m.focus == focusList {
			m.focus = focusMap
		} else {
			m.focus = focusList
		}
		m.mapView.SetFocused(m.focus == focusMap)
		return m, nil
	case "enter":
		if m.focus == focusMap {
			if marker, ok := m.mapView.Selected(); ok {
				return m, m.activateHighlight(marker.ID)
			}
			return m, nil
		}
		if issue, ok := m.listPane.Selected(); ok {
			return m, m.modal.Open(issue)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusMap {
		m.mapView, cmd = m.mapView.Update(key)
	} else {
		m.listPane, cmd = m.listPane.Update(key)
	}
	return m, cmd
}

func (m Model) handleBoardKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case " ":
		if !m.board.Lifted() {
			m.board.Grab()
			return m, nil
		}
		drop, ok := m.board.Release()
		if !ok {
			return m, nil
		}
		m.statusLine = fmt.Sprintf("moving %s to %s", drop.IssueID, drop.To)
		return m, updateStatusCmd(m.client, drop.IssueID, drop.From, drop.To)
	case "esc":
		m.board.Cancel()
		return m, nil
	case "enter":
		if m.board.Lifted() {
			return m, nil
		}
		if issue, ok := m.board.Selected(); ok {
			return m, m.modal.Open(issue)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(key)
	return m, cmd
}

// yankSelected copies the focused issue's ID to the system clipboard.
func (m *Model) yankSelected() tea.Cmd {
	var id string
	switch m.page {
	case PageBoard:
		if issue, ok := m.board.Selected(); ok {
			id = issue.ID
		}
	case PageDashboard:
		if m.focus == focusMap {
			if issue, ok := m.mapView.Selected(); ok {
				id = issue.ID
			}
		} else if issue, ok := m.listPane.Selected(); ok {
			id = issue.ID
		}
	}
	if id == "" {
		return nil
	}
	if err := clipboard.WriteAll(id); err != nil {
		debug.Log("clipboard: %v", err)
		m.statusLine = "clipboard unavailable"
		return nil
	}
	m.statusLine = "copied " + id
	return nil
}

func (m *Model) resize() {
	contentH := m.height - 2
	half := m.width / 2

	m.listPane.SetSize(half-2, contentH)
	m.mapView.SetSize(m.width-half-2, contentH)
	m.board.SetSize(m.width, contentH)
	m.stats.SetSize(m.width, contentH)
	m.modal.SetSize(m.width, m.height)
	m.help.SetSize(m.width, m.height)
	if m.filter != nil {
		m.filter.SetSize(m.width, m.height)
	}
	if m.jump != nil {
		m.jump.SetSize(m.width, m.height)
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	switch {
	case m.help.IsVisible():
		return m.help.View()
	case m.filter != nil:
		return m.filter.View()
	case m.jump != nil:
		return m.jump.View()
	case m.modal.IsOpen():
		return m.modal.View()
	}

	var body string
	switch m.page {
	case PageDashboard:
		listBox := PanelStyle
		mapBox := FocusedPanelStyle
		if m.focus == focusList {
			listBox, mapBox = FocusedPanelStyle, PanelStyle
		}
		half := m.width / 2
		contentH := m.height - 4
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			listBox.Width(half-2).Height(contentH).Render(m.listPane.View()),
			mapBox.Width(m.width-half-2).Height(contentH).Render(m.mapView.View()),
		)
	case PageBoard:
		body = m.board.View()
	case PageStats:
		body = m.stats.View()
	}

	return body + "\n" + m.renderStatusBar()
}

func (m Model) renderStatusBar() string {
	t := m.theme
	pages := [3]string{"1 dashboard", "2 board", "3 stats"}
	var tabs string
	for i, label := range pages {
		style := t.Renderer.NewStyle().Foreground(t.Muted)
		if Page(i) == m.page {
			style = t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
		}
		tabs += style.Render(label) + "  "
	}

	filters := ""
	if !m.store.Filters().IsZero() {
		filters = t.Renderer.NewStyle().Foreground(t.Waiting).Render("[filtered] ")
	}

	status := t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.statusLine)
	line := tabs + filters + status
	return Truncate(line, m.width)
}
