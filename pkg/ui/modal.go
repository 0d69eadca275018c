package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/debug"
	"github.com/fieldboard/fieldboard/pkg/model"
)

// Modal is the issue detail overlay. It holds the issue whose static fields
// it renders plus the asynchronously fetched history carousel. Opening a new
// issue resets the carousel; history that arrives for a previously opened
// issue is dropped by ID.
type Modal struct {
	open    bool
	issue   model.Issue
	client  *api.Client
	theme   Theme
	width   int
	height  int
	descMD  string
	descErr bool

	// Carousel state. loading is true between open and the first
	// ResponsesLoadedMsg or ResponsesErrorMsg for this issue.
	slides  []model.ResponseEntry
	slide   int
	loading bool
	histErr error
}

// NewModal creates a closed modal.
func NewModal(client *api.Client, theme Theme) Modal {
	return Modal{client: client, theme: theme}
}

// IsOpen reports whether the overlay is showing.
func (m *Modal) IsOpen() bool { return m.open }

// IssueID returns the ID of the issue being shown, or "" when closed.
func (m *Modal) IssueID() string {
	if !m.open {
		return ""
	}
	return m.issue.ID
}

// Open shows the overlay for an issue and kicks off the history fetch. Any
// carousel state from a previous issue is discarded.
func (m *Modal) Open(issue model.Issue) tea.Cmd {
	m.open = true
	m.issue = issue
	m.slides = nil
	m.slide = 0
	m.loading = true
	m.histErr = nil
	m.renderDescription()
	return fetchResponsesCmd(m.client, issue.ID)
}

// Close hides the overlay and discards all per-issue state.
func (m *Modal) Close() {
	m.open = false
	m.issue = model.Issue{}
	m.slides = nil
	m.slide = 0
	m.loading = false
	m.histErr = nil
}

// SyncIssue refreshes the static fields from a newer copy of the held
// issue, e.g. after a background reload. The carousel is untouched.
func (m *Modal) SyncIssue(issues []model.Issue) {
	if !m.open {
		return
	}
	for _, issue := range issues {
		if issue.ID == m.issue.ID {
			m.issue = issue
			m.renderDescription()
			return
		}
	}
}

// SetSize updates the overlay dimensions.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.open {
		m.renderDescription()
	}
}

func (m *Modal) renderDescription() {
	m.descErr = false
	w := m.contentWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		m.descErr = true
		m.descMD = m.issue.DisplayDescription()
		return
	}
	out, err := r.Render(m.issue.DisplayDescription())
	if err != nil {
		m.descErr = true
		m.descMD = m.issue.DisplayDescription()
		return
	}
	m.descMD = strings.TrimRight(out, "\n")
}

func (m *Modal) contentWidth() int {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	if w > 90 {
		w = 90
	}
	return w
}

// SlideCount returns the number of history slides.
func (m *Modal) SlideCount() int { return len(m.slides) }

// SlideIndex returns the current slide position.
func (m *Modal) SlideIndex() int { return m.slide }

// Next advances the carousel one slide, wrapping past the end.
func (m *Modal) Next() {
	if len(m.slides) > 1 {
		m.slide = (m.slide + 1) % len(m.slides)
	}
}

// Prev steps the carousel back one slide, wrapping before the start.
func (m *Modal) Prev() {
	if len(m.slides) > 1 {
		m.slide = (m.slide - 1 + len(m.slides)) % len(m.slides)
	}
}

// Update consumes carousel navigation keys and history results.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case ResponsesLoadedMsg:
		if !m.open || msg.IssueID != m.issue.ID {
			debug.Log("modal: dropping stale history for %s", msg.IssueID)
			return m, nil
		}
		m.loading = false
		m.slides = msg.Entries
		m.slide = 0
	case ResponsesErrorMsg:
		if !m.open || msg.IssueID != m.issue.ID {
			return m, nil
		}
		m.loading = false
		m.histErr = msg.Err
	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		switch msg.String() {
		case "l", "right", "n", "tab":
			m.Next()
		case "h", "left", "p", "shift+tab":
			m.Prev()
		}
	}
	return m, nil
}

// View renders the overlay centered in the window.
func (m Modal) View() string {
	if !m.open {
		return ""
	}
	t := m.theme
	w := m.contentWidth()

	var b strings.Builder

	title := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).
		Render(Truncate(m.issue.DisplayLabel(), w))
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		RenderStatusBadge(t, m.issue.Status),
		" ",
		RenderSeverityBadge(t, m.issue.Severity),
		"  ",
		t.Renderer.NewStyle().Foreground(t.Muted).Render(m.issue.ID),
	))
	b.WriteString("\n")
	b.WriteString(RenderDivider(t, w))
	b.WriteString("\n")

	b.WriteString(m.renderField("Type", m.issue.DisplayType(), w))
	b.WriteString(m.renderField("Timeframe", m.issue.DisplayTimeframe(), w))
	b.WriteString(m.renderField("Reported", m.issue.DisplayCreated(), w))
	b.WriteString(m.renderField("Est. cost", m.issue.DisplayCost(), w))
	b.WriteString(m.renderField("Contact", m.issue.DisplayContact(), w))
	b.WriteString(m.renderField("Action taken", m.issue.DisplayActionTaken(), w))
	if m.issue.HasLocation() {
		loc := fmt.Sprintf("%.5f, %.5f", *m.issue.Latitude, *m.issue.Longitude)
		b.WriteString(m.renderField("Location", loc, w))
	}
	if m.issue.HasImage() {
		b.WriteString(m.renderField("Attachment", m.issue.Image, w))
	}

	b.WriteString("\n")
	b.WriteString(m.descMD)
	b.WriteString("\n")

	if carousel := m.renderCarousel(w); carousel != "" {
		b.WriteString("\n")
		b.WriteString(RenderDivider(t, w))
		b.WriteString("\n")
		b.WriteString(carousel)
	}

	b.WriteString("\n")
	b.WriteString(t.Renderer.NewStyle().Foreground(t.Muted).
		Render("esc close" + m.carouselHint()))

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(w + 4).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Modal) carouselHint() string {
	if len(m.slides) > 1 {
		return " · h/l history"
	}
	return ""
}

func (m Modal) renderField(name, value string, width int) string {
	t := m.theme
	label := t.Renderer.NewStyle().Foreground(t.Subtext).Width(14).Render(name)
	return label + Truncate(value, width-14) + "\n"
}

// renderCarousel renders the history section. Hidden entirely with zero
// slides; navigation indicators only appear with more than one.
func (m Modal) renderCarousel(width int) string {
	t := m.theme
	switch {
	case m.loading:
		return t.Renderer.NewStyle().Foreground(t.Muted).Render("Loading history...")
	case m.histErr != nil:
		return t.Renderer.NewStyle().Foreground(t.Danger).
			Render(Truncate("History unavailable: "+m.histErr.Error(), width))
	case len(m.slides) == 0:
		return ""
	}

	entry := m.slides[m.slide]
	var b strings.Builder

	header := fmt.Sprintf("Response History (%d/%d)", m.slide+1, len(m.slides))
	b.WriteString(t.Header.Render(header))
	b.WriteString("\n")

	b.WriteString(m.renderField("Date", entry.DisplayDate(), width))
	b.WriteString(m.renderField("Role", entry.DisplayRole(), width))
	b.WriteString(m.renderField("Status", string(entry.NormalizedStatus()), width))
	b.WriteString(m.renderField("Action", entry.DisplayAction(), width))
	b.WriteString(m.renderField("Cost", entry.DisplayCost(), width))
	b.WriteString(m.renderField("Timespan", entry.DisplayTimespan(), width))
	b.WriteString(m.renderField("Contact", entry.DisplayContact(), width))

	if len(m.slides) > 1 {
		dots := make([]string, len(m.slides))
		for i := range dots {
			if i == m.slide {
				dots[i] = t.Renderer.NewStyle().Foreground(t.Primary).Render("●")
			} else {
				dots[i] = t.Renderer.NewStyle().Foreground(t.Muted).Render("○")
			}
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(dots, " ")))
	}
	return b.String()
}
