package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// FilterApplyMsg carries the criteria of a submitted filter form.
type FilterApplyMsg struct {
	Criteria model.FilterCriteria
}

// FilterCancelMsg closes the filter form without changing criteria.
type FilterCancelMsg struct{}

// FilterForm is the filter overlay. The form fields bind directly to a
// criteria copy; submitting emits FilterApplyMsg and the store does the
// actual fetch. The form never filters locally.
type FilterForm struct {
	form     *huh.Form
	criteria model.FilterCriteria
	theme    Theme
	width    int
	height   int
	done     bool
}

// NewFilterForm builds the overlay pre-populated with the active criteria.
func NewFilterForm(current model.FilterCriteria, theme Theme) *FilterForm {
	f := &FilterForm{criteria: current, theme: theme}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("search").
				Title("Search").
				Placeholder("label or description").
				Value(&f.criteria.Search),
			huh.NewSelect[string]().
				Key("state").
				Title("Status").
				Options(
					huh.NewOption("Any", ""),
					huh.NewOption("New", "new"),
					huh.NewOption("Open", "open"),
					huh.NewOption("Waiting", "waiting"),
					huh.NewOption("Fixed", "fixed"),
				).
				Value(&f.criteria.State),
			huh.NewSelect[string]().
				Key("severity").
				Title("Severity").
				Options(
					huh.NewOption("Any", ""),
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).
				Value(&f.criteria.Severity),
			huh.NewInput().
				Key("timeframe").
				Title("Timeframe").
				Placeholder("e.g. immediate").
				Value(&f.criteria.Timeframe),
			huh.NewInput().
				Key("start_date").
				Title("From date").
				Placeholder("YYYY-MM-DD").
				Value(&f.criteria.StartDate),
			huh.NewInput().
				Key("end_date").
				Title("To date").
				Placeholder("YYYY-MM-DD").
				Value(&f.criteria.EndDate),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
	return f
}

// Init starts the embedded form.
func (f *FilterForm) Init() tea.Cmd {
	return f.form.Init()
}

// SetSize updates the overlay dimensions.
func (f *FilterForm) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// Update drives the embedded form. Completion emits FilterApplyMsg with the
// bound criteria; esc emits FilterCancelMsg.
func (f *FilterForm) Update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		f.done = true
		return func() tea.Msg { return FilterCancelMsg{} }, true
	}

	m, cmd := f.form.Update(msg)
	if form, ok := m.(*huh.Form); ok {
		f.form = form
	}
	if f.form.State == huh.StateCompleted && !f.done {
		f.done = true
		criteria := f.criteria
		return func() tea.Msg { return FilterApplyMsg{Criteria: criteria} }, true
	}
	return cmd, false
}

// View renders the overlay centered in the window.
func (f *FilterForm) View() string {
	t := f.theme
	title := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).
		Render("Filter Issues")
	body := title + "\n\n" + f.form.View()

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(body)

	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, box)
}
