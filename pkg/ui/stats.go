package ui

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// StatsModel summarizes the visible collection: per-status and per-severity
// counts, location coverage, and estimated-cost statistics. Rebuilt in full
// whenever the collection changes.
type StatsModel struct {
	theme  Theme
	width  int
	height int

	total      int
	located    int
	withImage  int
	byStatus   map[model.Status]int
	bySeverity map[string]int

	costN      int
	costMean   float64
	costMedian float64
	costStddev float64
	costTotal  float64
}

// NewStatsModel creates an empty stats view.
func NewStatsModel(theme Theme) StatsModel {
	return StatsModel{theme: theme}
}

// SetSize updates the view dimensions.
func (s *StatsModel) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetIssues recomputes every summary from the collection.
func (s *StatsModel) SetIssues(issues []model.Issue) {
	s.total = len(issues)
	s.located = 0
	s.withImage = 0
	s.byStatus = make(map[model.Status]int)
	s.bySeverity = make(map[string]int)

	var costs []float64
	for _, issue := range issues {
		s.byStatus[issue.Status.Normalize()]++
		sev := strings.ToLower(strings.TrimSpace(issue.Severity))
		if sev == "" {
			sev = "unspecified"
		}
		s.bySeverity[sev]++
		if issue.HasLocation() {
			s.located++
		}
		if issue.HasImage() {
			s.withImage++
		}
		if v, ok := issue.CostValue(); ok {
			costs = append(costs, v)
		}
	}

	s.costN = len(costs)
	if s.costN == 0 {
		s.costMean, s.costMedian, s.costStddev, s.costTotal = 0, 0, 0, 0
		return
	}
	sort.Float64s(costs)
	s.costMean = stat.Mean(costs, nil)
	s.costMedian = stat.Quantile(0.5, stat.Empirical, costs, nil)
	s.costStddev = stat.StdDev(costs, nil)
	s.costTotal = 0
	for _, v := range costs {
		s.costTotal += v
	}
}

// Total returns the collection size the view summarizes.
func (s *StatsModel) Total() int { return s.total }

// StatusCount returns the count for a normalized status.
func (s *StatsModel) StatusCount(status model.Status) int { return s.byStatus[status] }

// LocatedCount returns how many issues carry coordinates.
func (s *StatsModel) LocatedCount() int { return s.located }

// CostMean returns the mean of parseable cost estimates.
func (s *StatsModel) CostMean() float64 { return s.costMean }

// CostMedian returns the median of parseable cost estimates.
func (s *StatsModel) CostMedian() float64 { return s.costMedian }

// View renders the summary panels.
func (s StatsModel) View() string {
	t := s.theme
	if s.total == 0 {
		return t.Renderer.NewStyle().Foreground(t.Muted).Render("No issues loaded")
	}

	var b strings.Builder
	b.WriteString(t.Header.Render(fmt.Sprintf("Overview (%d issues)", s.total)))
	b.WriteString("\n\n")

	barWidth := s.width - 30
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}

	b.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Bold(true).Render("By status"))
	b.WriteString("\n")
	for _, status := range model.Statuses {
		n := s.byStatus[status]
		frac := float64(n) / float64(s.total)
		label := t.Renderer.NewStyle().Foreground(t.StatusColor(string(status))).Width(9).
			Render(string(status))
		b.WriteString(fmt.Sprintf("  %s %s %3d\n", label, RenderMiniBar(frac, barWidth, t), n))
	}
	b.WriteString("\n")

	b.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Bold(true).Render("By severity"))
	b.WriteString("\n")
	for _, sev := range sortedKeys(s.bySeverity) {
		n := s.bySeverity[sev]
		frac := float64(n) / float64(s.total)
		label := t.Renderer.NewStyle().Foreground(t.SeverityColor(sev)).Width(12).Render(sev)
		b.WriteString(fmt.Sprintf("  %s %s %3d\n", label, RenderMiniBar(frac, barWidth, t), n))
	}
	b.WriteString("\n")

	b.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Bold(true).Render("Coverage"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s%d/%d\n", PadRight("located", 13), s.located, s.total))
	b.WriteString(fmt.Sprintf("  %s%d/%d\n", PadRight("with photo", 13), s.withImage, s.total))
	b.WriteString("\n")

	b.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Bold(true).Render("Estimated cost"))
	b.WriteString("\n")
	if s.costN == 0 {
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Muted).Render("  no parseable estimates"))
	} else {
		b.WriteString(fmt.Sprintf("  %s%d\n", PadRight("estimates", 13), s.costN))
		b.WriteString(fmt.Sprintf("  %s$%.2f\n", PadRight("total", 13), s.costTotal))
		b.WriteString(fmt.Sprintf("  %s$%.2f\n", PadRight("mean", 13), s.costMean))
		b.WriteString(fmt.Sprintf("  %s$%.2f\n", PadRight("median", 13), s.costMedian))
		b.WriteString(fmt.Sprintf("  %s$%.2f", PadRight("stddev", 13), s.costStddev))
	}

	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
