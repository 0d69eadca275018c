package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldboard/fieldboard/pkg/model"
)

// viewport is the lat/lon box the map currently shows. It survives rebuilds
// that produce zero markers, so filtering everything out does not snap the
// map back to a world view.
type viewport struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

// MapView plots located issues on a character-grid scatter map. It owns its
// marker set: one marker per issue with both coordinates present, rebuilt
// in full on every collection change.
type MapView struct {
	theme    Theme
	markers  []model.Issue
	vp       viewport
	hasVP    bool
	selected int
	width    int
	height   int
	focused  bool
}

// NewMapView creates an empty map.
func NewMapView(theme Theme) MapView {
	return MapView{theme: theme}
}

// SetIssues rebuilds the marker set. Issues lacking either coordinate get
// no marker. With at least one marker the viewport is refit to bound them
// all; with zero the prior viewport is left unchanged.
func (m *MapView) SetIssues(issues []model.Issue) {
	m.markers = m.markers[:0]
	for _, issue := range issues {
		if issue.HasLocation() {
			m.markers = append(m.markers, issue)
		}
	}

	if len(m.markers) > 0 {
		m.vp = fitViewport(m.markers)
		m.hasVP = true
	}
	if m.selected >= len(m.markers) {
		m.selected = 0
	}
}

// fitViewport computes a padded bounding box over the marker coordinates.
func fitViewport(markers []model.Issue) viewport {
	v := viewport{
		minLat: *markers[0].Latitude, maxLat: *markers[0].Latitude,
		minLon: *markers[0].Longitude, maxLon: *markers[0].Longitude,
	}
	for _, mk := range markers[1:] {
		lat, lon := *mk.Latitude, *mk.Longitude
		if lat < v.minLat {
			v.minLat = lat
		}
		if lat > v.maxLat {
			v.maxLat = lat
		}
		if lon < v.minLon {
			v.minLon = lon
		}
		if lon > v.maxLon {
			v.maxLon = lon
		}
	}

	padLat := (v.maxLat - v.minLat) * 0.1
	if padLat == 0 {
		padLat = 1
	}
	padLon := (v.maxLon - v.minLon) * 0.1
	if padLon == 0 {
		padLon = 1
	}
	v.minLat -= padLat
	v.maxLat += padLat
	v.minLon -= padLon
	v.maxLon += padLon
	return v
}

// project maps a coordinate onto the cols x rows character grid, north up.
func (v viewport) project(lat, lon float64, cols, rows int) (col, row int) {
	col = int((lon - v.minLon) / (v.maxLon - v.minLon) * float64(cols-1))
	row = int((v.maxLat - lat) / (v.maxLat - v.minLat) * float64(rows-1))
	if col < 0 {
		col = 0
	}
	if col > cols-1 {
		col = cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row > rows-1 {
		row = rows - 1
	}
	return col, row
}

// MarkerCount returns the number of placed markers.
func (m *MapView) MarkerCount() int { return len(m.markers) }

// SetSize updates the pane dimensions.
func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused marks whether the map pane has keyboard focus.
func (m *MapView) SetFocused(f bool) { m.focused = f }

// Selected returns the currently selected marker's issue.
func (m *MapView) Selected() (model.Issue, bool) {
	if len(m.markers) == 0 {
		return model.Issue{}, false
	}
	return m.markers[m.selected], true
}

// Update cycles marker selection while the map has focus. Activating the
// selected marker (enter) is handled by the root model, which routes it to
// the highlight coordinator.
func (m MapView) Update(msg tea.Msg) (MapView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.markers) == 0 {
		return m, nil
	}
	switch key.String() {
	case "l", "right", "j", "down":
		m.selected = (m.selected + 1) % len(m.markers)
	case "h", "left", "k", "up":
		m.selected = (m.selected - 1 + len(m.markers)) % len(m.markers)
	}
	return m, nil
}

// View renders the map: a header, the scatter canvas, and a footer with the
// selected marker's details (the popup equivalent).
func (m MapView) View() string {
	header := m.theme.Header.Render(fmt.Sprintf("Issue Map (%d markers)", len(m.markers)))

	canvasH := m.height - 3
	canvasW := m.width
	if canvasH < 3 || canvasW < 10 {
		return header
	}

	var canvas string
	if !m.hasVP {
		empty := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).
			Render("No located issues")
		canvas = lipgloss.Place(canvasW, canvasH, lipgloss.Center, lipgloss.Center, empty)
	} else {
		canvas = m.renderCanvas(canvasW, canvasH)
	}

	footer := m.renderFooter()
	return header + "\n" + canvas + "\n" + footer
}

func (m MapView) renderCanvas(cols, rows int) string {
	type cell struct {
		idx      int
		selected bool
	}
	grid := make(map[[2]int]cell)
	for i, mk := range m.markers {
		c, r := m.vp.project(*mk.Latitude, *mk.Longitude, cols, rows)
		key := [2]int{r, c}
		// The selected marker wins a contested cell so it is always visible.
		if prev, taken := grid[key]; taken && prev.selected {
			continue
		}
		grid[key] = cell{idx: i, selected: i == m.selected}
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cl, ok := grid[[2]int{r, c}]
			if !ok {
				b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Border).Render("·"))
				continue
			}
			mk := m.markers[cl.idx]
			style := m.theme.Renderer.NewStyle().
				Foreground(m.theme.StatusColor(string(mk.Status.Normalize())))
			if cl.selected {
				style = style.Bold(true)
			}
			b.WriteString(style.Render(MarkerRune(cl.selected)))
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m MapView) renderFooter() string {
	mk, ok := m.Selected()
	if !ok {
		return ""
	}
	detail := fmt.Sprintf("%s — %s (%.4f, %.4f)",
		mk.DisplayLabel(), mk.Status.Normalize(), *mk.Latitude, *mk.Longitude)
	style := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	if m.focused {
		style = style.Foreground(m.theme.Primary)
	}
	return style.Render(Truncate(detail, m.width))
}
