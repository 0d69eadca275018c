package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/fieldboard/fieldboard/pkg/model"
)

const (
	backgroundHex = "#1E1F29"
	gridHex       = "#363949"
	textHex       = "#F8F8F2"
	legendMargin  = 20
)

// WriteFile renders the snapshot to path, choosing the format from the
// extension (.svg or .png).
func WriteFile(path string, snap *Snapshot, width, height int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		return WriteSVG(f, snap, width, height)
	case ".png":
		return WritePNG(path, snap, width, height)
	default:
		return fmt.Errorf("unsupported export format %q (want .svg or .png)", filepath.Ext(path))
	}
}

// WriteSVG renders the marker scatter as an SVG document.
func WriteSVG(w io.Writer, snap *Snapshot, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+backgroundHex)

	bounds, ok := FitBounds(snap.Markers)
	if ok {
		// Light graticule so empty regions still read as a map.
		for i := 1; i < 4; i++ {
			x := width * i / 4
			y := height * i / 4
			canvas.Line(x, 0, x, height, "stroke:"+gridHex+";stroke-width:1")
			canvas.Line(0, y, width, y, "stroke:"+gridHex+";stroke-width:1")
		}
		for _, m := range snap.Markers {
			x, y := bounds.Project(m.Lat, m.Lon, width, height)
			fill := statusHex(m.Issue.Status)
			canvas.Circle(int(x), int(y), int(markerRadius(m.ResponseCount)),
				fmt.Sprintf("fill:%s;fill-opacity:0.85;stroke:%s;stroke-width:1", fill, backgroundHex))
		}
	} else {
		canvas.Text(width/2, height/2, "No located issues",
			"fill:"+textHex+";font-size:16px;text-anchor:middle;font-family:monospace")
	}

	// Legend: per-status counts in column order.
	y := legendMargin
	canvas.Text(legendMargin, y, fmt.Sprintf("%d issues, %d located — %s",
		snap.Total, len(snap.Markers), snap.GeneratedAt.Format("2006-01-02 15:04")),
		"fill:"+textHex+";font-size:12px;font-family:monospace")
	for _, s := range model.Statuses {
		y += 16
		canvas.Circle(legendMargin, y-4, 5, "fill:"+statusHex(s))
		canvas.Text(legendMargin+12, y, fmt.Sprintf("%s: %d", s, snap.Counts[s]),
			"fill:"+textHex+";font-size:12px;font-family:monospace")
	}

	canvas.End()
	return nil
}

// WritePNG renders the marker scatter as a PNG image.
func WritePNG(path string, snap *Snapshot, width, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetHexColor(backgroundHex)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	bounds, ok := FitBounds(snap.Markers)
	if ok {
		dc.SetHexColor(gridHex)
		dc.SetLineWidth(1)
		for i := 1; i < 4; i++ {
			x := float64(width*i) / 4
			y := float64(height*i) / 4
			dc.DrawLine(x, 0, x, float64(height))
			dc.DrawLine(0, y, float64(width), y)
			dc.Stroke()
		}
		for _, m := range snap.Markers {
			x, y := bounds.Project(m.Lat, m.Lon, width, height)
			dc.SetHexColor(statusHex(m.Issue.Status))
			dc.DrawCircle(x, y, markerRadius(m.ResponseCount))
			dc.Fill()
		}
	} else {
		dc.SetHexColor(textHex)
		dc.DrawStringAnchored("No located issues", float64(width)/2, float64(height)/2, 0.5, 0.5)
	}

	dc.SetHexColor(textHex)
	y := float64(legendMargin)
	dc.DrawString(fmt.Sprintf("%d issues, %d located — %s",
		snap.Total, len(snap.Markers), snap.GeneratedAt.Format("2006-01-02 15:04")),
		legendMargin, y)
	for _, s := range model.Statuses {
		y += 16
		dc.SetHexColor(statusHex(s))
		dc.DrawCircle(legendMargin, y-4, 5)
		dc.Fill()
		dc.SetHexColor(textHex)
		dc.DrawString(fmt.Sprintf("%s: %d", s, snap.Counts[s]), legendMargin+12, y)
	}

	return dc.SavePNG(path)
}
