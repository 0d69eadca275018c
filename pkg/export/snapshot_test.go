package export

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/model"
)

func f64(v float64) *float64 { return &v }

func TestCollectAnnotatesMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/issues":
			io.WriteString(w, `[
				{"id":"1","label":"Leak","status":"waiting","latitude":10,"longitude":20},
				{"id":"2","label":"No coords","status":"open"},
				{"id":"3","label":"Pump","status":"weird","latitude":11,"longitude":21}
			]`)
		case strings.HasPrefix(r.URL.Path, "/api/responses/1"):
			io.WriteString(w, `[{"action_role":"a"},{"action_role":"b"}]`)
		default:
			io.WriteString(w, `[]`)
		}
	}))
	defer srv.Close()

	snap, err := Collect(context.Background(), api.NewClient(srv.URL), model.FilterCriteria{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if snap.Total != 3 {
		t.Errorf("Total = %d", snap.Total)
	}
	if len(snap.Markers) != 2 {
		t.Fatalf("expected 2 markers (issues with both coordinates), got %d", len(snap.Markers))
	}
	if snap.Counts[model.StatusWaiting] != 1 || snap.Counts[model.StatusOpen] != 1 {
		t.Errorf("Counts = %v", snap.Counts)
	}
	// Unrecognized status counts under "new".
	if snap.Counts[model.StatusNew] != 1 {
		t.Errorf("unrecognized status should count as new: %v", snap.Counts)
	}

	var leak Marker
	for _, m := range snap.Markers {
		if m.Issue.ID == "1" {
			leak = m
		}
	}
	if leak.ResponseCount != 2 {
		t.Errorf("ResponseCount = %d", leak.ResponseCount)
	}
}

func TestFitBounds(t *testing.T) {
	if _, ok := FitBounds(nil); ok {
		t.Error("no markers should produce no bounds")
	}

	b, ok := FitBounds([]Marker{{Lat: 10, Lon: 20}, {Lat: 20, Lon: 40}})
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.MinLat >= 10 || b.MaxLat <= 20 || b.MinLon >= 20 || b.MaxLon <= 40 {
		t.Errorf("bounds not padded around markers: %+v", b)
	}

	// Single marker: fixed margin, no zero-width box.
	b, _ = FitBounds([]Marker{{Lat: 5, Lon: 5}})
	if b.MaxLat-b.MinLat == 0 || b.MaxLon-b.MinLon == 0 {
		t.Errorf("degenerate bounds: %+v", b)
	}
}

func TestProject(t *testing.T) {
	b := Bounds{MinLat: 0, MaxLat: 10, MinLon: 0, MaxLon: 10}
	x, y := b.Project(10, 0, 100, 100)
	if x != 0 || y != 0 {
		t.Errorf("north-west corner should project to origin, got (%v,%v)", x, y)
	}
	x, y = b.Project(0, 10, 100, 100)
	if x != 100 || y != 100 {
		t.Errorf("south-east corner should project to (100,100), got (%v,%v)", x, y)
	}
}

func TestWriteSVG(t *testing.T) {
	snap := &Snapshot{
		Total: 2,
		Counts: map[model.Status]int{
			model.StatusWaiting: 1,
			model.StatusNew:     1,
		},
		Markers: []Marker{
			{Issue: model.Issue{ID: "1", Status: "waiting"}, Lat: 10, Lon: 20},
			{Issue: model.Issue{ID: "2", Status: "new"}, Lat: 12, Lon: 22, ResponseCount: 3},
		},
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, snap, 400, 300); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("output is not an SVG document")
	}
	// Two markers plus four legend swatches.
	if got := strings.Count(out, "<circle"); got != 6 {
		t.Errorf("expected 6 circles, got %d", got)
	}
	if !strings.Contains(out, "waiting: 1") {
		t.Error("legend missing status counts")
	}
}

func TestWriteSVGNoMarkers(t *testing.T) {
	snap := &Snapshot{Total: 1, Counts: map[model.Status]int{model.StatusOpen: 1}}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, snap, 400, 300); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if !strings.Contains(buf.String(), "No located issues") {
		t.Error("empty map should say so instead of rendering an empty scatter")
	}
}
