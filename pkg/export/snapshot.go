// Package export renders a headless snapshot of the issue map, for sharing
// the geographic picture without a terminal session.
package export

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/debug"
	"github.com/fieldboard/fieldboard/pkg/model"
)

// maxConcurrentFetches bounds the parallel history lookups so a large
// collection does not hammer the server.
const maxConcurrentFetches = 4

// Marker is one plottable issue.
type Marker struct {
	Issue model.Issue
	Lat   float64
	Lon   float64

	// ResponseCount sizes the marker: issues with more history draw bigger.
	ResponseCount int
}

// Snapshot is everything a rendering needs: the markers, per-status totals,
// and provenance.
type Snapshot struct {
	Markers     []Marker
	Total       int
	Counts      map[model.Status]int
	Filters     model.FilterCriteria
	GeneratedAt time.Time
}

// Collect fetches the collection matching criteria and annotates each
// located issue with its history depth. History lookups run concurrently
// (bounded); a failed lookup degrades that one marker to its minimum size
// rather than failing the snapshot.
func Collect(ctx context.Context, client *api.Client, criteria model.FilterCriteria) (*Snapshot, error) {
	start := time.Now()
	issues, err := client.FetchIssues(ctx, criteria)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Total:       len(issues),
		Counts:      make(map[model.Status]int),
		Filters:     criteria,
		GeneratedAt: time.Now(),
	}

	for _, issue := range issues {
		snap.Counts[issue.Status.Normalize()]++
		if issue.HasLocation() {
			snap.Markers = append(snap.Markers, Marker{
				Issue: issue,
				Lat:   *issue.Latitude,
				Lon:   *issue.Longitude,
			})
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for idx := range snap.Markers {
		g.Go(func() error {
			entries, err := client.FetchResponses(gctx, snap.Markers[idx].Issue.ID)
			if err != nil {
				debug.Log("export: history lookup for %s failed: %v", snap.Markers[idx].Issue.ID, err)
				return nil
			}
			mu.Lock()
			snap.Markers[idx].ResponseCount = len(entries)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	debug.LogTiming("export collect", time.Since(start))
	return snap, nil
}

// Bounds is a lat/lon bounding box fit to a marker set.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// FitBounds computes the bounding box of the markers, padded so edge markers
// are not clipped. ok is false when there are no markers, in which case the
// caller keeps whatever viewport it had.
func FitBounds(markers []Marker) (Bounds, bool) {
	if len(markers) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat: markers[0].Lat, MaxLat: markers[0].Lat,
		MinLon: markers[0].Lon, MaxLon: markers[0].Lon,
	}
	for _, m := range markers[1:] {
		if m.Lat < b.MinLat {
			b.MinLat = m.Lat
		}
		if m.Lat > b.MaxLat {
			b.MaxLat = m.Lat
		}
		if m.Lon < b.MinLon {
			b.MinLon = m.Lon
		}
		if m.Lon > b.MaxLon {
			b.MaxLon = m.Lon
		}
	}

	// Pad 10% per side; a degenerate span (single marker, or a co-located
	// cluster) gets a fixed one-degree margin instead.
	padLat := (b.MaxLat - b.MinLat) * 0.1
	if padLat == 0 {
		padLat = 1
	}
	padLon := (b.MaxLon - b.MinLon) * 0.1
	if padLon == 0 {
		padLon = 1
	}
	b.MinLat -= padLat
	b.MaxLat += padLat
	b.MinLon -= padLon
	b.MaxLon += padLon
	return b, true
}

// Project maps a coordinate into a width x height pixel space using an
// equirectangular projection, north up.
func (b Bounds) Project(lat, lon float64, width, height int) (x, y float64) {
	x = (lon - b.MinLon) / (b.MaxLon - b.MinLon) * float64(width)
	y = (b.MaxLat - lat) / (b.MaxLat - b.MinLat) * float64(height)
	return x, y
}

// statusHex matches the board column colors of the TUI theme.
func statusHex(s model.Status) string {
	switch s.Normalize() {
	case model.StatusOpen:
		return "#50FA7B"
	case model.StatusWaiting:
		return "#FFB86C"
	case model.StatusFixed:
		return "#6272A4"
	default: // new
		return "#8BE9FD"
	}
}

// markerRadius sizes a marker by history depth, clamped so outliers do not
// swallow the map.
func markerRadius(responseCount int) float64 {
	r := 5 + float64(responseCount)*1.5
	if r > 14 {
		r = 14
	}
	return r
}
