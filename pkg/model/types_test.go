package model

import (
	"testing"
	"time"
)

func f64(v float64) *float64 { return &v }

func TestStatusNormalize(t *testing.T) {
	cases := []struct {
		in   Status
		want Status
	}{
		{"new", StatusNew},
		{"open", StatusOpen},
		{"waiting", StatusWaiting},
		{"fixed", StatusFixed},
		{"FIXED", StatusFixed},
		{" Open ", StatusOpen},
		{"", StatusNew},
		{"in_progress", StatusNew},
		{"resolved", StatusNew},
	}
	for _, c := range cases {
		if got := c.in.Normalize(); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHasLocation(t *testing.T) {
	if (Issue{}).HasLocation() {
		t.Error("issue without coordinates should not have a location")
	}
	if (Issue{Latitude: f64(10)}).HasLocation() {
		t.Error("latitude alone should not count as a location")
	}
	if (Issue{Longitude: f64(20)}).HasLocation() {
		t.Error("longitude alone should not count as a location")
	}
	if !(Issue{Latitude: f64(10), Longitude: f64(20)}).HasLocation() {
		t.Error("both coordinates present should count as a location")
	}
	// Zero is a valid coordinate (equator / prime meridian).
	if !(Issue{Latitude: f64(0), Longitude: f64(0)}).HasLocation() {
		t.Error("(0,0) should count as a location")
	}
}

func TestDisplayFallbacks(t *testing.T) {
	empty := Issue{}
	if got := empty.DisplayLabel(); got != "Untitled Issue" {
		t.Errorf("DisplayLabel = %q", got)
	}
	if got := empty.DisplayDescription(); got != "No Description" {
		t.Errorf("DisplayDescription = %q", got)
	}
	if got := empty.DisplayType(); got != "Not specified" {
		t.Errorf("DisplayType = %q", got)
	}
	if got := empty.DisplayActionTaken(); got != "No action taken yet" {
		t.Errorf("DisplayActionTaken = %q", got)
	}
	if got := empty.DisplayCost(); got != "Not specified" {
		t.Errorf("DisplayCost = %q", got)
	}
	if got := empty.DisplayCreated(); got != "Unknown" {
		t.Errorf("DisplayCreated = %q", got)
	}

	full := Issue{Label: "Leak", Description: "Pipe burst", Type: "water"}
	if got := full.DisplayLabel(); got != "Leak" {
		t.Errorf("DisplayLabel = %q", got)
	}
	if got := full.DisplayDescription(); got != "Pipe burst" {
		t.Errorf("DisplayDescription = %q", got)
	}
}

func TestCreatedTime(t *testing.T) {
	i := Issue{CreatedAt: "2024-03-01T10:30:00Z"}
	got, ok := i.CreatedTime()
	if !ok {
		t.Fatal("expected RFC3339 created_at to parse")
	}
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CreatedTime = %v, want %v", got, want)
	}

	if _, ok := (Issue{CreatedAt: "Unknown"}).CreatedTime(); ok {
		t.Error("unparseable created_at should not parse")
	}
	// Raw value is surfaced when parsing fails.
	if got := (Issue{CreatedAt: "Unknown"}).DisplayCreated(); got != "Unknown" {
		t.Errorf("DisplayCreated = %q", got)
	}
}

func TestCostValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"150", 150, true},
		{"$1,200.50", 1200.50, true},
		{" 40 ", 40, true},
		{"", 0, false},
		{"Not specified", 0, false},
	}
	for _, c := range cases {
		got, ok := (Issue{CostUSD: c.in}).CostValue()
		if ok != c.ok || got != c.want {
			t.Errorf("CostValue(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFilterCriteriaValues(t *testing.T) {
	c := FilterCriteria{Search: "pump", Severity: "high"}
	v := c.Values()
	if got := v.Get("search"); got != "pump" {
		t.Errorf("search = %q", got)
	}
	if got := v.Get("severity"); got != "high" {
		t.Errorf("severity = %q", got)
	}
	if _, present := v["state"]; present {
		t.Error("empty state should be omitted from query parameters")
	}
	if len(v) != 2 {
		t.Errorf("expected 2 parameters, got %d: %v", len(v), v)
	}

	if !(FilterCriteria{}).IsZero() {
		t.Error("empty criteria should be zero")
	}
	if c.IsZero() {
		t.Error("non-empty criteria should not be zero")
	}
	if enc := (FilterCriteria{}).Values().Encode(); enc != "" {
		t.Errorf("zero criteria should encode empty, got %q", enc)
	}
}
