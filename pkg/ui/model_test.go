package ui

import (
	"errors"
	"testing"

	"github.com/fieldboard/fieldboard/pkg/config"
	"github.com/fieldboard/fieldboard/pkg/model"
	"github.com/fieldboard/fieldboard/pkg/store"
)

func testModel(t *testing.T, issues []model.Issue) Model {
	t.Helper()
	m := New(nil, store.New(nil), nil, config.Default())
	m.width, m.height = 120, 40
	m.resize()
	next, _ := m.Update(store.IssuesLoadedMsg{Issues: issues})
	return next.(Model)
}

func TestModel_LoadFansOutToAllViews(t *testing.T) {
	m := testModel(t, []model.Issue{
		{ID: "LEAK-1", Label: "Water main leak", Status: "waiting",
			Severity: "high", Latitude: f(39.7), Longitude: f(-104.9)},
		{ID: "SIGN-2", Label: "Bent stop sign", Status: "new"},
	})

	if m.listPane.Count() != 2 {
		t.Errorf("List should show 2 issues, got %d", m.listPane.Count())
	}
	if m.mapView.MarkerCount() != 1 {
		t.Errorf("Map should show 1 marker, got %d", m.mapView.MarkerCount())
	}
	if m.board.ColumnCount(ColWaiting) != 1 {
		t.Errorf("Board WAITING should hold 1 card, got %d", m.board.ColumnCount(ColWaiting))
	}
	if m.stats.Total() != 2 {
		t.Errorf("Stats should summarize 2 issues, got %d", m.stats.Total())
	}
}

func TestModel_StaleLoadIgnored(t *testing.T) {
	m := testModel(t, []model.Issue{{ID: "a"}})

	// A result from a superseded fetch must not replace the collection.
	next, _ := m.Update(store.IssuesLoadedMsg{Seq: 99, Issues: []model.Issue{{ID: "b"}, {ID: "c"}}})
	m = next.(Model)
	if m.listPane.Count() != 1 {
		t.Errorf("Stale load should be dropped, list count %d", m.listPane.Count())
	}
}

func TestModel_HighlightUnknownIDIsNoop(t *testing.T) {
	m := testModel(t, []model.Issue{{ID: "a", Status: "open"}})
	if cmd := m.activateHighlight("missing"); cmd != nil {
		t.Error("Highlighting an unknown ID must not schedule a decay")
	}
}

func TestModel_HighlightMovesListAndBoard(t *testing.T) {
	m := testModel(t, []model.Issue{
		{ID: "a", Status: "open"},
		{ID: "b", Status: "waiting"},
	})

	cmd := m.activateHighlight("b")
	if cmd == nil {
		t.Fatal("Known ID should schedule the decay timer")
	}
	sel, ok := m.listPane.Selected()
	if !ok || sel.ID != "b" {
		t.Errorf("List should select b at top, got %+v", sel)
	}
	open := m.board.ColumnIssues(ColOpen)
	if len(open) == 0 || open[0].ID != "b" {
		t.Errorf("Board OPEN column should start with b, got %+v", open)
	}

	// Expiry after a rebuild must be harmless.
	next, _ := m.Update(HighlightExpiredMsg{IssueID: "b"})
	m = next.(Model)
	next, _ = m.Update(HighlightExpiredMsg{IssueID: "long-gone"})
	_ = next
}

func TestModel_DropKeepsOptimisticPlacementOnError(t *testing.T) {
	m := testModel(t, []model.Issue{{ID: "a", Status: "new"}})
	m.page = PageBoard

	next, _ := m.Update(keyMsg(" ")) // grab
	m = next.(Model)
	next, _ = m.Update(keyMsg("l")) // carry into OPEN
	m = next.(Model)
	next, cmd := m.Update(keyMsg(" ")) // drop
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Cross-column drop should produce an update command")
	}
	if m.board.ColumnCount(ColOpen) != 1 {
		t.Fatalf("Card should sit in OPEN optimistically, got %d", m.board.ColumnCount(ColOpen))
	}

	next, _ = m.Update(StatusUpdateErrorMsg{
		IssueID: "a", From: model.StatusNew, To: model.StatusOpen,
		Err: errors.New("nope"),
	})
	m = next.(Model)
	if m.board.ColumnCount(ColOpen) != 1 {
		t.Error("Failed update must not roll the card back")
	}
}
