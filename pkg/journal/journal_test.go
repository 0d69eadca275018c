package journal

import (
	"path/filepath"
	"testing"

	"github.com/fieldboard/fieldboard/pkg/model"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndEntries(t *testing.T) {
	j := openTestJournal(t)

	if err := j.Record("7", model.StatusNew, model.StatusFixed, true); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record("7", model.StatusFixed, model.StatusOpen, false); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := j.Entries(0)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Newest first.
	if entries[0].ToStatus != model.StatusOpen || entries[0].Result != "failed" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].FromStatus != model.StatusNew || entries[1].Result != "ok" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[0].OccurredAt.IsZero() {
		t.Error("OccurredAt not recorded")
	}
}

func TestEntriesLimit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		if err := j.Record("x", model.StatusNew, model.StatusOpen, true); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	entries, err := j.Entries(3)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open with missing parent: %v", err)
	}
	j.Close()
}
