package store

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/model"
)

func issueServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}))
}

func TestReloadReplacesCollection(t *testing.T) {
	srv := issueServer(t, `[{"id":"1","label":"Leak","status":"waiting"}]`)
	defer srv.Close()

	s := New(api.NewClient(srv.URL))
	msg := s.Reload()()

	loaded, ok := msg.(IssuesLoadedMsg)
	if !ok {
		t.Fatalf("expected IssuesLoadedMsg, got %T", msg)
	}
	if !s.Accept(loaded) {
		t.Fatal("latest fetch result must be accepted")
	}
	if len(s.Issues()) != 1 || s.Issues()[0].ID != "1" {
		t.Errorf("collection = %+v", s.Issues())
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	srv := issueServer(t, `[{"id":"old"}]`)
	defer srv.Close()

	s := New(api.NewClient(srv.URL))

	// First fetch resolves only after a second one has been issued.
	first := s.Reload()
	firstMsg := first().(IssuesLoadedMsg)

	second := s.SetFiltersAndReload(model.FilterCriteria{Search: "pump"})
	secondMsg := second().(IssuesLoadedMsg)

	if s.Accept(firstMsg) {
		t.Error("superseded fetch result must be discarded")
	}
	if len(s.Issues()) != 0 {
		t.Errorf("stale accept mutated the store: %+v", s.Issues())
	}
	if !s.Accept(secondMsg) {
		t.Error("latest fetch result must be accepted")
	}
}

func TestFetchErrorKeepsPriorCollection(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		io.WriteString(w, `[{"id":"1"}]`)
	}))
	defer srv.Close()

	s := New(api.NewClient(srv.URL))
	s.Accept(s.Reload()().(IssuesLoadedMsg))
	if len(s.Issues()) != 1 {
		t.Fatalf("seed fetch failed")
	}

	fail.Store(true)
	msg := s.SetFiltersAndReload(model.FilterCriteria{State: "open"})()
	errMsg, ok := msg.(IssuesErrorMsg)
	if !ok {
		t.Fatalf("expected IssuesErrorMsg, got %T", msg)
	}
	if s.Stale(errMsg) {
		t.Error("error from the latest fetch should not be stale")
	}
	// No partial or empty-collection flash: prior data stays.
	if len(s.Issues()) != 1 {
		t.Errorf("failed fetch must leave the prior collection untouched, got %+v", s.Issues())
	}
	// The failed attempt still replaced the filter state.
	if s.Filters().State != "open" {
		t.Errorf("filters = %+v", s.Filters())
	}
}

func TestResetFiltersClearsCriteria(t *testing.T) {
	srv := issueServer(t, `[]`)
	defer srv.Close()

	s := New(api.NewClient(srv.URL))
	s.SetFiltersAndReload(model.FilterCriteria{Search: "pump", Severity: "high"})()
	if s.Filters().IsZero() {
		t.Fatal("filters should be set")
	}

	s.ResetFilters()()
	if !s.Filters().IsZero() {
		t.Errorf("ResetFilters left criteria %+v", s.Filters())
	}
}
