package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldboard/fieldboard/pkg/model"
)

func TestFetchIssuesQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/issues" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `[{"id":"1","label":"Leak","status":"waiting","latitude":10,"longitude":20}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	issues, err := c.FetchIssues(context.Background(), model.FilterCriteria{Search: "leak", Severity: "high"})
	if err != nil {
		t.Fatalf("FetchIssues: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Label != "Leak" || !issues[0].HasLocation() {
		t.Errorf("unexpected issue: %+v", issues[0])
	}
	if gotQuery != "search=leak&severity=high" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestFetchIssuesOmitsEmptyFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query string, got %q", r.URL.RawQuery)
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchIssues(context.Background(), model.FilterCriteria{}); err != nil {
		t.Fatalf("FetchIssues: %v", err)
	}
}

func TestFetchIssuesNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchIssues(context.Background(), model.FilterCriteria{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if netErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", netErr.StatusCode)
	}
}

func TestFetchIssuesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not":"an array"`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchIssues(context.Background(), model.FilterCriteria{})
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestFetchIssuesTransportFailure(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).FetchIssues(context.Background(), model.FilterCriteria{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if netErr.StatusCode != 0 {
		t.Errorf("transport failure should have StatusCode 0, got %d", netErr.StatusCode)
	}
}

func TestFetchResponsesEmptyHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/responses/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).FetchResponses(context.Background(), "42")
	if err != nil {
		t.Fatalf("empty history must not be an error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}

func TestFetchResponsesOrderPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"SubmissionDate":"2024-01-02","action_role":"plumber"},
			{"SubmissionDate":"2024-01-01","action_role":"inspector"}
		]`)
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).FetchResponses(context.Background(), "7")
	if err != nil {
		t.Fatalf("FetchResponses: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Wire order defines slide order even when it is not chronological.
	if entries[0].Role != "plumber" || entries[1].Role != "inspector" {
		t.Errorf("order not preserved: %+v", entries)
	}
}

func TestUpdateIssueStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Path != "/api/issues/9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding PATCH body: %v", err)
		}
		if body["status"] != "fixed" {
			t.Errorf("status = %q", body["status"])
		}
		io.WriteString(w, `{"id":"9","label":"Leak","status":"fixed"}`)
	}))
	defer srv.Close()

	updated, err := NewClient(srv.URL).UpdateIssueStatus(context.Background(), "9", model.StatusFixed)
	if err != nil {
		t.Fatalf("UpdateIssueStatus: %v", err)
	}
	if updated.Status != model.StatusFixed {
		t.Errorf("updated status = %q", updated.Status)
	}
}

func TestUpdateIssueStatusNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UpdateIssueStatus(context.Background(), "9", model.StatusOpen)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}
