// Package store holds the authoritative issue collection and the current
// filter criteria. Every view renders from this one collection; a new fetch
// fully replaces it (no incremental merge).
package store

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fieldboard/fieldboard/pkg/api"
	"github.com/fieldboard/fieldboard/pkg/debug"
	"github.com/fieldboard/fieldboard/pkg/model"
)

// IssuesLoadedMsg carries a successfully fetched collection. Seq identifies
// which fetch produced it so stale responses can be discarded.
type IssuesLoadedMsg struct {
	Seq    uint64
	Issues []model.Issue
}

// IssuesErrorMsg carries a failed fetch. The prior collection stays in
// place; views keep rendering stale-but-consistent state.
type IssuesErrorMsg struct {
	Seq uint64
	Err error
}

// Store is the single source of truth for the issue collection. It is only
// touched from the bubbletea update loop, so it needs no locking.
type Store struct {
	client  *api.Client
	filters model.FilterCriteria
	issues  []model.Issue
	seq     uint64
}

// New creates an empty store backed by the given client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Issues returns the most recent successfully fetched collection.
func (s *Store) Issues() []model.Issue { return s.issues }

// Filters returns the current filter criteria.
func (s *Store) Filters() model.FilterCriteria { return s.filters }

// SetFiltersAndReload replaces the filter state and fetches the matching
// collection. The criteria are sent to the server verbatim; no local
// filtering happens.
func (s *Store) SetFiltersAndReload(criteria model.FilterCriteria) tea.Cmd {
	s.filters = criteria
	return s.fetch()
}

// Reload re-runs the last fetch with unchanged filters. Used after a status
// mutation so the views reflect server-confirmed state.
func (s *Store) Reload() tea.Cmd {
	return s.fetch()
}

// ResetFilters clears every filter field and reloads.
func (s *Store) ResetFilters() tea.Cmd {
	return s.SetFiltersAndReload(model.FilterCriteria{})
}

// fetch issues the request asynchronously. Each call bumps the sequence
// number; responses from superseded fetches fail the Accept check and are
// dropped, so an earlier slow response can never clobber a newer one.
func (s *Store) fetch() tea.Cmd {
	s.seq++
	seq := s.seq
	client := s.client
	criteria := s.filters
	return func() tea.Msg {
		issues, err := client.FetchIssues(context.Background(), criteria)
		if err != nil {
			return IssuesErrorMsg{Seq: seq, Err: err}
		}
		return IssuesLoadedMsg{Seq: seq, Issues: issues}
	}
}

// Accept applies a loaded collection if it came from the latest issued
// fetch. It returns false, leaving the store untouched, for stale results.
func (s *Store) Accept(msg IssuesLoadedMsg) bool {
	if msg.Seq != s.seq {
		debug.Log("store: dropping stale fetch result (seq %d, latest %d)", msg.Seq, s.seq)
		return false
	}
	s.issues = msg.Issues
	return true
}

// Stale reports whether an error message belongs to a superseded fetch.
// Errors from the latest fetch are worth logging; stale ones are not even
// that.
func (s *Store) Stale(msg IssuesErrorMsg) bool {
	return msg.Seq != s.seq
}
