package view

import (
	"context"

	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
)

// SearchState is the search screen view model.
type SearchState struct {
	Query     string // text being edited
	Submitted string // normalized query of the last submit, "" before any
	Results   Presentation[[]tmdb.MovieSummary]
}

// Search holds a free-text query and fetches only on Submit.
type Search struct {
	base
	state SearchState
	seq   uint64 // submit sequence; only the latest submit is applied
}

// NewSearch creates the search screen controller.
func NewSearch(deps Deps) *Search {
	return &Search{
		base:  newBase(deps, ScreenSearch),
		state: SearchState{Results: Ready([]tmdb.MovieSummary{})},
	}
}

// State returns a copy of the current view model.
func (s *Search) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mount activates the screen. Nothing is fetched until Submit.
func (s *Search) Mount(parent context.Context) error {
	s.mu.Lock()
	s.mountLocked(parent)
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetQuery updates the edited text without fetching.
func (s *Search) SetQuery(q string) {
	s.mu.Lock()
	changed := s.state.Query != q
	s.state.Query = q
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Submit searches for the query as it is now. The result is applied only if
// no later Submit happened and the screen is still mounted. A blank query
// resolves to no results without touching the cache.
func (s *Search) Submit(ctx context.Context) error {
	ctx, gen, done, err := s.scoped(ctx)
	if err != nil {
		return err
	}
	defer done()

	s.mu.Lock()
	q := query.NormalizeQuery(s.state.Query)
	s.seq++
	seq := s.seq
	s.state.Submitted = q
	if q == "" {
		s.state.Results = Ready([]tmdb.MovieSummary{})
		s.mu.Unlock()
		s.notify()
		return nil
	}
	s.state.Results = Loading[[]tmdb.MovieSummary]()
	s.mu.Unlock()
	s.notify()

	fetch := func(ctx context.Context) ([]tmdb.MovieSummary, error) {
		return s.deps.Source.Search(ctx, q)
	}
	p, err := load(ctx, s.deps, query.SearchKey(q), fetch, ReasonSearch, true)
	if err != nil {
		return ignoreCanceled(err)
	}

	s.apply(gen, func() bool {
		if s.seq != seq {
			s.log.Debug("dropping superseded search", "query", q)
			return false
		}
		s.state.Results = p
		return true
	})
	return nil
}
