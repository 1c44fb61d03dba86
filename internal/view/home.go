package view

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
)

// DefaultRotationInterval is how often the featured carousel advances.
const DefaultRotationInterval = 10 * time.Second

// TickerFunc starts a periodic ticker and returns its channel and stop func.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// CategoryRow is one genre preview row on the home screen.
type CategoryRow struct {
	Genre  tmdb.Genre
	Movies Presentation[[]tmdb.MovieSummary]
}

// HomeState is the home screen view model.
type HomeState struct {
	Popular       Presentation[[]tmdb.MovieSummary]
	Upcoming      Presentation[[]tmdb.MovieSummary]
	Genres        Presentation[[]tmdb.Genre]
	Rows          []CategoryRow // one per genre, in genre-list order
	FeaturedIndex int
}

// Featured returns the movie currently shown in the carousel.
func (s HomeState) Featured() (tmdb.MovieSummary, bool) {
	if !s.Popular.Ready() || len(s.Popular.Value) == 0 {
		return tmdb.MovieSummary{}, false
	}
	return s.Popular.Value[s.FeaturedIndex%len(s.Popular.Value)], true
}

func (s *HomeState) rotate() bool {
	n := len(s.Popular.Value)
	if !s.Popular.Ready() || n == 0 {
		return false
	}
	s.FeaturedIndex = (s.FeaturedIndex + 1) % n
	return true
}

func (s *HomeState) setPopular(p Presentation[[]tmdb.MovieSummary]) {
	s.Popular = p
	if s.FeaturedIndex >= len(p.Value) {
		s.FeaturedIndex = 0
	}
}

func (s *HomeState) setRow(genreID int, p Presentation[[]tmdb.MovieSummary]) bool {
	for i := range s.Rows {
		if s.Rows[i].Genre.ID == genreID {
			s.Rows[i].Movies = p
			return true
		}
	}
	return false
}

// HomeOption configures a Home controller.
type HomeOption func(*Home)

// WithRotationInterval sets how often the featured carousel advances.
func WithRotationInterval(d time.Duration) HomeOption {
	return func(h *Home) {
		if d > 0 {
			h.interval = d
		}
	}
}

// WithPreviewSize caps each genre row. Non-positive values keep the default.
func WithPreviewSize(n int) HomeOption {
	return func(h *Home) {
		if n > 0 {
			h.previewSize = n
		}
	}
}

// WithTicker replaces the ticker driving the carousel (for testing).
func WithTicker(f TickerFunc) HomeOption {
	return func(h *Home) {
		h.newTicker = f
	}
}

// Home loads popular, upcoming and the genre list, then one preview row per
// genre, and rotates the featured popular movie.
type Home struct {
	base
	interval    time.Duration
	previewSize int
	newTicker   TickerFunc
	state       HomeState
}

// NewHome creates the home screen controller.
func NewHome(deps Deps, opts ...HomeOption) *Home {
	h := &Home{
		base:        newBase(deps, ScreenHome),
		interval:    DefaultRotationInterval,
		previewSize: tmdb.PreviewLimit,
		newTicker:   realTicker,
		state:       initialHomeState(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func initialHomeState() HomeState {
	return HomeState{
		Popular:  Loading[[]tmdb.MovieSummary](),
		Upcoming: Loading[[]tmdb.MovieSummary](),
		Genres:   Loading[[]tmdb.Genre](),
	}
}

// State returns a copy of the current view model.
func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Rows = slices.Clone(h.state.Rows)
	return s
}

// Mount starts the carousel and loads every home key concurrently. It
// returns once all keys have settled or the mount ends.
func (h *Home) Mount(parent context.Context) error {
	h.mu.Lock()
	ctx, gen := h.mountLocked(parent)
	h.state = initialHomeState()
	h.mu.Unlock()
	h.notify()

	h.startRotation(ctx, gen)
	return ignoreCanceled(h.loadAll(ctx, gen, nil))
}

// Retry refetches every region that failed. Failed regions and rows show
// Loading until their refetch settles.
func (h *Home) Retry(ctx context.Context) error {
	ctx, gen, done, err := h.scoped(ctx)
	if err != nil {
		return err
	}
	defer done()

	plan := &retryPlan{rows: make(map[int]bool)}
	h.apply(gen, func() bool {
		plan.mark(&h.state)
		return true
	})
	return ignoreCanceled(h.loadAll(ctx, gen, plan))
}

// retryPlan records which home regions failed before a retry reset them.
type retryPlan struct {
	popular, upcoming, genres bool
	rows                      map[int]bool
}

// mark captures the failed regions of s and moves them to Loading.
func (r *retryPlan) mark(s *HomeState) {
	if s.Popular.Failed() {
		r.popular = true
		s.Popular = Loading[[]tmdb.MovieSummary]()
	}
	if s.Upcoming.Failed() {
		r.upcoming = true
		s.Upcoming = Loading[[]tmdb.MovieSummary]()
	}
	if s.Genres.Failed() {
		r.genres = true
		s.Genres = Loading[[]tmdb.Genre]()
	}
	for i := range s.Rows {
		if s.Rows[i].Movies.Failed() {
			r.rows[s.Rows[i].Genre.ID] = true
			s.Rows[i].Movies = Loading[[]tmdb.MovieSummary]()
		}
	}
}

// Tick advances the carousel once. It does nothing when unmounted or when
// the popular list is empty.
func (h *Home) Tick() {
	h.mu.Lock()
	_, gen, ok := h.currentLocked()
	h.mu.Unlock()
	if !ok {
		return
	}
	h.apply(gen, h.state.rotate)
}

func (h *Home) startRotation(ctx context.Context, gen uint64) {
	ticks, stop := h.newTicker(h.interval)
	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
				h.apply(gen, h.state.rotate)
			}
		}
	}()
}

// loadAll resolves the three top-level keys concurrently. With a retry
// plan, only the regions it marked are refetched.
func (h *Home) loadAll(ctx context.Context, gen uint64, plan *retryPlan) error {
	src := h.deps.Source
	retry := plan != nil

	var g errgroup.Group
	if !retry || plan.popular {
		g.Go(func() error {
			p, err := load(ctx, h.deps, query.PopularKey(), src.Popular, ReasonMovies, retry)
			if err != nil {
				return err
			}
			h.apply(gen, func() bool { h.state.setPopular(p); return true })
			return nil
		})
	}
	if !retry || plan.upcoming {
		g.Go(func() error {
			p, err := load(ctx, h.deps, query.UpcomingKey(), src.Upcoming, ReasonMovies, retry)
			if err != nil {
				return err
			}
			h.apply(gen, func() bool { h.state.Upcoming = p; return true })
			return nil
		})
	}
	g.Go(func() error {
		return h.loadGenres(ctx, gen, plan)
	})
	return g.Wait()
}

// loadGenres resolves the genre list and then fans out one preview key per
// genre. No preview key is requested before the list resolves. With a
// retry plan, rows it marked are refetched and other rows are kept.
func (h *Home) loadGenres(ctx context.Context, gen uint64, plan *retryPlan) error {
	refetchList := plan != nil && plan.genres
	p, err := load(ctx, h.deps, query.GenresKey(), h.deps.Source.Genres, ReasonGenres, refetchList)
	if err != nil {
		return err
	}

	type rowLoad struct {
		genre   tmdb.Genre
		refetch bool
	}
	var pending []rowLoad
	live := h.apply(gen, func() bool {
		h.state.Genres = p
		if !p.Ready() {
			h.state.Rows = nil
			return true
		}
		rows := make([]CategoryRow, 0, len(p.Value))
		for _, g := range p.Value {
			row := CategoryRow{Genre: g, Movies: Loading[[]tmdb.MovieSummary]()}
			old, ok := findRow(h.state.Rows, g.ID)
			switch {
			case !ok:
				pending = append(pending, rowLoad{genre: g})
			case plan != nil && plan.rows[g.ID]:
				pending = append(pending, rowLoad{genre: g, refetch: true})
			default:
				row.Movies = old.Movies
			}
			rows = append(rows, row)
		}
		h.state.Rows = rows
		return true
	})
	if !live || !p.Ready() {
		return nil
	}

	var g errgroup.Group
	for _, rl := range pending {
		g.Go(func() error {
			fetch := func(ctx context.Context) ([]tmdb.MovieSummary, error) {
				return h.deps.Source.MoviesByGenre(ctx, rl.genre.ID, h.previewSize)
			}
			rp, err := load(ctx, h.deps, query.GenrePreviewKey(rl.genre.ID), fetch, ReasonMovies, rl.refetch)
			if err != nil {
				return err
			}
			h.apply(gen, func() bool { return h.state.setRow(rl.genre.ID, rp) })
			return nil
		})
	}
	return g.Wait()
}

func findRow(rows []CategoryRow, genreID int) (CategoryRow, bool) {
	for _, r := range rows {
		if r.Genre.ID == genreID {
			return r, true
		}
	}
	return CategoryRow{}, false
}
