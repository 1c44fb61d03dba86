package view

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
)

// DetailState is the movie detail view model. Detail and cast are
// independent regions: either may fail while the other is shown.
type DetailState struct {
	MovieID int64
	Detail  Presentation[*tmdb.MovieDetail]
	Cast    Presentation[[]tmdb.CastMember]
}

// Detail shows one movie, fixed at construction.
type Detail struct {
	base
	movieID int64
	state   DetailState
}

// NewDetail creates the detail controller for movieID.
func NewDetail(deps Deps, movieID int64) *Detail {
	return &Detail{
		base:    newBase(deps, ScreenDetail),
		movieID: movieID,
		state:   initialDetailState(movieID),
	}
}

func initialDetailState(id int64) DetailState {
	return DetailState{
		MovieID: id,
		Detail:  Loading[*tmdb.MovieDetail](),
		Cast:    Loading[[]tmdb.CastMember](),
	}
}

// MovieID returns the route parameter the controller was created with.
func (d *Detail) MovieID() int64 { return d.movieID }

// State returns a copy of the current view model.
func (d *Detail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Mount loads detail and cast concurrently, applying each as it settles.
func (d *Detail) Mount(parent context.Context) error {
	d.mu.Lock()
	ctx, gen := d.mountLocked(parent)
	d.state = initialDetailState(d.movieID)
	d.mu.Unlock()
	d.notify()

	return ignoreCanceled(d.load(ctx, gen, true, true, false))
}

// Retry refetches only the regions that failed.
func (d *Detail) Retry(ctx context.Context) error {
	ctx, gen, done, err := d.scoped(ctx)
	if err != nil {
		return err
	}
	defer done()

	var detail, cast bool
	d.apply(gen, func() bool {
		if d.state.Detail.Failed() {
			detail = true
			d.state.Detail = Loading[*tmdb.MovieDetail]()
		}
		if d.state.Cast.Failed() {
			cast = true
			d.state.Cast = Loading[[]tmdb.CastMember]()
		}
		return detail || cast
	})
	return ignoreCanceled(d.load(ctx, gen, detail, cast, true))
}

func (d *Detail) load(ctx context.Context, gen uint64, detail, cast, refetch bool) error {
	src := d.deps.Source
	var g errgroup.Group
	if detail {
		g.Go(func() error {
			fetch := func(ctx context.Context) (*tmdb.MovieDetail, error) {
				return src.MovieDetail(ctx, d.movieID)
			}
			p, err := load(ctx, d.deps, query.DetailKey(d.movieID), fetch, ReasonDetail, refetch)
			if err != nil {
				return err
			}
			d.apply(gen, func() bool { d.state.Detail = p; return true })
			return nil
		})
	}
	if cast {
		g.Go(func() error {
			fetch := func(ctx context.Context) ([]tmdb.CastMember, error) {
				return src.MovieCast(ctx, d.movieID)
			}
			p, err := load(ctx, d.deps, query.CastKey(d.movieID), fetch, ReasonCast, refetch)
			if err != nil {
				return err
			}
			d.apply(gen, func() bool { d.state.Cast = p; return true })
			return nil
		})
	}
	return g.Wait()
}
