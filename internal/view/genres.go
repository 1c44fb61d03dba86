package view

import (
	"context"

	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
)

// GenresState is the category list view model.
type GenresState struct {
	Genres Presentation[[]tmdb.Genre]
}

// Genres lists the browsable categories.
type Genres struct {
	base
	state GenresState
}

// NewGenres creates the category list controller.
func NewGenres(deps Deps) *Genres {
	return &Genres{
		base:  newBase(deps, ScreenGenres),
		state: GenresState{Genres: Loading[[]tmdb.Genre]()},
	}
}

// State returns a copy of the current view model.
func (c *Genres) State() GenresState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount loads the genre list.
func (c *Genres) Mount(parent context.Context) error {
	c.mu.Lock()
	ctx, gen := c.mountLocked(parent)
	c.state = GenresState{Genres: Loading[[]tmdb.Genre]()}
	c.mu.Unlock()
	c.notify()

	return ignoreCanceled(c.load(ctx, gen, false))
}

// Retry refetches the genre list.
func (c *Genres) Retry(ctx context.Context) error {
	ctx, gen, done, err := c.scoped(ctx)
	if err != nil {
		return err
	}
	defer done()
	c.apply(gen, func() bool { c.state.Genres = Loading[[]tmdb.Genre](); return true })
	return ignoreCanceled(c.load(ctx, gen, true))
}

func (c *Genres) load(ctx context.Context, gen uint64, refetch bool) error {
	p, err := load(ctx, c.deps, query.GenresKey(), c.deps.Source.Genres, ReasonGenres, refetch)
	if err != nil {
		return err
	}
	c.apply(gen, func() bool { c.state.Genres = p; return true })
	return nil
}
