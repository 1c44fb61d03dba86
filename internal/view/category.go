package view

import (
	"context"

	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
)

// CategoryState is the full category browse view model.
type CategoryState struct {
	Genre  tmdb.Genre // Name is empty until the genre list is cached
	Movies Presentation[[]tmdb.MovieSummary]
}

// Category browses every movie of one genre, fixed at construction.
type Category struct {
	base
	genreID int
	state   CategoryState
}

// NewCategory creates the category browse controller for genreID.
func NewCategory(deps Deps, genreID int) *Category {
	return &Category{
		base:    newBase(deps, ScreenCategory),
		genreID: genreID,
		state: CategoryState{
			Genre:  tmdb.Genre{ID: genreID},
			Movies: Loading[[]tmdb.MovieSummary](),
		},
	}
}

// GenreID returns the route parameter the controller was created with.
func (c *Category) GenreID() int { return c.genreID }

// State returns a copy of the current view model.
func (c *Category) State() CategoryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount loads the uncapped movie list for the genre. The genre name is
// taken from the cached genre list when present; it is never fetched here.
func (c *Category) Mount(parent context.Context) error {
	c.mu.Lock()
	ctx, gen := c.mountLocked(parent)
	c.state.Movies = Loading[[]tmdb.MovieSummary]()
	if genres, ok := query.Value[[]tmdb.Genre](c.deps.Cache.Get(query.GenresKey())); ok {
		for _, g := range genres {
			if g.ID == c.genreID {
				c.state.Genre = g
			}
		}
	}
	c.mu.Unlock()
	c.notify()

	return ignoreCanceled(c.load(ctx, gen, false))
}

// Retry refetches the movie list.
func (c *Category) Retry(ctx context.Context) error {
	ctx, gen, done, err := c.scoped(ctx)
	if err != nil {
		return err
	}
	defer done()
	c.apply(gen, func() bool { c.state.Movies = Loading[[]tmdb.MovieSummary](); return true })
	return ignoreCanceled(c.load(ctx, gen, true))
}

func (c *Category) load(ctx context.Context, gen uint64, refetch bool) error {
	fetch := func(ctx context.Context) ([]tmdb.MovieSummary, error) {
		return c.deps.Source.MoviesByGenre(ctx, c.genreID, 0)
	}
	p, err := load(ctx, c.deps, query.GenreMoviesKey(c.genreID), fetch, ReasonMovies, refetch)
	if err != nil {
		return err
	}
	c.apply(gen, func() bool { c.state.Movies = p; return true })
	return nil
}
