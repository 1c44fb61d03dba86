// Package view holds the per-screen view-state controllers.
//
// A controller keeps a screen's local state, derives the cache keys that
// state needs, and turns cache entries into presentation states. Every state
// change is announced with an events.ViewChanged event; renderers re-read
// State() when notified.
package view

import (
	"context"
	"log/slog"

	"github.com/vmunix/cinebrowse/internal/events"
	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks . Source

// Source is the set of fetch functions the controllers use.
// *tmdb.Client implements it.
type Source interface {
	MovieDetail(ctx context.Context, id int64) (*tmdb.MovieDetail, error)
	MovieCast(ctx context.Context, id int64) ([]tmdb.CastMember, error)
	Search(ctx context.Context, query string) ([]tmdb.MovieSummary, error)
	Popular(ctx context.Context) ([]tmdb.MovieSummary, error)
	Upcoming(ctx context.Context) ([]tmdb.MovieSummary, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	MoviesByGenre(ctx context.Context, genreID int, limit int) ([]tmdb.MovieSummary, error)
}

var _ Source = (*tmdb.Client)(nil)

// Deps are the process-wide collaborators injected into every controller.
type Deps struct {
	Cache  *query.Cache
	Source Source
	Bus    *events.Bus // optional
	Theme  *Theme      // optional
	Logger *slog.Logger
}

func (d Deps) logger(screen string) *slog.Logger {
	l := d.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "view", "screen", screen)
}
