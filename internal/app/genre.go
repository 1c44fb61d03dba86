package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
	"github.com/vmunix/cinebrowse/pkg/match"
)

// ResolveGenre finds the genre named by name, tolerating case, accents and
// small typos ("acao" finds "Ação").
func ResolveGenre(genres []tmdb.Genre, name string) (tmdb.Genre, bool) {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	r := match.Best(name, names)
	if !r.Matched() {
		return tmdb.Genre{}, false
	}
	return genres[r.Index], true
}

// LookupGenre resolves arg as a numeric genre id or a genre name. Names are
// matched against the genre list, fetched through the cache.
func LookupGenre(ctx context.Context, deps view.Deps, arg string) (tmdb.Genre, error) {
	arg = strings.TrimSpace(arg)
	id, idErr := strconv.Atoi(arg)

	e, err := deps.Cache.Ensure(ctx, query.GenresKey(), query.Typed(deps.Source.Genres))
	if err != nil {
		return tmdb.Genre{}, err
	}
	genres, ok := query.Value[[]tmdb.Genre](e)

	if idErr == nil {
		for _, g := range genres {
			if g.ID == id {
				return g, nil
			}
		}
		// Unknown ids still browse; the name stays empty.
		return tmdb.Genre{ID: id}, nil
	}

	if !ok {
		return tmdb.Genre{}, fmt.Errorf("load genres: %w", e.Err)
	}
	g, found := ResolveGenre(genres, arg)
	if !found {
		return tmdb.Genre{}, fmt.Errorf("no genre matches %q", arg)
	}
	return g, nil
}
