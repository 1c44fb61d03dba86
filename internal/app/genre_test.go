package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/cinebrowse/internal/tmdb"
)

var ptGenres = []tmdb.Genre{
	{ID: 28, Name: "Ação"},
	{ID: 12, Name: "Aventura"},
	{ID: 35, Name: "Comédia"},
	{ID: 878, Name: "Ficção científica"},
}

func TestResolveGenre(t *testing.T) {
	g, ok := ResolveGenre(ptGenres, "acao")
	require.True(t, ok)
	assert.Equal(t, 28, g.ID)

	g, ok = ResolveGenre(ptGenres, "Comedia")
	require.True(t, ok)
	assert.Equal(t, 35, g.ID)

	_, ok = ResolveGenre(ptGenres, "western")
	assert.False(t, ok)

	_, ok = ResolveGenre(nil, "acao")
	assert.False(t, ok)
}

func TestLookupGenre(t *testing.T) {
	a, src := newTestApp(t)
	src.EXPECT().Genres(gomock.Any()).Return(ptGenres, nil).Times(1)
	ctx := context.Background()

	g, err := LookupGenre(ctx, a.Deps(), "878")
	require.NoError(t, err)
	assert.Equal(t, tmdb.Genre{ID: 878, Name: "Ficção científica"}, g)

	g, err = LookupGenre(ctx, a.Deps(), " aventura ")
	require.NoError(t, err)
	assert.Equal(t, 12, g.ID)

	g, err = LookupGenre(ctx, a.Deps(), "99")
	require.NoError(t, err)
	assert.Equal(t, tmdb.Genre{ID: 99}, g, "unknown ids pass through")

	_, err = LookupGenre(ctx, a.Deps(), "western")
	assert.ErrorContains(t, err, `no genre matches "western"`)
}

func TestLookupGenre_ListFailure(t *testing.T) {
	a, src := newTestApp(t)
	src.EXPECT().Genres(gomock.Any()).Return(nil, &tmdb.RemoteError{Resource: "genres", StatusCode: 401, Status: "401 Unauthorized"})

	_, err := LookupGenre(context.Background(), a.Deps(), "acao")
	require.Error(t, err)
	assert.ErrorContains(t, err, "load genres")
}
