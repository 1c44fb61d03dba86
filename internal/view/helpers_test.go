package view_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/cinebrowse/internal/events"
	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
	"github.com/vmunix/cinebrowse/internal/view/mocks"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	src   *mocks.MockSource
	cache *query.Cache
	bus   *events.Bus
	deps  view.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	bus := events.NewBus(testLogger())
	cache := query.New(query.WithBus(bus), query.WithLogger(testLogger()))
	t.Cleanup(func() {
		require.NoError(t, cache.Close())
		require.NoError(t, bus.Close())
	})

	src := mocks.NewMockSource(ctrl)
	return &fixture{
		src:   src,
		cache: cache,
		bus:   bus,
		deps: view.Deps{
			Cache:  cache,
			Source: src,
			Bus:    bus,
			Theme:  view.NewTheme(bus, false),
			Logger: testLogger(),
		},
	}
}

func (f *fixture) keys() []string {
	var out []string
	for _, k := range f.cache.Keys() {
		out = append(out, k.String())
	}
	return out
}

func movies(prefix string, n int) []tmdb.MovieSummary {
	out := make([]tmdb.MovieSummary, n)
	for i := range out {
		out[i] = tmdb.MovieSummary{ID: int64(i + 1), Title: fmt.Sprintf("%s %d", prefix, i+1)}
	}
	return out
}

// gate blocks a fetch until released or until the cache cancels it.
type gate chan struct{}

func (g gate) wait(ctx context.Context) error {
	select {
	case <-g:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func remoteErr(resource string) error {
	return &tmdb.RemoteError{Resource: resource, StatusCode: 500, Status: "500 Internal Server Error"}
}
