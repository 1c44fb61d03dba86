package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/cinebrowse/internal/config"
	"github.com/vmunix/cinebrowse/internal/view/mocks"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.TMDB.APIKey = "test-key"
	return cfg
}

func newTestApp(t *testing.T) (*App, *mocks.MockSource) {
	t.Helper()
	src := mocks.NewMockSource(gomock.NewController(t))
	a := New(testConfig(), WithSource(src), WithLogger(testLogger()))
	t.Cleanup(func() { require.NoError(t, a.Close()) })
	return a, src
}
