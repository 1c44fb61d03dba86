// Package app owns the process-wide collaborators (cache, bus, theme and
// TMDB client) and the navigator that drives the screen controllers.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/cinebrowse/internal/config"
	"github.com/vmunix/cinebrowse/internal/events"
	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

// App is created once at startup and closed at exit.
type App struct {
	cfg    *config.Config
	source view.Source
	images func(size, path string) string
	bus    *events.Bus
	cache  *query.Cache
	theme  *view.Theme
	logger *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithSource replaces the TMDB client (for testing).
func WithSource(src view.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithLogger sets the root logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New wires the cache, bus, theme and client from cfg.
func New(cfg *config.Config, opts ...Option) *App {
	a := &App{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}

	if a.source == nil {
		client := tmdb.NewClient(cfg.TMDB.APIKey,
			tmdb.WithBaseURL(cfg.TMDB.BaseURL),
			tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
			tmdb.WithLanguage(cfg.TMDB.Language),
			tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
			tmdb.WithLogger(a.logger),
		)
		a.source = client
		a.images = client.PosterURL
	} else {
		base := cfg.TMDB.ImageBaseURL
		a.images = func(size, path string) string { return tmdb.ImageURL(base, size, path) }
	}

	a.bus = events.NewBus(a.logger.With("component", "bus"))
	a.cache = query.New(query.WithBus(a.bus), query.WithLogger(a.logger))
	a.theme = view.NewTheme(a.bus, cfg.UI.DarkMode)
	return a
}

func (a *App) Config() *config.Config { return a.cfg }
func (a *App) Bus() *events.Bus       { return a.bus }
func (a *App) Cache() *query.Cache    { return a.cache }
func (a *App) Theme() *view.Theme     { return a.theme }
func (a *App) Logger() *slog.Logger   { return a.logger }

// PosterURL builds an image URL on the configured image host.
func (a *App) PosterURL(size, path string) string { return a.images(size, path) }

// Deps returns the collaborators injected into every controller.
func (a *App) Deps() view.Deps {
	return view.Deps{
		Cache:  a.cache,
		Source: a.source,
		Bus:    a.bus,
		Theme:  a.theme,
		Logger: a.logger,
	}
}

// HomeOptions are the configured home screen options.
func (a *App) HomeOptions() []view.HomeOption {
	return []view.HomeOption{
		view.WithRotationInterval(a.cfg.UI.RotationInterval),
		view.WithPreviewSize(a.cfg.UI.PreviewSize),
	}
}

// Run starts the background components and blocks until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	logSub := events.NewLogSubscriber(a.bus, a.logger)
	g.Go(func() error {
		logSub.Run(ctx)
		return ctx.Err()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close cancels in-flight fetches and closes the bus.
func (a *App) Close() error {
	return errors.Join(a.cache.Close(), a.bus.Close())
}
