package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vmunix/cinebrowse/internal/events"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

// Tab is one of the tab roots.
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabGenres
)

// Tabs lists the tab roots in display order.
var Tabs = []Tab{TabHome, TabSearch, TabGenres}

func (t Tab) String() string {
	switch t {
	case TabSearch:
		return "search"
	case TabGenres:
		return "genres"
	default:
		return "home"
	}
}

// Sharer hands a share text to whatever delivers it.
type Sharer func(text string) error

// ErrNoSharer is returned by Share when no Sharer is configured.
var ErrNoSharer = errors.New("sharing not available")

// Retrier is implemented by controllers that can refetch failed regions.
type Retrier interface {
	Retry(ctx context.Context) error
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithSharer sets the share target.
func WithSharer(s Sharer) NavigatorOption {
	return func(n *Navigator) {
		n.sharer = s
	}
}

// WithHomeOptions passes options to the home controller.
func WithHomeOptions(opts ...view.HomeOption) NavigatorOption {
	return func(n *Navigator) {
		n.homeOpts = append(n.homeOpts, opts...)
	}
}

// WithPosterURL sets how share texts build poster links.
func WithPosterURL(f func(size, path string) string) NavigatorOption {
	return func(n *Navigator) {
		n.posterURL = f
	}
}

// Navigator keeps one screen stack per tab and turns user intents into
// controller calls. The bottom of each stack is the tab root. Pushing a
// screen mounts it; popping unmounts it. Mounts and refetches run in the
// background; renderers follow view.changed events.
type Navigator struct {
	deps      view.Deps
	homeOpts  []view.HomeOption
	sharer    Sharer
	posterURL func(size, path string) string
	log       *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	tab    Tab
	stacks map[Tab][]view.Controller
	wg     sync.WaitGroup
}

// NewNavigator creates a navigator for a. Call Start to show the home tab.
func (a *App) NewNavigator(opts ...NavigatorOption) *Navigator {
	all := append([]NavigatorOption{
		WithHomeOptions(a.HomeOptions()...),
		WithPosterURL(a.PosterURL),
	}, opts...)
	return NewNavigator(a.Deps(), all...)
}

// NewNavigator creates a navigator over deps.
func NewNavigator(deps view.Deps, opts ...NavigatorOption) *Navigator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Theme == nil {
		deps.Theme = view.NewTheme(deps.Bus, false)
	}
	n := &Navigator{
		deps:      deps,
		posterURL: func(size, path string) string { return tmdb.ImageURL(tmdb.DefaultImageBaseURL, size, path) },
		log:       logger.With("component", "navigator"),
		stacks:    make(map[Tab][]view.Controller),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start mounts the home tab. Screens live until Close or ctx ends.
// Intents are meant to follow Start.
func (n *Navigator) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ctx, n.cancel = context.WithCancel(ctx)
	n.switchLocked(TabHome)
}

// Close unmounts every screen and waits for background work.
func (n *Navigator) Close() {
	n.mu.Lock()
	for _, stack := range n.stacks {
		for _, c := range stack {
			c.Unmount()
		}
	}
	n.stacks = make(map[Tab][]view.Controller)
	if n.cancel != nil {
		n.cancel()
	}
	n.mu.Unlock()
	n.Wait()
}

// Wait blocks until background mounts and refetches have returned.
func (n *Navigator) Wait() { n.wg.Wait() }

// Tab returns the active tab.
func (n *Navigator) Tab() Tab {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tab
}

// Current returns the screen on top of the active tab.
func (n *Navigator) Current() view.Controller {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.topLocked()
}

// Depth returns the stack height of the active tab.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stacks[n.tab])
}

// Root returns the root controller of tab, or nil before the tab was shown.
func (n *Navigator) Root(tab Tab) view.Controller {
	n.mu.Lock()
	defer n.mu.Unlock()
	if stack := n.stacks[tab]; len(stack) > 0 {
		return stack[0]
	}
	return nil
}

// SwitchTab shows tab. Switching to the active tab pops it to its root.
func (n *Navigator) SwitchTab(tab Tab) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.switchLocked(tab)
}

// SelectMovie pushes the detail screen for id.
func (n *Navigator) SelectMovie(id int64) *view.Detail {
	d := view.NewDetail(n.deps, id)
	n.push(d)
	return d
}

// SelectGenre pushes the category browse screen for id.
func (n *Navigator) SelectGenre(id int) *view.Category {
	c := view.NewCategory(n.deps, id)
	n.push(c)
	return c
}

// GoBack pops the top screen. It reports false at a tab root.
func (n *Navigator) GoBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	stack := n.stacks[n.tab]
	if len(stack) <= 1 {
		return false
	}
	top := stack[len(stack)-1]
	top.Unmount()
	n.stacks[n.tab] = stack[:len(stack)-1]
	n.log.Debug("pop", "screen", top.Screen(), "tab", n.tab.String())
	n.notifyLocked()
	return true
}

// ToggleTheme flips dark mode and returns the new value.
func (n *Navigator) ToggleTheme() bool {
	return n.deps.Theme.Toggle()
}

// SubmitSearch shows the search tab and submits query in the background.
func (n *Navigator) SubmitSearch(query string) *view.Search {
	n.mu.Lock()
	n.switchLocked(TabSearch)
	n.popToRootLocked()
	s := n.stacks[TabSearch][0].(*view.Search)
	n.mu.Unlock()

	s.SetQuery(query)
	n.goRun(s.Screen(), s.Submit)
	return s
}

// Retry refetches failed regions of the current screen in the background.
func (n *Navigator) Retry() bool {
	n.mu.Lock()
	top := n.topLocked()
	n.mu.Unlock()

	r, ok := top.(Retrier)
	if !ok {
		return false
	}
	n.goRun(top.Screen(), r.Retry)
	return true
}

// Share renders the share text for m and hands it to the Sharer.
func (n *Navigator) Share(m tmdb.MovieSummary) error {
	if n.sharer == nil {
		return ErrNoSharer
	}
	if err := n.sharer(ShareText(m, n.posterURL)); err != nil {
		return fmt.Errorf("share %d: %w", m.ID, err)
	}
	return nil
}

func (n *Navigator) push(c view.Controller) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stacks[n.tab] = append(n.stacks[n.tab], c)
	n.log.Debug("push", "screen", c.Screen(), "tab", n.tab.String())
	n.mountLocked(c)
}

func (n *Navigator) switchLocked(tab Tab) {
	if tab == n.tab && len(n.stacks[tab]) > 0 {
		n.popToRootLocked()
		return
	}
	n.tab = tab
	if len(n.stacks[tab]) == 0 {
		root := n.newRoot(tab)
		n.stacks[tab] = []view.Controller{root}
		if s, ok := root.(*view.Search); ok {
			// Search fetches nothing on mount; mounting inline lets a
			// submit follow immediately.
			_ = s.Mount(n.contextLocked())
		} else {
			n.mountLocked(root)
		}
	}
	n.notifyLocked()
}

func (n *Navigator) popToRootLocked() {
	stack := n.stacks[n.tab]
	if len(stack) <= 1 {
		return
	}
	for _, c := range slices.Backward(stack[1:]) {
		c.Unmount()
	}
	n.stacks[n.tab] = stack[:1]
	n.notifyLocked()
}

func (n *Navigator) newRoot(tab Tab) view.Controller {
	switch tab {
	case TabSearch:
		return view.NewSearch(n.deps)
	case TabGenres:
		return view.NewGenres(n.deps)
	default:
		return view.NewHome(n.deps, n.homeOpts...)
	}
}

func (n *Navigator) topLocked() view.Controller {
	stack := n.stacks[n.tab]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func (n *Navigator) contextLocked() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return n.ctx
}

func (n *Navigator) mountLocked(c view.Controller) {
	ctx := n.contextLocked()
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := c.Mount(ctx); err != nil {
			n.log.Warn("mount failed", "screen", c.Screen(), "error", err)
		}
	}()
}

func (n *Navigator) goRun(screen string, fn func(context.Context) error) {
	n.mu.Lock()
	ctx := n.contextLocked()
	n.mu.Unlock()
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := fn(ctx); err != nil && !errors.Is(err, view.ErrNotMounted) {
			n.log.Warn("screen action failed", "screen", screen, "error", err)
		}
	}()
}

// notifyLocked announces a stack change so renderers redraw the new top.
func (n *Navigator) notifyLocked() {
	if top := n.topLocked(); top != nil && n.deps.Bus != nil {
		_ = n.deps.Bus.Publish(context.Background(), events.NewViewChanged(top.Screen()))
	}
}
