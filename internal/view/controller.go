package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/vmunix/cinebrowse/internal/events"
	"github.com/vmunix/cinebrowse/internal/query"
)

// ErrNotMounted is returned by actions on a controller that is not mounted.
var ErrNotMounted = errors.New("screen not mounted")

// Screen names, used as the subject of view.changed events.
const (
	ScreenHome     = "home"
	ScreenSearch   = "search"
	ScreenGenres   = "genres"
	ScreenCategory = "category"
	ScreenDetail   = "detail"
)

// Controller is the lifecycle every screen controller shares.
type Controller interface {
	Screen() string
	Mount(ctx context.Context) error
	Unmount()
}

// base carries the mount lifecycle and change notification.
// mu guards the embedding controller's state as well.
type base struct {
	deps   Deps
	screen string
	log    *slog.Logger

	mu     sync.Mutex
	ctx    context.Context // current mount; nil before Mount
	cancel context.CancelFunc
	gen    uint64 // mount generation; results tagged with an older one are dropped
}

func newBase(deps Deps, screen string) base {
	return base{deps: deps, screen: screen, log: deps.logger(screen)}
}

func (b *base) Screen() string { return b.screen }

// mountLocked starts a new mount, ending any previous one.
func (b *base) mountLocked(parent context.Context) (context.Context, uint64) {
	if b.cancel != nil {
		b.cancel()
	}
	b.ctx, b.cancel = context.WithCancel(parent)
	b.gen++
	return b.ctx, b.gen
}

// Unmount ends the current mount. Fetches that settle afterwards are not
// applied and periodic work started by Mount stops.
func (b *base) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}

// Mounted reports whether the controller has a live mount.
func (b *base) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _, ok := b.currentLocked()
	return ok
}

func (b *base) liveLocked(gen uint64) bool {
	return gen == b.gen && b.ctx != nil && b.ctx.Err() == nil
}

func (b *base) currentLocked() (context.Context, uint64, bool) {
	if b.ctx == nil || b.ctx.Err() != nil {
		return nil, 0, false
	}
	return b.ctx, b.gen, true
}

// scoped returns a context that ends with either ctx or the current mount,
// plus the mount generation results must be tagged with.
func (b *base) scoped(ctx context.Context) (context.Context, uint64, func(), error) {
	b.mu.Lock()
	mctx, gen, ok := b.currentLocked()
	b.mu.Unlock()
	if !ok {
		return nil, 0, nil, ErrNotMounted
	}
	wctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(mctx, cancel)
	return wctx, gen, func() { stop(); cancel() }, nil
}

func (b *base) notify() {
	if b.deps.Bus == nil {
		return
	}
	if err := b.deps.Bus.Publish(context.Background(), events.NewViewChanged(b.screen)); err != nil {
		b.log.Warn("publish view change failed", "error", err)
	}
}

// ignoreCanceled drops errors caused by the mount ending.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// apply runs mutate under the lock if gen is still the live mount, and
// announces the change. It reports whether the mount was live.
func (b *base) apply(gen uint64, mutate func() bool) bool {
	b.mu.Lock()
	if !b.liveLocked(gen) {
		b.mu.Unlock()
		b.log.Debug("dropping late result")
		return false
	}
	changed := mutate()
	b.mu.Unlock()

	if changed {
		b.notify()
	}
	return true
}

// load resolves key through the cache and maps the entry to a presentation.
// With refetch set it forces a new fetch. The error is non-nil only when the
// wait was abandoned or the cache is closed.
func load[T any](ctx context.Context, d Deps, key query.Key, fetch func(context.Context) (T, error), reason string, refetch bool) (Presentation[T], error) {
	var (
		e   query.Entry
		err error
	)
	if refetch {
		e, err = d.Cache.Refetch(ctx, key, query.Typed(fetch))
	} else {
		e, err = d.Cache.Ensure(ctx, key, query.Typed(fetch))
	}
	if err != nil {
		return Presentation[T]{}, err
	}
	return FromEntry[T](e, reason), nil
}
