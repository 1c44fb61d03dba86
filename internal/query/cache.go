// Package query is the process-wide cache of in-flight and completed fetches.
//
// Entries are keyed by (resource, params). Concurrent consumers of one key
// share a single fetch; the most recently started fetch for a key owns its
// entry, and results of superseded fetches are discarded.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vmunix/cinebrowse/internal/events"
)

// ErrClosed is returned by Ensure and Refetch after Close.
var ErrClosed = errors.New("query cache closed")

// FetchFunc performs one fetch for a key. The context is owned by the cache
// and is canceled only when the cache closes.
type FetchFunc func(ctx context.Context) (any, error)

// Typed adapts a typed fetch function to a FetchFunc.
func Typed[T any](fn func(context.Context) (T, error)) FetchFunc {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

type call struct {
	gen     uint64
	refetch bool
	done    chan struct{}
}

type slot struct {
	entry Entry
	call  *call  // in-flight fetch that owns the entry; nil unless loading
	gen   uint64 // last started generation
}

// Cache memoizes fetches by key.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*slot
	bus     *events.Bus
	log     *slog.Logger
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithBus publishes entry transitions on bus.
func WithBus(bus *events.Bus) Option {
	return func(c *Cache) {
		c.bus = bus
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		c.log = log.With("component", "query")
	}
}

// WithClock overrides the clock used for FetchedAt (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache. Call Close at teardown.
func New(opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		entries: make(map[Key]*slot),
		log:     slog.Default().With("component", "query"),
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current entry for key without fetching.
// Unknown keys report StatusIdle.
func (c *Cache) Get(key Key) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[key]
	if !ok {
		return Entry{Key: key, Status: StatusIdle}
	}
	return s.entry
}

// Ensure returns the settled entry for key, starting a fetch only when the
// entry is idle and joining the in-flight fetch when it is loading.
// The returned error is non-nil only when ctx ends first or the cache is closed;
// fetch failures are reported in Entry.Err.
func (c *Cache) Ensure(ctx context.Context, key Key, fn FetchFunc) (Entry, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Entry{Key: key}, ErrClosed
	}

	s := c.slotLocked(key)
	switch {
	case s.entry.Status.Settled():
		e := s.entry
		c.mu.Unlock()
		c.log.Debug("cache hit", "key", key.String(), "status", e.Status.String())
		return e, nil
	case s.call == nil:
		c.startLocked(key, s, fn, false)
	default:
		c.log.Debug("joining in-flight fetch", "key", key.String(), "generation", s.call.gen)
	}
	c.mu.Unlock()

	return c.wait(ctx, key)
}

// Refetch starts a new fetch for key regardless of its status and waits for
// the entry to settle. If another refetch starts meanwhile, the later one wins.
func (c *Cache) Refetch(ctx context.Context, key Key, fn FetchFunc) (Entry, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Entry{Key: key}, ErrClosed
	}
	s := c.slotLocked(key)
	c.startLocked(key, s, fn, true)
	c.mu.Unlock()

	return c.wait(ctx, key)
}

// Invalidate resets key to idle and discards its data. A fetch still in
// flight for the key will not be applied, and Ensure callers waiting on it
// return the idle entry. Callers that need data must Ensure the key again.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[key]
	if !ok || s.entry.Status == StatusIdle {
		return
	}
	s.entry = Entry{Key: key, Status: StatusIdle}
	s.call = nil

	c.publishLocked(&events.EntryInvalidated{
		BaseEvent: events.NewBaseEvent(events.EventEntryInvalidated, events.EntityQuery, key.String()),
		Resource:  string(key.Resource),
	})
}

// Keys returns every key whose entry is not idle, sorted.
func (c *Cache) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]Key, 0, len(c.entries))
	for k, s := range c.entries {
		if s.entry.Status != StatusIdle {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Close cancels in-flight fetches and waits for them to return.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	return nil
}

func (c *Cache) slotLocked(key Key) *slot {
	s, ok := c.entries[key]
	if !ok {
		s = &slot{entry: Entry{Key: key, Status: StatusIdle}}
		c.entries[key] = s
	}
	return s
}

// startLocked moves the entry to loading and launches a fetch that owns it.
// Data from a previous success stays readable while the refetch runs.
func (c *Cache) startLocked(key Key, s *slot, fn FetchFunc, refetch bool) {
	s.gen++
	cl := &call{gen: s.gen, refetch: refetch, done: make(chan struct{})}
	s.call = cl
	s.entry = Entry{Key: key, Status: StatusLoading, Data: s.entry.Data, FetchedAt: s.entry.FetchedAt}

	c.publishLocked(&events.EntryLoading{
		BaseEvent:  events.NewBaseEvent(events.EventEntryLoading, events.EntityQuery, key.String()),
		Resource:   string(key.Resource),
		Generation: cl.gen,
		Refetch:    refetch,
	})

	c.wg.Add(1)
	go c.run(key, cl, fn)
}

func (c *Cache) run(key Key, cl *call, fn FetchFunc) {
	defer c.wg.Done()
	defer close(cl.done)

	start := time.Now()
	data, err := safeFetch(c.ctx, fn)

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[key]
	if !ok || s.call != cl {
		c.log.Debug("discarding superseded result", "key", key.String(), "generation", cl.gen)
		return
	}
	s.call = nil

	if err != nil {
		s.entry = Entry{Key: key, Status: StatusError, Err: err, FetchedAt: c.now()}
		c.log.Debug("fetch failed", "key", key.String(), "generation", cl.gen, "error", err)
		c.publishLocked(&events.EntryFailed{
			BaseEvent:  events.NewBaseEvent(events.EventEntryFailed, events.EntityQuery, key.String()),
			Resource:   string(key.Resource),
			Generation: cl.gen,
			Error:      err.Error(),
		})
		return
	}

	s.entry = Entry{Key: key, Status: StatusSuccess, Data: data, FetchedAt: c.now()}
	c.publishLocked(&events.EntrySucceeded{
		BaseEvent:  events.NewBaseEvent(events.EventEntrySucceeded, events.EntityQuery, key.String()),
		Resource:   string(key.Resource),
		Generation: cl.gen,
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// wait blocks until key has no fetch in flight, following refetches that
// supersede the one it started waiting on.
func (c *Cache) wait(ctx context.Context, key Key) (Entry, error) {
	for {
		c.mu.Lock()
		s, ok := c.entries[key]
		if !ok {
			c.mu.Unlock()
			return Entry{Key: key, Status: StatusIdle}, nil
		}
		if s.call == nil {
			e := s.entry
			c.mu.Unlock()
			return e, nil
		}
		cl := s.call
		c.mu.Unlock()

		select {
		case <-cl.done:
		case <-ctx.Done():
			return c.Get(key), ctx.Err()
		}
	}
}

// publishLocked runs under c.mu so subscribers see transitions in order.
// Bus delivery is non-blocking.
func (c *Cache) publishLocked(e events.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(context.Background(), e); err != nil {
		c.log.Warn("publish failed", "type", e.EventType(), "error", err)
	}
}

func safeFetch(ctx context.Context, fn FetchFunc) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return fn(ctx)
}
