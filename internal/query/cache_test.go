package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cinebrowse/internal/events"
)

// blockingFetch returns a fetch func that counts calls and waits for release.
type blockingFetch struct {
	calls   atomic.Int32
	release chan struct{}
	value   any
	err     error
}

func newBlockingFetch(value any, err error) *blockingFetch {
	return &blockingFetch{release: make(chan struct{}), value: value, err: err}
}

func (b *blockingFetch) fn(ctx context.Context) (any, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
		return b.value, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func constFetch(calls *atomic.Int32, value any, err error) FetchFunc {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return value, err
	}
}

func waitLoading(t *testing.T, c *Cache, key Key) {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Get(key).Status == StatusLoading
	}, time.Second, time.Millisecond)
}

func TestCache_GetUnknownIsIdle(t *testing.T) {
	c := New()
	defer c.Close()

	e := c.Get(PopularKey())
	assert.Equal(t, StatusIdle, e.Status)
	assert.Equal(t, PopularKey(), e.Key)
	assert.Nil(t, e.Data)
	assert.Empty(t, c.Keys(), "Get must not create entries")
}

func TestCache_EnsureFetchesOnce(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fn := constFetch(&calls, []string{"a", "b"}, nil)

	e, err := c.Ensure(ctx, PopularKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.False(t, e.FetchedAt.IsZero())

	got, ok := Value[[]string](e)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	// Second call is served from cache
	e, err = c.Ensure(ctx, PopularKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Equal(t, int32(1), calls.Load(), "should use cache, not fetch again")
}

func TestCache_EnsureConcurrentSharesOneFetch(t *testing.T) {
	c := New()
	defer c.Close()

	bf := newBlockingFetch(42, nil)
	key := DetailKey(550)

	const callers = 50
	results := make([]Entry, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := c.Ensure(context.Background(), key, bf.fn)
			assert.NoError(t, err)
			results[i] = e
		}(i)
	}

	waitLoading(t, c, key)
	close(bf.release)
	wg.Wait()

	assert.Equal(t, int32(1), bf.calls.Load(), "exactly one underlying fetch")
	for _, e := range results {
		assert.Equal(t, StatusSuccess, e.Status)
		assert.Equal(t, 42, e.Data)
	}
}

func TestCache_EnsureErrorIsSticky(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	var calls atomic.Int32
	fn := constFetch(&calls, nil, boom)

	e, err := c.Ensure(ctx, CastKey(550), fn)
	require.NoError(t, err, "fetch errors live in the entry")
	assert.Equal(t, StatusError, e.Status)
	assert.ErrorIs(t, e.Err, boom)
	assert.Nil(t, e.Data)

	// No automatic retry
	e, err = c.Ensure(ctx, CastKey(550), fn)
	require.NoError(t, err)
	assert.Equal(t, StatusError, e.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCache_RefetchAlwaysFetches(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fail := constFetch(&calls, nil, errors.New("down"))
	ok := constFetch(&calls, "fresh", nil)

	e, err := c.Ensure(ctx, SearchKey("matrix"), fail)
	require.NoError(t, err)
	require.Equal(t, StatusError, e.Status)

	e, err = c.Refetch(ctx, SearchKey("matrix"), ok)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Equal(t, "fresh", e.Data)
	assert.NoError(t, e.Err)

	e, err = c.Refetch(ctx, SearchKey("matrix"), ok)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCache_RefetchLastInitiatedWins(t *testing.T) {
	c := New()
	defer c.Close()
	key := SearchKey("dune")

	slow := newBlockingFetch("stale", nil)
	fast := newBlockingFetch("latest", nil)

	slowDone := make(chan Entry, 1)
	go func() {
		e, _ := c.Refetch(context.Background(), key, slow.fn)
		slowDone <- e
	}()
	require.Eventually(t, func() bool { return slow.calls.Load() == 1 }, time.Second, time.Millisecond)

	fastDone := make(chan Entry, 1)
	go func() {
		e, _ := c.Refetch(context.Background(), key, fast.fn)
		fastDone <- e
	}()
	require.Eventually(t, func() bool { return fast.calls.Load() == 1 }, time.Second, time.Millisecond)

	// Latest completes first, then the stale one arrives late.
	close(fast.release)
	e := <-fastDone
	assert.Equal(t, "latest", e.Data)

	close(slow.release)
	e = <-slowDone
	assert.Equal(t, "latest", e.Data, "late result of a superseded fetch is discarded")
	assert.Equal(t, "latest", c.Get(key).Data)
}

func TestCache_RefetchSupersedesWhileEarlierStillLoading(t *testing.T) {
	c := New()
	defer c.Close()
	key := SearchKey("alien")

	first := newBlockingFetch("first", nil)
	second := newBlockingFetch(nil, errors.New("second failed"))

	firstDone := make(chan Entry, 1)
	go func() {
		e, _ := c.Ensure(context.Background(), key, first.fn)
		firstDone <- e
	}()
	waitLoading(t, c, key)

	secondDone := make(chan Entry, 1)
	go func() {
		e, _ := c.Refetch(context.Background(), key, second.fn)
		secondDone <- e
	}()
	require.Eventually(t, func() bool { return second.calls.Load() == 1 }, time.Second, time.Millisecond)

	// Earlier fetch resolves first but no longer owns the entry.
	close(first.release)
	assert.Equal(t, StatusLoading, c.Get(key).Status)

	close(second.release)
	e := <-secondDone
	assert.Equal(t, StatusError, e.Status)
	assert.Nil(t, e.Data)

	e = <-firstDone
	assert.Equal(t, StatusError, e.Status, "waiters follow the superseding fetch")
}

func TestCache_EnsureJoinsRefetch(t *testing.T) {
	c := New()
	defer c.Close()
	key := PopularKey()

	bf := newBlockingFetch("v2", nil)
	var calls atomic.Int32

	go func() { _, _ = c.Refetch(context.Background(), key, bf.fn) }()
	waitLoading(t, c, key)

	done := make(chan Entry, 1)
	go func() {
		e, _ := c.Ensure(context.Background(), key, constFetch(&calls, "other", nil))
		done <- e
	}()

	close(bf.release)
	e := <-done
	assert.Equal(t, "v2", e.Data)
	assert.Equal(t, int32(0), calls.Load(), "ensure must observe the in-flight fetch")
}

func TestCache_Invalidate(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fn := constFetch(&calls, "data", nil)

	_, err := c.Ensure(ctx, GenresKey(), fn)
	require.NoError(t, err)

	c.Invalidate(GenresKey())
	e := c.Get(GenresKey())
	assert.Equal(t, StatusIdle, e.Status)
	assert.Nil(t, e.Data)
	assert.Empty(t, c.Keys())

	// Idle again, so Ensure fetches
	e, err = c.Ensure(ctx, GenresKey(), fn)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Equal(t, int32(2), calls.Load())

	// Unknown key is a no-op
	c.Invalidate(DetailKey(1))
}

func TestCache_InvalidateDiscardsInFlight(t *testing.T) {
	c := New()
	defer c.Close()
	key := UpcomingKey()

	bf := newBlockingFetch("late", nil)
	done := make(chan Entry, 1)
	go func() {
		e, _ := c.Ensure(context.Background(), key, bf.fn)
		done <- e
	}()
	waitLoading(t, c, key)

	c.Invalidate(key)
	close(bf.release)

	e := <-done
	assert.Equal(t, StatusIdle, e.Status)
	assert.Equal(t, StatusIdle, c.Get(key).Status, "late result not applied")
}

func TestCache_WaitHonorsContext(t *testing.T) {
	c := New()
	defer c.Close()
	key := DetailKey(7)

	bf := newBlockingFetch("movie", nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := c.Ensure(ctx, key, bf.fn)
		done <- err
	}()
	waitLoading(t, c, key)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)

	// The shared fetch keeps running for other consumers.
	close(bf.release)
	e, err := c.Ensure(context.Background(), key, bf.fn)
	require.NoError(t, err)
	assert.Equal(t, "movie", e.Data)
	assert.Equal(t, int32(1), bf.calls.Load())
}

func TestCache_CloseCancelsAndRejects(t *testing.T) {
	c := New()
	key := PopularKey()

	bf := newBlockingFetch("never", nil)
	done := make(chan Entry, 1)
	go func() {
		e, _ := c.Ensure(context.Background(), key, bf.fn)
		done <- e
	}()
	waitLoading(t, c, key)

	require.NoError(t, c.Close())
	e := <-done
	assert.Equal(t, StatusError, e.Status)
	assert.ErrorIs(t, e.Err, context.Canceled)

	_, err := c.Ensure(context.Background(), key, bf.fn)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = c.Refetch(context.Background(), key, bf.fn)
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, c.Close(), "close is idempotent")
}

func TestCache_PanicBecomesError(t *testing.T) {
	c := New()
	defer c.Close()

	e, err := c.Ensure(context.Background(), DetailKey(1), func(context.Context) (any, error) {
		panic("bad payload")
	})
	require.NoError(t, err)
	assert.Equal(t, StatusError, e.Status)
	assert.Contains(t, e.Err.Error(), "bad payload")
}

func TestCache_KeysSorted(t *testing.T) {
	c := New()
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	fn := constFetch(&calls, 1, nil)
	for _, k := range []Key{UpcomingKey(), GenrePreviewKey(35), PopularKey(), GenrePreviewKey(28)} {
		_, err := c.Ensure(ctx, k, fn)
		require.NoError(t, err)
	}

	assert.Equal(t, []Key{GenrePreviewKey(28), GenrePreviewKey(35), PopularKey(), UpcomingKey()}, c.Keys())
}

func TestCache_PublishesTransitions(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()
	ch := bus.SubscribeAll(16)

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := New(WithBus(bus), WithClock(func() time.Time { return fixed }))
	defer c.Close()
	ctx := context.Background()

	var calls atomic.Int32
	e, err := c.Ensure(ctx, DetailKey(550), constFetch(&calls, "ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fixed, e.FetchedAt)

	_, err = c.Refetch(ctx, DetailKey(550), constFetch(&calls, nil, errors.New("x")))
	require.NoError(t, err)
	c.Invalidate(DetailKey(550))

	want := []string{
		events.EventEntryLoading,
		events.EventEntrySucceeded,
		events.EventEntryLoading,
		events.EventEntryFailed,
		events.EventEntryInvalidated,
	}
	for i, typ := range want {
		select {
		case got := <-ch:
			assert.Equal(t, typ, got.EventType(), "event %d", i)
			assert.Equal(t, "detail:550", got.Subject())
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for %s", typ)
		}
	}
}

func TestCache_RefetchKeepsDataWhileLoading(t *testing.T) {
	c := New()
	defer c.Close()
	key := PopularKey()

	var calls atomic.Int32
	_, err := c.Ensure(context.Background(), key, constFetch(&calls, "v1", nil))
	require.NoError(t, err)

	bf := newBlockingFetch("v2", nil)
	go func() { _, _ = c.Refetch(context.Background(), key, bf.fn) }()
	waitLoading(t, c, key)

	e := c.Get(key)
	assert.Equal(t, "v1", e.Data)
	_, ok := Value[string](e)
	assert.False(t, ok, "Value only yields data for settled successes")

	close(bf.release)
}
