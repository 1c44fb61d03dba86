package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	BaseEvent
	Message string
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	// Subscribe before publishing
	ch := bus.Subscribe("test.created", 10)

	// Publish
	e := &testEvent{BaseEvent: NewBaseEvent("test.created", "test", "a"), Message: "hello"}
	err := bus.Publish(context.Background(), e)
	require.NoError(t, err)

	// Receive
	select {
	case received := <-ch:
		assert.Equal(t, "test.created", received.EventType())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)

	// Publish different event types
	e1 := &testEvent{BaseEvent: NewBaseEvent("test.first", "test", "1"), Message: "first"}
	e2 := &testEvent{BaseEvent: NewBaseEvent("test.second", "test", "2"), Message: "second"}

	require.NoError(t, bus.Publish(context.Background(), e1))
	require.NoError(t, bus.Publish(context.Background(), e2))

	// Should receive both, in publish order
	received := make([]Event, 0, 2)
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case e := <-ch:
			received = append(received, e)
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}

	require.Len(t, received, 2)
	assert.Equal(t, "test.first", received[0].EventType())
	assert.Equal(t, "test.second", received[1].EventType())
}

func TestBus_SubscribeFiltersByType(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	views := bus.Subscribe(EventViewChanged, 4)
	require.NoError(t, bus.Publish(context.Background(), &ThemeChanged{
		BaseEvent: NewBaseEvent(EventThemeChanged, EntityTheme, "theme"),
		Dark:      true,
	}))
	require.NoError(t, bus.Publish(context.Background(), NewViewChanged("search")))

	e := <-views
	assert.Equal(t, EventViewChanged, e.EventType())
	assert.Empty(t, views, "theme events are not delivered to view subscribers")
}

func TestBus_UnsubscribeUnknown(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	kept := bus.SubscribeAll(1)
	bus.Unsubscribe(make(chan Event))

	require.NoError(t, bus.Publish(context.Background(), NewViewChanged("home")))
	assert.Len(t, kept, 1)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe("test.event", 10)

	// Unsubscribe
	bus.Unsubscribe(ch)

	// Publish (should not block even with no subscribers)
	e := &testEvent{BaseEvent: NewBaseEvent("test.event", "test", "1"), Message: "hello"}
	require.NoError(t, bus.Publish(context.Background(), e))

	// Channel should be closed
	_, ok := <-ch
	assert.False(t, ok, "channel should be closed")
}

func TestBus_FullChannelDoesNotBlock(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe(EventViewChanged, 1)

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), NewViewChanged("home")))
	}

	// One notification queued; the rest coalesced into it.
	select {
	case e := <-ch:
		assert.Equal(t, "home", e.Subject())
	case <-time.After(time.Second):
		t.Fatal("expected a pending notification")
	}
	select {
	case <-ch:
		t.Fatal("expected coalesced notifications")
	default:
	}
}

func TestBus_SubscribeSubject(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch, cancel := bus.SubscribeSubject(EventViewChanged, "detail", 4)
	defer cancel()

	require.NoError(t, bus.Publish(context.Background(), NewViewChanged("home")))
	require.NoError(t, bus.Publish(context.Background(), NewViewChanged("detail")))

	select {
	case e := <-ch:
		assert.Equal(t, "detail", e.Subject())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for detail event")
	}
}

func TestBus_SubscribeSubject_CancelClosesChannel(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch, cancel := bus.SubscribeSubject(EventViewChanged, "home", 1)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("filtered channel should close after cancel")
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.SubscribeAll(1)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "close is idempotent")

	_, ok := <-ch
	assert.False(t, ok)

	assert.NoError(t, bus.Publish(context.Background(), NewViewChanged("home")))

	late := bus.Subscribe(EventViewChanged, 1)
	_, ok = <-late
	assert.False(t, ok, "subscribing to a closed bus yields a closed channel")
}

func TestBus_PublishCanceledContext(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bus.Publish(ctx, NewViewChanged("home")), context.Canceled)
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(100)

	// Concurrent publishers
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := &testEvent{BaseEvent: NewBaseEvent("test.concurrent", "test", "x"), Message: "concurrent"}
			_ = bus.Publish(context.Background(), e)
		}()
	}

	wg.Wait()

	// Count received events
	count := 0
	timeout := time.After(time.Second)
loop:
	for {
		select {
		case <-ch:
			count++
			if count == 10 {
				break loop
			}
		case <-timeout:
			break loop
		}
	}

	assert.Equal(t, 10, count)
}
