// Package events provides the in-process pub/sub bus that connects the query
// cache, the theme and the view controllers to whatever renders them.
package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// subscription is one subscriber channel. An empty eventType matches every
// event.
type subscription struct {
	eventType string
	ch        chan Event
}

func (s *subscription) wants(e Event) bool {
	return s.eventType == "" || s.eventType == e.EventType()
}

// Bus fans events out to subscriber channels.
//
// Delivery never blocks the publisher. When a subscriber's channel is full
// the event is dropped; the subscriber still has an undelivered event queued,
// so consumers that re-read current state on every event never miss an update.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	logger *slog.Logger
	closed bool
}

// NewBus creates a bus. A nil logger uses slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Publish delivers e to every matching subscriber. It fails only when ctx
// is already done; publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// The read lock keeps Unsubscribe and Close from closing a channel
	// mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}

	for _, s := range b.subs {
		if !s.wants(e) {
			continue
		}
		select {
		case s.ch <- e:
		default:
			b.logger.Debug("subscriber full, coalescing",
				"type", e.EventType(),
				"subject", e.Subject(),
				"filter", s.eventType)
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(eventType, bufferSize)
}

// SubscribeAll returns a channel receiving every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add("", bufferSize)
}

func (b *Bus) add(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, &subscription{eventType: eventType, ch: ch})
	return ch
}

// SubscribeSubject returns events of one type for a specific subject
// (a cache key or a screen name). The channel is closed when the bus closes
// or when cancel is called.
func (b *Bus) SubscribeSubject(eventType, subject string, bufferSize int) (<-chan Event, func()) {
	src := b.Subscribe(eventType, bufferSize*10)
	filtered := make(chan Event, bufferSize)

	go func() {
		defer close(filtered)
		for e := range src {
			if e.Subject() != subject {
				continue
			}
			select {
			case filtered <- e:
			default:
				// A notification for this subject is already pending.
			}
		}
	}()

	return filtered, func() { b.Unsubscribe(src) }
}

// Unsubscribe removes and closes a subscription channel. Unknown channels
// are ignored.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.subs, func(s *subscription) bool { return s.ch == ch })
	if i < 0 {
		return
	}
	close(b.subs[i].ch)
	b.subs = slices.Delete(b.subs, i, i+1)
}

// Close closes every subscriber channel. Later publishes are dropped and
// later subscriptions receive a closed channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
	return nil
}
