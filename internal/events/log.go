package events

import (
	"context"
	"log/slog"
)

// LogSubscriber writes every event on the bus to a structured logger at debug level.
type LogSubscriber struct {
	bus    *Bus
	logger *slog.Logger
	ch     <-chan Event
}

// NewLogSubscriber subscribes to all events on bus.
func NewLogSubscriber(bus *Bus, logger *slog.Logger) *LogSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSubscriber{
		bus:    bus,
		logger: logger,
		ch:     bus.SubscribeAll(256),
	}
}

// Run logs events until ctx is canceled or the bus closes.
func (s *LogSubscriber) Run(ctx context.Context) {
	defer s.bus.Unsubscribe(s.ch)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-s.ch:
			if !ok {
				return
			}
			s.logger.Debug("event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"subject", e.Subject(),
				"attrs", slog.GroupValue(eventAttrs(e)...))
		}
	}
}

func eventAttrs(e Event) []slog.Attr {
	switch ev := e.(type) {
	case *EntryLoading:
		return []slog.Attr{slog.Uint64("generation", ev.Generation), slog.Bool("refetch", ev.Refetch)}
	case *EntrySucceeded:
		return []slog.Attr{slog.Uint64("generation", ev.Generation), slog.Int64("duration_ms", ev.DurationMs)}
	case *EntryFailed:
		return []slog.Attr{slog.Uint64("generation", ev.Generation), slog.String("error", ev.Error)}
	case *ThemeChanged:
		return []slog.Attr{slog.Bool("dark", ev.Dark)}
	default:
		return nil
	}
}
