package view

import (
	"context"
	"sync"

	"github.com/vmunix/cinebrowse/internal/events"
)

// Theme is the single process-wide dark-mode flag.
type Theme struct {
	mu   sync.RWMutex
	dark bool
	bus  *events.Bus
}

// NewTheme creates a theme; changes are published on bus when it is non-nil.
func NewTheme(bus *events.Bus, dark bool) *Theme {
	return &Theme{bus: bus, dark: dark}
}

// Dark reports whether dark mode is on. A nil Theme is light.
func (t *Theme) Dark() bool {
	if t == nil {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Toggle flips the flag and returns the new value. A nil Theme stays light.
func (t *Theme) Toggle() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	t.dark = !t.dark
	dark := t.dark
	t.publishLocked(dark)
	t.mu.Unlock()
	return dark
}

// Set forces the flag. Subscribers are notified only on change. Setting a
// nil Theme does nothing.
func (t *Theme) Set(dark bool) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dark == dark {
		return
	}
	t.dark = dark
	t.publishLocked(dark)
}

func (t *Theme) publishLocked(dark bool) {
	if t.bus == nil {
		return
	}
	_ = t.bus.Publish(context.Background(), &events.ThemeChanged{
		BaseEvent: events.NewBaseEvent(events.EventThemeChanged, events.EntityTheme, "theme"),
		Dark:      dark,
	})
}
