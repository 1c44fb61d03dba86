package events

// ThemeChanged is emitted when the process-wide theme flips.
type ThemeChanged struct {
	BaseEvent
	Dark bool `json:"dark"`
}

// ViewChanged is emitted by a screen controller after its state changes.
// Subject is the screen name. Consumers re-read the controller state.
type ViewChanged struct {
	BaseEvent
	Screen string `json:"screen"`
}

// NewViewChanged creates a ViewChanged event for a screen.
func NewViewChanged(screen string) *ViewChanged {
	return &ViewChanged{
		BaseEvent: NewBaseEvent(EventViewChanged, EntityView, screen),
		Screen:    screen,
	}
}
