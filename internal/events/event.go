package events

import "time"

// Event is anything published on the bus. Subscribers route on EventType
// and filter on Subject.
type Event interface {
	EventType() string
	EntityType() string // EntityQuery, EntityTheme or EntityView
	Subject() string    // cache key or screen name
	OccurredAt() time.Time
}

// BaseEvent holds the routing fields. Concrete events embed it.
type BaseEvent struct {
	Kind   string
	Entity string
	Key    string
	At     time.Time
}

func (e BaseEvent) EventType() string     { return e.Kind }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) Subject() string       { return e.Key }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// NewBaseEvent stamps a BaseEvent with the current time.
func NewBaseEvent(kind, entity, subject string) BaseEvent {
	return BaseEvent{Kind: kind, Entity: entity, Key: subject, At: time.Now()}
}
