package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_Accessors(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var e Event = BaseEvent{Kind: EventEntryFailed, Entity: EntityQuery, Key: "detail:550", At: at}

	assert.Equal(t, "query.entry.failed", e.EventType())
	assert.Equal(t, EntityQuery, e.EntityType())
	assert.Equal(t, "detail:550", e.Subject())
	assert.Equal(t, at, e.OccurredAt())
}

func TestNewViewChanged(t *testing.T) {
	before := time.Now()
	e := NewViewChanged("home")

	assert.Equal(t, EventViewChanged, e.EventType())
	assert.Equal(t, EntityView, e.EntityType())
	assert.Equal(t, "home", e.Subject())
	assert.Equal(t, "home", e.Screen)
	assert.False(t, e.OccurredAt().Before(before))
}
