package events

// Entity types
const (
	EntityQuery = "query"
	EntityTheme = "theme"
	EntityView  = "view"
)

// Event type constants
const (
	EventEntryLoading     = "query.entry.loading"
	EventEntrySucceeded   = "query.entry.succeeded"
	EventEntryFailed      = "query.entry.failed"
	EventEntryInvalidated = "query.entry.invalidated"
	EventThemeChanged     = "theme.changed"
	EventViewChanged      = "view.changed"
)

// EntryLoading is emitted when a cache entry enters loading.
type EntryLoading struct {
	BaseEvent
	Resource   string `json:"resource"`
	Generation uint64 `json:"generation"` // fetch generation for this key
	Refetch    bool   `json:"refetch"`
}

// EntrySucceeded is emitted when the current fetch for a key resolves.
type EntrySucceeded struct {
	BaseEvent
	Resource   string `json:"resource"`
	Generation uint64 `json:"generation"`
	DurationMs int64  `json:"duration_ms"`
}

// EntryFailed is emitted when the current fetch for a key fails.
type EntryFailed struct {
	BaseEvent
	Resource   string `json:"resource"`
	Generation uint64 `json:"generation"`
	Error      string `json:"error"`
}

// EntryInvalidated is emitted when a key is reset to idle.
type EntryInvalidated struct {
	BaseEvent
	Resource string `json:"resource"`
}
