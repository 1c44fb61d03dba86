package query

import "time"

// Status is the lifecycle state of a cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Settled reports whether the status is success or error.
func (s Status) Settled() bool {
	return s == StatusSuccess || s == StatusError
}

// Entry is an immutable snapshot of one cached fetch.
type Entry struct {
	Key       Key
	Status    Status
	Data      any   // result payload, set on success
	Err       error // fetch error, set on error
	FetchedAt time.Time
}

// Value extracts typed data from a successful entry.
func Value[T any](e Entry) (T, bool) {
	var zero T
	if e.Status != StatusSuccess {
		return zero, false
	}
	v, ok := e.Data.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
