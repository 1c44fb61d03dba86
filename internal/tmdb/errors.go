package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned (wrapped in a RemoteError) when a resource doesn't exist in TMDB.
	ErrNotFound = errors.New("movie not found")

	// ErrEmptyQuery marks a search that was skipped because the query was blank.
	// It is informational: Search resolves to an empty result instead of returning it.
	ErrEmptyQuery = errors.New("empty search query")
)

// RemoteError is returned when TMDB answers with a non-success status.
type RemoteError struct {
	Resource   string // e.g. "movie detail"
	StatusCode int
	Status     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("TMDB API error (%s): %s", e.Resource, e.Status)
}

// Is reports 404 responses as ErrNotFound.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ParseError is returned when a response body cannot be mapped onto the expected record.
type ParseError struct {
	Resource string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Resource, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsRemote reports whether err is (or wraps) a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// IsParse reports whether err is (or wraps) a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
