package view

import "github.com/vmunix/cinebrowse/internal/query"

// Phase is the three-way status a controller exposes to rendering.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseFailed
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseFailed:
		return "failed"
	case PhaseReady:
		return "ready"
	default:
		return "loading"
	}
}

// Generic failure messages shown to users.
const (
	ReasonMovies  = "could not load movies"
	ReasonDetail  = "could not load movie details"
	ReasonCast    = "could not load cast"
	ReasonGenres  = "could not load categories"
	ReasonSearch  = "could not search movies"
	ReasonUnknown = "unexpected response"
)

// Presentation is one renderable region: loading, failed with a reason, or ready with a value.
type Presentation[T any] struct {
	Phase  Phase
	Reason string
	Value  T
}

func Loading[T any]() Presentation[T] { return Presentation[T]{Phase: PhaseLoading} }

func Failed[T any](reason string) Presentation[T] {
	return Presentation[T]{Phase: PhaseFailed, Reason: reason}
}

func Ready[T any](v T) Presentation[T] { return Presentation[T]{Phase: PhaseReady, Value: v} }

func (p Presentation[T]) Ready() bool  { return p.Phase == PhaseReady }
func (p Presentation[T]) Failed() bool { return p.Phase == PhaseFailed }

// FromEntry maps a cache entry onto a presentation. Only a successful entry
// yields a value; data carried by a loading entry is not shown.
func FromEntry[T any](e query.Entry, reason string) Presentation[T] {
	switch e.Status {
	case query.StatusSuccess:
		v, ok := query.Value[T](e)
		if !ok {
			return Failed[T](ReasonUnknown)
		}
		return Ready(v)
	case query.StatusError:
		return Failed[T](reason)
	default:
		return Loading[T]()
	}
}
