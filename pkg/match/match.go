// Package match finds the closest name in a candidate list.
package match

import (
	"github.com/hbollon/go-edlib"
)

// Confidence is how sure a match is.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.80
	ConfidenceLow                      // Score >= 0.80
	ConfidenceMedium                   // Score >= 0.90
	ConfidenceHigh                     // exact after folding
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Result is the outcome of Best.
type Result struct {
	Index      int     // position in candidates, -1 when nothing matched
	Name       string  // the matched candidate as given
	Score      float64 // Jaro-Winkler similarity of the folded names (0.0-1.0)
	Confidence Confidence
}

// Matched reports whether a candidate was accepted.
func (r Result) Matched() bool { return r.Confidence > ConfidenceNone }

// Best returns the candidate most similar to name. Names are compared after
// Fold; an exact folded match wins outright. Jaro-Winkler favors shared
// prefixes, which suits short genre names typed by hand.
func Best(name string, candidates []string) Result {
	best := Result{Index: -1}
	want := Fold(name)
	if want == "" {
		return best
	}

	for i, c := range candidates {
		got := Fold(c)
		if got == want {
			return Result{Index: i, Name: c, Score: 1, Confidence: ConfidenceHigh}
		}
		score := float64(edlib.JaroWinklerSimilarity(want, got))
		if score > best.Score {
			best = Result{Index: i, Name: c, Score: score}
		}
	}

	switch {
	case best.Score >= 0.90:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.80:
		best.Confidence = ConfidenceLow
	default:
		return Result{Index: -1, Score: best.Score}
	}
	return best
}
