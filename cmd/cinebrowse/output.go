package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

const titleWidth = 42

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func yearString(m tmdb.MovieSummary) string {
	if y := m.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return "-"
}

func printMovieTable(w io.Writer, movies []tmdb.MovieSummary) {
	fmt.Fprintf(w, "  # │ %8s │ %-*s │ %4s │ %6s\n", "ID", titleWidth, "TITLE", "YEAR", "RATING")
	fmt.Fprintln(w, "────┼──────────┼"+strings.Repeat("─", titleWidth+2)+"┼──────┼───────")
	for i, m := range movies {
		fmt.Fprintf(w, " %2d │ %8d │ %-*s │ %4s │ %6s\n",
			i+1, m.ID, titleWidth, truncate(m.Title, titleWidth), yearString(m), m.Rating())
	}
}

// printRegion prints a titled list region: its movies, its failure reason,
// or a loading marker.
func printRegion(w io.Writer, title string, p view.Presentation[[]tmdb.MovieSummary]) {
	fmt.Fprintf(w, "%s\n", title)
	switch {
	case p.Failed():
		fmt.Fprintf(w, "  (%s)\n\n", p.Reason)
	case !p.Ready():
		fmt.Fprintf(w, "  (loading)\n\n")
	case len(p.Value) == 0:
		fmt.Fprintf(w, "  (none)\n\n")
	default:
		printMovieTable(w, p.Value)
		fmt.Fprintln(w)
	}
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func genreNames(genres []tmdb.Genre) string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

// regionJSON is the JSON shape of a presentation.
type regionJSON[T any] struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Items  T      `json:"items,omitempty"`
}

func toJSON[T any](p view.Presentation[T]) regionJSON[T] {
	return regionJSON[T]{Status: p.Phase.String(), Error: p.Reason, Items: p.Value}
}
