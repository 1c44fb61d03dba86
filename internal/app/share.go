package app

import (
	"fmt"
	"strings"

	"github.com/vmunix/cinebrowse/internal/tmdb"
)

// ShareText renders the text shared for a movie: title with year, rating
// and, when there is artwork, the poster link.
func ShareText(m tmdb.MovieSummary, posterURL func(size, path string) string) string {
	var b strings.Builder
	b.WriteString(m.Title)
	if y := m.Year(); y > 0 {
		fmt.Fprintf(&b, " (%d)", y)
	}
	fmt.Fprintf(&b, "\nRating: %s/10", m.Rating())
	if m.PosterPath != "" && posterURL != nil {
		b.WriteString("\n" + posterURL(tmdb.SizeDetail, m.PosterPath))
	}
	return b.String()
}
