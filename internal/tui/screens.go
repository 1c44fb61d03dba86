package tui

import (
	"fmt"
	"strings"

	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

// entry is one selectable line. Movie entries open the detail screen,
// genre entries open the category browser.
type entry struct {
	label string
	movie *tmdb.MovieSummary
	genre *tmdb.Genre
}

// section is one titled region of a screen.
type section struct {
	title   string
	phase   view.Phase
	reason  string
	empty   string // shown when ready with no entries
	entries []entry
}

// content is everything a screen renders below the tab bar.
type content struct {
	header   []string // free text above the sections
	featured *tmdb.MovieSummary
	detail   *tmdb.MovieDetail // set on a ready detail screen
	sections []section
}

func (c content) entries() []entry {
	var all []entry
	for _, s := range c.sections {
		if s.phase == view.PhaseReady {
			all = append(all, s.entries...)
		}
	}
	return all
}

func movieEntries(movies []tmdb.MovieSummary) []entry {
	out := make([]entry, len(movies))
	for i := range movies {
		out[i] = entry{label: movieLabel(movies[i]), movie: &movies[i]}
	}
	return out
}

func movieLabel(m tmdb.MovieSummary) string {
	label := m.Title
	if y := m.Year(); y > 0 {
		label = fmt.Sprintf("%s (%d)", label, y)
	}
	return fmt.Sprintf("%s  ★ %s", label, m.Rating())
}

func movieSection(title string, p view.Presentation[[]tmdb.MovieSummary]) section {
	return section{
		title:   title,
		phase:   p.Phase,
		reason:  p.Reason,
		empty:   "No movies",
		entries: movieEntries(p.Value),
	}
}

func homeContent(s view.HomeState) content {
	var c content
	if m, ok := s.Featured(); ok {
		c.featured = &m
	}
	c.sections = append(c.sections,
		movieSection("Popular", s.Popular),
		movieSection("Upcoming", s.Upcoming),
	)

	rows := section{title: "Categories", phase: s.Genres.Phase, reason: s.Genres.Reason, empty: "No categories"}
	for i := range s.Rows {
		row := &s.Rows[i]
		rows.entries = append(rows.entries, entry{label: rowLabel(row), genre: &row.Genre})
	}
	c.sections = append(c.sections, rows)
	return c
}

// rowLabel summarizes a genre preview row on one line.
func rowLabel(row *view.CategoryRow) string {
	switch row.Movies.Phase {
	case view.PhaseLoading:
		return row.Genre.Name + "  …"
	case view.PhaseFailed:
		return row.Genre.Name + "  (" + row.Movies.Reason + ")"
	}
	titles := make([]string, len(row.Movies.Value))
	for i, m := range row.Movies.Value {
		titles[i] = m.Title
	}
	return row.Genre.Name + "  " + strings.Join(titles, " · ")
}

func searchContent(s view.SearchState) content {
	sec := movieSection("Results", s.Results)
	sec.empty = "Type a title and press enter"
	if s.Submitted != "" {
		sec.title = fmt.Sprintf("Results for %q", s.Submitted)
		sec.empty = "No movies found"
	}
	return content{sections: []section{sec}}
}

func genresContent(s view.GenresState) content {
	sec := section{title: "Categories", phase: s.Genres.Phase, reason: s.Genres.Reason, empty: "No categories"}
	for i := range s.Genres.Value {
		g := &s.Genres.Value[i]
		sec.entries = append(sec.entries, entry{label: g.Name, genre: g})
	}
	return content{sections: []section{sec}}
}

func categoryContent(s view.CategoryState) content {
	title := s.Genre.Name
	if title == "" {
		title = fmt.Sprintf("Category %d", s.Genre.ID)
	}
	return content{sections: []section{movieSection(title, s.Movies)}}
}

func detailContent(s view.DetailState) content {
	var c content
	switch s.Detail.Phase {
	case view.PhaseReady:
		c.detail = s.Detail.Value
	case view.PhaseFailed:
		c.header = []string{s.Detail.Reason}
	}

	cast := section{title: "Cast", phase: s.Cast.Phase, reason: s.Cast.Reason, empty: "No cast listed"}
	for _, m := range s.Cast.Value {
		label := m.Name
		if m.Character != "" {
			label += " as " + m.Character
		}
		cast.entries = append(cast.entries, entry{label: label})
	}
	c.sections = []section{cast}
	return c
}

// screenContent reads the current state of c.
func screenContent(c view.Controller) content {
	switch s := c.(type) {
	case *view.Home:
		return homeContent(s.State())
	case *view.Search:
		return searchContent(s.State())
	case *view.Genres:
		return genresContent(s.State())
	case *view.Category:
		return categoryContent(s.State())
	case *view.Detail:
		return detailContent(s.State())
	default:
		return content{}
	}
}

func detailMeta(d *tmdb.MovieDetail) string {
	parts := []string{"★ " + d.Rating() + "/10"}
	if d.Runtime > 0 {
		parts = append(parts, fmt.Sprintf("%dh %02dm", d.Runtime/60, d.Runtime%60))
	}
	if len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	return strings.Join(parts, " · ")
}
