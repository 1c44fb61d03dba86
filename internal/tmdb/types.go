// Package tmdb provides a client for The Movie Database API.
package tmdb

import (
	"strconv"
	"strings"
)

// Image size tokens.
const (
	SizeDetail = "w500" // detail screen and featured artwork
	SizeThumb  = "w200" // list rows and carousels
)

// DefaultImageBaseURL is the TMDB image host, including the /t/p/ prefix.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/"

// MovieSummary is the list representation of a movie.
type MovieSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`  // "/abc123.jpg", empty when no artwork
	VoteAverage float64 `json:"vote_average"` // 0-10
	ReleaseDate string  `json:"release_date"` // "2024-03-01", may be empty
}

// MovieDetail is the full movie record returned by /movie/{id}.
type MovieDetail struct {
	MovieSummary
	Overview string  `json:"overview"`
	Runtime  int     `json:"runtime"` // minutes
	Genres   []Genre `json:"genres"`
}

// CastMember is one credited actor, in billing order.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Year extracts the year from ReleaseDate.
func (m MovieSummary) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Rating formats VoteAverage with one decimal, e.g. "8.4".
func (m MovieSummary) Rating() string {
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}

// PosterURL returns the full poster image URL on the default image host.
// Size can be: w92, w154, w185, w200, w342, w500, w780, original
func (m MovieSummary) PosterURL(size string) string {
	return ImageURL(DefaultImageBaseURL, size, m.PosterPath)
}

// ProfileURL returns the full profile image URL on the default image host.
func (c CastMember) ProfileURL(size string) string {
	return ImageURL(DefaultImageBaseURL, size, c.ProfilePath)
}

// ImageURL joins an image host, a size token and a relative path fragment.
// An empty path yields an empty URL.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + size + path
}
