package query

import (
	"strconv"
	"strings"
)

// Resource is a category of fetchable data.
type Resource string

const (
	ResourceDetail       Resource = "detail"
	ResourceCast         Resource = "cast"
	ResourceSearch       Resource = "search"
	ResourcePopular      Resource = "popular"
	ResourceUpcoming     Resource = "upcoming"
	ResourceGenres       Resource = "genres"
	ResourceGenrePreview Resource = "genre-preview" // capped row on the home screen
	ResourceGenreMovies  Resource = "genre-movies"  // full category browse
)

// Key identifies one cacheable fetch: a resource type plus normalized parameters.
type Key struct {
	Resource Resource
	Params   string
}

// String renders the key as "resource" or "resource:params".
func (k Key) String() string {
	if k.Params == "" {
		return string(k.Resource)
	}
	return string(k.Resource) + ":" + k.Params
}

func DetailKey(movieID int64) Key {
	return Key{Resource: ResourceDetail, Params: strconv.FormatInt(movieID, 10)}
}

func CastKey(movieID int64) Key {
	return Key{Resource: ResourceCast, Params: strconv.FormatInt(movieID, 10)}
}

// SearchKey normalizes the query so "  the  matrix " and "the matrix" share an entry.
func SearchKey(query string) Key {
	return Key{Resource: ResourceSearch, Params: NormalizeQuery(query)}
}

func PopularKey() Key  { return Key{Resource: ResourcePopular} }
func UpcomingKey() Key { return Key{Resource: ResourceUpcoming} }
func GenresKey() Key   { return Key{Resource: ResourceGenres} }

func GenrePreviewKey(genreID int) Key {
	return Key{Resource: ResourceGenrePreview, Params: strconv.Itoa(genreID)}
}

func GenreMoviesKey(genreID int) Key {
	return Key{Resource: ResourceGenreMovies, Params: strconv.Itoa(genreID)}
}

// NormalizeQuery trims and collapses whitespace.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}
