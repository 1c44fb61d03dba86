package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieSummary_Year(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"1999-10-15", 1999},
		{"2024", 2024},
		{"", 0},
		{"abc", 0},
		{"20xx-01-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, MovieSummary{ReleaseDate: tt.date}.Year())
		})
	}
}

func TestMovieSummary_PosterURL(t *testing.T) {
	m := MovieSummary{PosterPath: "/abc.jpg"}
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", m.PosterURL(SizeDetail))
	assert.Equal(t, "https://image.tmdb.org/t/p/w200/abc.jpg", m.PosterURL(SizeThumb))

	assert.Empty(t, MovieSummary{}.PosterURL(SizeDetail), "no artwork")
}

func TestImageURL_Joins(t *testing.T) {
	assert.Equal(t, "https://h/t/p/w92/x.png", ImageURL("https://h/t/p", "w92", "x.png"))
	assert.Equal(t, "https://h/t/p/w92/x.png", ImageURL("https://h/t/p/", "w92", "/x.png"))
}

func TestCastMember_ProfileURL(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w200/p.jpg", CastMember{ProfilePath: "/p.jpg"}.ProfileURL(SizeThumb))
	assert.Empty(t, CastMember{}.ProfileURL(SizeThumb))
}
