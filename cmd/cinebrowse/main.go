// Command cinebrowse browses movies from TMDB: popular and upcoming lists,
// categories, search and movie details, from the command line or a
// terminal UI.
package main

func main() {
	Execute()
}
