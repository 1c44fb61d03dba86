package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/app"
	"github.com/vmunix/cinebrowse/internal/query"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

var genresCmd = &cobra.Command{
	Use:     "genres",
	Aliases: []string{"categories"},
	Short:   "List movie categories",
	Args:    cobra.NoArgs,
	RunE:    runGenres,
}

var genrePreview bool

var genreCmd = &cobra.Command{
	Use:   "genre <id|name>",
	Short: "List movies in a category",
	Long: `List movies in a category, given its id or its name.

Names are matched ignoring case and accents, and tolerate small typos.

Examples:
  cinebrowse genre 28
  cinebrowse genre acao
  cinebrowse genre "ficcao cientifica" --preview`,
	Args: cobra.ExactArgs(1),
	RunE: runGenre,
}

func init() {
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(genreCmd)
	genreCmd.Flags().BoolVar(&genrePreview, "preview", false, "Only the first movies, as on the home screen")
}

func runGenres(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	g := view.NewGenres(a.Deps())
	if err := g.Mount(cmd.Context()); err != nil {
		return err
	}
	defer g.Unmount()
	st := g.State()

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, toJSON(st.Genres)); err != nil {
			return err
		}
	} else if st.Genres.Ready() {
		fmt.Fprintf(out, " %6s │ %s\n", "ID", "NAME")
		fmt.Fprintln(out, "────────┼──────────────────────")
		for _, genre := range st.Genres.Value {
			fmt.Fprintf(out, " %6d │ %s\n", genre.ID, genre.Name)
		}
	}

	if st.Genres.Failed() {
		return errors.New(st.Genres.Reason)
	}
	return nil
}

func runGenre(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	genre, err := app.LookupGenre(cmd.Context(), a.Deps(), args[0])
	if err != nil {
		return err
	}

	var movies view.Presentation[[]tmdb.MovieSummary]
	if genrePreview {
		movies, err = genrePreviewMovies(cmd.Context(), a, genre.ID)
		if err != nil {
			return err
		}
	} else {
		c := view.NewCategory(a.Deps(), genre.ID)
		if err := c.Mount(cmd.Context()); err != nil {
			return err
		}
		defer c.Unmount()
		st := c.State()
		if st.Genre.Name != "" {
			genre = st.Genre
		}
		movies = st.Movies
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, rowJSON{Genre: genre, Movies: toJSON(movies)}); err != nil {
			return err
		}
	} else {
		title := genre.Name
		if title == "" {
			title = fmt.Sprintf("Genre %d", genre.ID)
		}
		printRegion(out, title, movies)
	}

	if movies.Failed() {
		return errors.New(movies.Reason)
	}
	return nil
}

// genrePreviewMovies resolves the capped row the home screen shows.
func genrePreviewMovies(ctx context.Context, a *app.App, genreID int) (view.Presentation[[]tmdb.MovieSummary], error) {
	d := a.Deps()
	limit := a.Config().UI.PreviewSize
	e, err := d.Cache.Ensure(ctx, query.GenrePreviewKey(genreID), query.Typed(func(ctx context.Context) ([]tmdb.MovieSummary, error) {
		return d.Source.MoviesByGenre(ctx, genreID, limit)
	}))
	if err != nil {
		return view.Presentation[[]tmdb.MovieSummary]{}, err
	}
	return view.FromEntry[[]tmdb.MovieSummary](e, view.ReasonMovies), nil
}
