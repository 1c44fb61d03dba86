package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/app"
	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show a movie's details and cast",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovie,
}

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Print a shareable text for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

func init() {
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(shareCmd)
}

type movieJSON struct {
	Detail regionJSON[*tmdb.MovieDetail] `json:"detail"`
	Cast   regionJSON[[]tmdb.CastMember] `json:"cast"`
}

func parseMovieID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	d := view.NewDetail(a.Deps(), id)
	if err := d.Mount(cmd.Context()); err != nil {
		return err
	}
	defer d.Unmount()
	st := d.State()

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, movieJSON{Detail: toJSON(st.Detail), Cast: toJSON(st.Cast)}); err != nil {
			return err
		}
	} else {
		printDetail(cmd, a, st)
	}

	if st.Detail.Failed() {
		return errors.New(st.Detail.Reason)
	}
	return nil
}

func printDetail(cmd *cobra.Command, a *app.App, st view.DetailState) {
	out := cmd.OutOrStdout()
	if m := st.Detail.Value; st.Detail.Ready() {
		fmt.Fprintf(out, "%s (%s)\n", m.Title, yearString(m.MovieSummary))
		fmt.Fprintf(out, "  Rating:   %s/10\n", m.Rating())
		fmt.Fprintf(out, "  Runtime:  %s\n", formatRuntime(m.Runtime))
		if len(m.Genres) > 0 {
			fmt.Fprintf(out, "  Genres:   %s\n", genreNames(m.Genres))
		}
		if u := a.PosterURL(tmdb.SizeDetail, m.PosterPath); u != "" {
			fmt.Fprintf(out, "  Poster:   %s\n", u)
		}
		if m.Overview != "" {
			fmt.Fprintf(out, "\n%s\n", m.Overview)
		}
	} else if st.Detail.Failed() {
		fmt.Fprintf(out, "(%s)\n", st.Detail.Reason)
	}

	fmt.Fprintln(out, "\nCast")
	switch {
	case st.Cast.Failed():
		fmt.Fprintf(out, "  (%s)\n", st.Cast.Reason)
	case len(st.Cast.Value) == 0:
		fmt.Fprintln(out, "  (none)")
	default:
		for _, c := range st.Cast.Value {
			fmt.Fprintf(out, "  %-28s %s\n", truncate(c.Name, 28), c.Character)
		}
	}
}

func runShare(cmd *cobra.Command, args []string) error {
	id, err := parseMovieID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	nav := a.NewNavigator(app.WithSharer(func(text string) error {
		_, err := fmt.Fprintln(out, text)
		return err
	}))
	defer nav.Close()

	d := nav.SelectMovie(id)
	nav.Wait()
	st := d.State()
	if !st.Detail.Ready() {
		return errors.New(view.ReasonDetail)
	}
	return nav.Share(st.Detail.Value.MovieSummary)
}
