package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/tmdb"
	"github.com/vmunix/cinebrowse/internal/view"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show popular, upcoming and one row per category",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

type homeJSON struct {
	Featured *tmdb.MovieSummary              `json:"featured,omitempty"`
	Popular  regionJSON[[]tmdb.MovieSummary] `json:"popular"`
	Upcoming regionJSON[[]tmdb.MovieSummary] `json:"upcoming"`
	Genres   regionJSON[[]tmdb.Genre]        `json:"genres"`
	Rows     []rowJSON                       `json:"rows"`
}

type rowJSON struct {
	Genre  tmdb.Genre                      `json:"genre"`
	Movies regionJSON[[]tmdb.MovieSummary] `json:"movies"`
}

func runHome(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	home := view.NewHome(a.Deps(), a.HomeOptions()...)
	if err := home.Mount(cmd.Context()); err != nil {
		return err
	}
	defer home.Unmount()
	st := home.State()

	out := cmd.OutOrStdout()
	if jsonOutput {
		doc := homeJSON{
			Popular:  toJSON(st.Popular),
			Upcoming: toJSON(st.Upcoming),
			Genres:   toJSON(st.Genres),
			Rows:     make([]rowJSON, 0, len(st.Rows)),
		}
		if m, ok := st.Featured(); ok {
			doc.Featured = &m
		}
		for _, r := range st.Rows {
			doc.Rows = append(doc.Rows, rowJSON{Genre: r.Genre, Movies: toJSON(r.Movies)})
		}
		if err := printJSON(out, doc); err != nil {
			return err
		}
	} else {
		if m, ok := st.Featured(); ok {
			fmt.Fprintf(out, "Featured: %s (%s) ★ %s\n\n", m.Title, yearString(m), m.Rating())
		}
		printRegion(out, "Popular", st.Popular)
		printRegion(out, "Upcoming", st.Upcoming)
		if st.Genres.Failed() {
			fmt.Fprintf(out, "Categories\n  (%s)\n", st.Genres.Reason)
		}
		for _, r := range st.Rows {
			printRegion(out, r.Genre.Name, r.Movies)
		}
	}

	if st.Popular.Failed() {
		return errors.New(st.Popular.Reason)
	}
	return nil
}
