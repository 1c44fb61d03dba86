package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/view"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search movies by title",
	Long: `Search movies by title.

Examples:
  cinebrowse search "Clube da Luta"
  cinebrowse search the matrix --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	s := view.NewSearch(a.Deps())
	if err := s.Mount(cmd.Context()); err != nil {
		return err
	}
	defer s.Unmount()

	s.SetQuery(strings.Join(args, " "))
	if err := s.Submit(cmd.Context()); err != nil {
		return err
	}
	st := s.State()

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := printJSON(out, toJSON(st.Results)); err != nil {
			return err
		}
	} else if st.Results.Ready() {
		if len(st.Results.Value) == 0 {
			fmt.Fprintln(out, "No movies found")
		} else {
			fmt.Fprintf(out, "Found %d movies for %q:\n\n", len(st.Results.Value), st.Submitted)
			printMovieTable(out, st.Results.Value)
		}
	}

	if st.Results.Failed() {
		return errors.New(st.Results.Reason)
	}
	return nil
}
