package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Long: `Start the interactive terminal UI.

Keys:
  tab / shift+tab  switch between Home, Search and Categories
  up / down        move the selection
  enter            open the selected movie or category
  esc              go back
  /                focus the search box
  t                toggle dark mode
  s                share the selected movie
  r                retry failed regions
  q                quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Log lines would tear the full-screen display.
	a, err := newAppLogging(io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()
	return tui.Run(cmd.Context(), a)
}
