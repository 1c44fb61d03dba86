package main

import (
	"io"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Print a shell completion script",
	Long: `Print a completion script for bash, zsh, fish or powershell.

  cinebrowse completion bash > /etc/bash_completion.d/cinebrowse
  cinebrowse completion zsh > "${fpath[1]}/_cinebrowse"`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

func runCompletion(cmd *cobra.Command, args []string) error {
	gen := map[string]func(io.Writer) error{
		"bash":       rootCmd.GenBashCompletion,
		"zsh":        rootCmd.GenZshCompletion,
		"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
		"powershell": rootCmd.GenPowerShellCompletionWithDesc,
	}
	return gen[args[0]](cmd.OutOrStdout())
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
