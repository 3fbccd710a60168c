package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for forumscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forumscan",
		Short: "Crawler for the Pirate Party forum and Helios election rolls",
		Long: `forumscan crawls the Czech Pirate Party phpBB forum and the Helios
voting system's public voter rolls.

Raw pages are archived under the output directory so extraction can be
rerun offline, and extracted records are written as xlsx workbooks, one
per fetched page. A markdown summary and a run-history database entry
are produced at the end of each run.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewVotesCmd())
	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewMergeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
