package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for seolens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seolens",
		Short: "SEO crawler with resumable sessions and comparative reports",
		Long: `seolens crawls a website and records on-page SEO signals per session:
titles, meta descriptions, headings, canonicals, indexability, links,
and images. Sessions are stored in SQLite, survive interruption, and
can be resumed, exported to CSV, and compared against earlier crawls.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewSessionsCmd())
	cmd.AddCommand(NewInitCmd())
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
