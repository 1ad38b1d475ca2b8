package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSessionsCmd creates the sessions command.
func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored crawl sessions",
		Long: `Sessions lists every stored crawl session with its site, status,
page count, and timing, most recent first.`,
		Args: cobra.NoArgs,
		RunE: runSessionsCmd,
	}

	cmd.Flags().String("db", "", "Database directory (default: XDG data directory)")

	return cmd
}

// runSessionsCmd executes the sessions command.
func runSessionsCmd(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet. Run: seolens crawl --site <url>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSITE\tLABEL\tSTATUS\tPAGES\tSTARTED\tCOMPLETED")
	for _, s := range sessions {
		completed := "-"
		if s.CompletedAt != nil {
			completed = s.CompletedAt.Format("2006-01-02 15:04")
		}
		label := s.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			s.ID, s.RootURL, label, s.Status, s.TotalPages,
			s.StartedAt.Format("2006-01-02 15:04"), completed)
	}
	return w.Flush()
}
