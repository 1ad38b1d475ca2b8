package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seolens/seolens/internal/database"
	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/report"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two crawl sessions of the same site",
		Long: `Compare diffs two sessions: pages that appeared, pages that
disappeared, and pages whose status code, title, meta description,
canonical URL, indexability, or content changed between crawls.

Without flags the two most recent sessions of the same site are
compared. Output is CSV by default.

Examples:
  # Compare the two most recent sessions
  seolens compare

  # Compare two specific sessions
  seolens compare --session 3 --with-session 5

  # Markdown output written to a file
  seolens compare --markdown -o diff.md`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64("session", 0, "Older session (default: second most recent)")
	cmd.Flags().Int64("with-session", 0, "Newer session (default: most recent)")
	cmd.Flags().BoolP("markdown", "m", false, "Markdown output instead of CSV")
	cmd.Flags().StringP("output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().String("db", "", "Database directory (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	baseID, err := cmd.Flags().GetInt64("session")
	if err != nil {
		return err
	}
	nextID, err := cmd.Flags().GetInt64("with-session")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	base, next, err := resolveComparePair(ctx, store, baseID, nextID)
	if err != nil {
		return err
	}

	if base.RootURL != next.RootURL {
		return fmt.Errorf("sessions %d and %d crawled different sites (%s vs %s)",
			base.ID, next.ID, base.RootURL, next.RootURL)
	}

	basePages, err := store.PagesBySession(ctx, base.ID)
	if err != nil {
		return fmt.Errorf("failed to load pages for session %d: %w", base.ID, err)
	}
	nextPages, err := store.PagesBySession(ctx, next.ID)
	if err != nil {
		return fmt.Errorf("failed to load pages for session %d: %w", next.ID, err)
	}

	diff := report.Compare(basePages, nextPages)

	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath) //nolint:gosec // Path comes from the user's --output flag
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if asMarkdown {
		return diff.WriteMarkdown(out, base, next)
	}
	return diff.WriteCSV(out)
}

// resolveComparePair picks the two sessions to compare. With explicit
// ids both must be given; otherwise the two most recent sessions of
// the most recently crawled site are used, older first.
func resolveComparePair(ctx context.Context, store *database.Store, baseID, nextID int64) (base, next *model.Session, err error) {
	if baseID != 0 || nextID != 0 {
		if baseID == 0 || nextID == 0 {
			return nil, nil, errors.New("--session and --with-session must be given together")
		}
		base, err = store.SessionByID(ctx, baseID)
		if err != nil {
			return nil, nil, fmt.Errorf("session %d: %w", baseID, err)
		}
		next, err = store.SessionByID(ctx, nextID)
		if err != nil {
			return nil, nil, fmt.Errorf("session %d: %w", nextID, err)
		}
		return base, next, nil
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, nil, errors.New("no sessions recorded yet (run a crawl first)")
	}

	latest := sessions[0]
	siteSessions, err := store.SessionsForSite(ctx, latest.RootURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions for %s: %w", latest.RootURL, err)
	}
	if len(siteSessions) < 2 {
		return nil, nil, fmt.Errorf("need two sessions of %s to compare, found %d", latest.RootURL, len(siteSessions))
	}

	// Most recent first in the listing; compare older against newer.
	return siteSessions[1], siteSessions[0], nil
}
