package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/database"
	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a session's pages, links, and images",
		Long: `Report exports the crawl data of one session as CSV files
(pages, links, images), or prints a markdown summary.

Examples:
  # Export the latest session to the current directory
  seolens report

  # Export a specific session to a directory
  seolens report --session 3 --output ./exports

  # Print a markdown summary instead of CSV files
  seolens report --markdown`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().Int64("session", 0, "Session to export (default: the latest)")
	cmd.Flags().StringP("output", "o", ".", "Directory for the CSV files")
	cmd.Flags().BoolP("markdown", "m", false, "Print a markdown summary instead of writing CSVs")
	cmd.Flags().String("db", "", "Database directory (default: XDG data directory)")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	sessionID, err := cmd.Flags().GetInt64("session")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	session, err := resolveSession(ctx, store, sessionID)
	if err != nil {
		return err
	}

	pages, err := store.PagesBySession(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}

	if asMarkdown {
		return report.WriteMarkdownSummary(cmd.OutOrStdout(), session, pages)
	}

	links, err := store.LinksBySession(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load links: %w", err)
	}
	images, err := store.ImagesBySession(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load images: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	prefix := "seolens_session" + strconv.FormatInt(session.ID, 10)
	exports := []struct {
		name  string
		write func(f *os.File) error
	}{
		{prefix + "_pages.csv", func(f *os.File) error { return report.WritePagesCSV(f, pages) }},
		{prefix + "_links.csv", func(f *os.File) error { return report.WriteLinksCSV(f, links) }},
		{prefix + "_images.csv", func(f *os.File) error { return report.WriteImagesCSV(f, images) }},
	}

	for _, e := range exports {
		path := filepath.Join(outputDir, e.name)
		f, err := os.Create(path) //nolint:gosec // Path is derived from the user's --output flag
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := e.write(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}

	return nil
}

// openStore opens the database using the --db flag or the default
// data directory.
func openStore(cmd *cobra.Command) (*database.Store, error) {
	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	store, err := database.Open(dbDir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database (run a crawl first?): %w", err)
	}
	return store, nil
}

// resolveSession loads the requested session, or the most recent one
// when id is zero.
func resolveSession(ctx context.Context, store *database.Store, id int64) (*model.Session, error) {
	if id != 0 {
		session, err := store.SessionByID(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrSessionNotFound) {
				return nil, fmt.Errorf("session %d not found", id)
			}
			return nil, err
		}
		return session, nil
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, errors.New("no sessions recorded yet (run a crawl first)")
	}
	return sessions[0], nil
}
