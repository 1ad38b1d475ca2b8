package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/crawler"
	"github.com/seolens/seolens/internal/database"
	seolog "github.com/seolens/seolens/internal/log"
	"github.com/seolens/seolens/internal/model"
)

// exitCodeInterrupted is the conventional exit code for termination
// by SIGINT (128 + 2).
const exitCodeInterrupted = 130

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl a website and record its SEO signals",
		Long: `Crawl fetches a site's pages starting from its sitemap and root URL,
extracts on-page SEO signals, and stores everything in a local SQLite
database as one session.

The crawler honors robots.txt rules, never leaves the site's host, and
persists progress incrementally: an interrupted crawl (Ctrl-C) can be
continued later with --resume.

Examples:
  # Crawl a site
  seolens crawl --site https://example.com

  # Crawl with a session label and politeness delay
  seolens crawl --site https://example.com --label weekly --delay 500ms

  # Honor the robots.txt Crawl-delay directive
  seolens crawl --site https://example.com --respect-delay

  # Continue the most recent interrupted session
  seolens crawl --resume

Configuration file (.seolens) example:
  defaults:
    concurrency: 5
  sites:
    example.com:
      crawl_delay: "1s"
      ignore_patterns:
        - "/cart/*"
        - "*.pdf"`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringP("site", "s", "", "Root URL of the site to crawl (required unless --resume)")
	cmd.Flags().StringP("label", "l", "", "Optional label for this session")
	cmd.Flags().BoolP("resume", "r", false, "Resume the most recent interrupted session")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency, "Number of concurrent fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each HTTP request")
	cmd.Flags().DurationP("delay", "d", 0, "Fixed pause each worker takes between pages")
	cmd.Flags().Bool("respect-delay", false, "Honor the robots.txt Crawl-delay directive")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent, "User-Agent header value")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages, "Maximum pages to dispatch in this run")
	cmd.Flags().String("db", "", "Database directory (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .seolens in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := seolog.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Signal handling: first signal cancels the context, which stops
	// dispatch and abandons in-flight fetches.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping dispatch")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// buildCrawlConfig creates a Config from cobra command flags and the
// optional config file. Flag values act as the base; per-site file
// overrides are applied on top, matching the file's intent of tuning
// individual sites.
func buildCrawlConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.SiteURL, err = cmd.Flags().GetString("site"); err != nil {
		return nil, err
	}
	if cfg.Label, err = cmd.Flags().GetString("label"); err != nil {
		return nil, err
	}
	if cfg.Resume, err = cmd.Flags().GetBool("resume"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
		return nil, err
	}
	if cfg.RespectRobotsDelay, err = cmd.Flags().GetBool("respect-delay"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// If the user explicitly named a config file, its absence is an
	// error; the default search locations are optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" && explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if cfg.SiteURL != "" {
			cfg.Apply(file.SiteFor(cfg.SiteURL))
		} else {
			cfg.Apply(file.Defaults)
		}
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runCrawl opens the store, runs the session, and maps the outcome to
// an exit status: 0 on normal drain, 130 after an interruption signal
// (session marked interrupted first so --resume can pick it up).
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	c := crawler.New(cfg, store, crawler.WithLogger(logger))

	session, err := c.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && session != nil {
			// The run context is already canceled; session cleanup
			// still has to reach the database.
			cleanupCtx := context.WithoutCancel(ctx)
			if merr := store.MarkSessionInterrupted(cleanupCtx, session.ID); merr != nil {
				logger.Error("failed to mark session interrupted", "error", merr)
			}
			if cerr := store.Close(); cerr != nil {
				logger.Error("failed to close database", "error", cerr)
			}
			fmt.Fprintf(os.Stderr, "Crawl interrupted. Resume with: seolens crawl --resume\n")
			os.Exit(exitCodeInterrupted)
		}
		_ = store.Close()
		return err
	}

	// A crawl stopped by the page cap returns without error but leaves
	// the session interrupted; tell the user how to continue it.
	if session.Status == model.SessionInterrupted {
		crawled, err := store.CrawledPageCount(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("failed to count crawled pages: %w", err)
		}
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		fmt.Printf("Page cap reached: session %d, %d pages crawled so far\n", session.ID, crawled)
		fmt.Printf("Continue with: seolens crawl --resume\n")
		return nil
	}

	// CompleteSession persisted the crawled page count; read it back
	// instead of re-counting.
	completed, err := store.SessionByID(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("failed to load completed session: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	fmt.Printf("Crawl complete: session %d, %d pages crawled\n", completed.ID, completed.TotalPages)
	fmt.Printf("Export with: seolens report --session %d\n", completed.ID)
	return nil
}
