package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/seolens/seolens/internal/config"
)

// TestNewCrawlCmd tests crawl command flag wiring.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	for _, flag := range []string{
		"site", "label", "resume", "concurrency", "timeout",
		"delay", "respect-delay", "user-agent", "max-pages", "db", "config",
	} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag", flag)
		}
	}
}

// TestBuildCrawlConfig tests flag-to-config mapping.
func TestBuildCrawlConfig(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()
	if err := cmd.Flags().Parse([]string{
		"--site", "https://example.com",
		"--label", "weekly",
		"--concurrency", "3",
		"--timeout", "10s",
		"--delay", "500ms",
		"--respect-delay",
		"--max-pages", "100",
		"--db", "/tmp/seolens-test",
	}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		t.Fatalf("buildCrawlConfig() error: %v", err)
	}

	if cfg.SiteURL != "https://example.com" {
		t.Errorf("SiteURL = %q", cfg.SiteURL)
	}
	if cfg.Label != "weekly" {
		t.Errorf("Label = %q", cfg.Label)
	}
	if cfg.Concurrency != 3 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.CrawlDelay != 500*time.Millisecond {
		t.Errorf("CrawlDelay = %v", cfg.CrawlDelay)
	}
	if !cfg.RespectRobotsDelay {
		t.Error("RespectRobotsDelay should be set")
	}
	if cfg.MaxPages != 100 {
		t.Errorf("MaxPages = %d", cfg.MaxPages)
	}
	if cfg.DBDir != "/tmp/seolens-test" {
		t.Errorf("DBDir = %q", cfg.DBDir)
	}
}

// TestBuildCrawlConfigFromFile tests per-site config file overrides.
func TestBuildCrawlConfigFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "seolens.yaml")
	yaml := `defaults:
  concurrency: 2
sites:
  example.com:
    crawl_delay: "2s"
    ignore_patterns:
      - "/cart/*"
`
	if err := os.WriteFile(configPath, []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := NewCrawlCmd()
	if err := cmd.Flags().Parse([]string{
		"--site", "https://example.com",
		"--config", configPath,
	}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		t.Fatalf("buildCrawlConfig() error: %v", err)
	}

	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want file default 2", cfg.Concurrency)
	}
	if cfg.CrawlDelay != 2*time.Second {
		t.Errorf("CrawlDelay = %v, want site override 2s", cfg.CrawlDelay)
	}
	if len(cfg.IgnorePatterns) != 1 || cfg.IgnorePatterns[0] != "/cart/*" {
		t.Errorf("IgnorePatterns = %v", cfg.IgnorePatterns)
	}
}

// TestBuildCrawlConfigMissingExplicitFile tests that a named config
// file must exist.
func TestBuildCrawlConfigMissingExplicitFile(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()
	if err := cmd.Flags().Parse([]string{
		"--site", "https://example.com",
		"--config", filepath.Join(t.TempDir(), "does-not-exist.yaml"),
	}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	if _, err := buildCrawlConfig(cmd); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

// TestCrawlCmdValidation tests fatal startup errors.
func TestCrawlCmdValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing site", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"crawl"})
		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error without --site")
		}
		if !errors.Is(err, config.ErrNoSite) {
			t.Errorf("error = %v, want ErrNoSite", err)
		}
	})

	t.Run("invalid site scheme", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"crawl", "--site", "ftp://example.com"})
		err := cmd.Execute()
		if !errors.Is(err, config.ErrInvalidSite) {
			t.Errorf("error = %v, want ErrInvalidSite", err)
		}
	})

	t.Run("invalid concurrency", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"crawl", "--site", "https://example.com", "--concurrency", "0"})
		err := cmd.Execute()
		if !errors.Is(err, config.ErrInvalidConcurrency) {
			t.Errorf("error = %v, want ErrInvalidConcurrency", err)
		}
	})
}
