package config

import (
	"errors"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, DefaultConcurrency)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.UserAgent == "" {
		t.Error("UserAgent should have a default")
	}
	if cfg.MaxPages != DefaultMaxPages {
		t.Errorf("MaxPages = %d, want %d", cfg.MaxPages, DefaultMaxPages)
	}
	if cfg.DBDir == "" {
		t.Error("DBDir should default to the XDG data directory")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.SiteURL = "https://example.com"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing site",
			mutate:  func(c *Config) { c.SiteURL = "" },
			wantErr: ErrNoSite,
		},
		{
			name:    "missing site allowed on resume",
			mutate:  func(c *Config) { c.SiteURL = ""; c.Resume = true },
			wantErr: nil,
		},
		{
			name:    "relative site URL",
			mutate:  func(c *Config) { c.SiteURL = "example.com" },
			wantErr: ErrInvalidSite,
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *Config) { c.SiteURL = "ftp://example.com" },
			wantErr: ErrInvalidSite,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative crawl delay",
			mutate:  func(c *Config) { c.CrawlDelay = -time.Second },
			wantErr: ErrInvalidCrawlDelay,
		},
		{
			name:    "negative max pages",
			mutate:  func(c *Config) { c.MaxPages = -1 },
			wantErr: ErrInvalidMaxPages,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
