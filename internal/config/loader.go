package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".seolens"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the top-level structure of a .seolens YAML file.
type File struct {
	// Defaults applies to every site unless overridden.
	Defaults SiteConfig `yaml:"defaults"`

	// Sites maps a site host (or full root URL) to its overrides.
	Sites map[string]SiteConfig `yaml:"sites"`
}

// Duration wraps time.Duration so YAML values can use the usual
// "500ms"/"2s" notation; yaml.v3 only decodes integers into a bare
// time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// SiteConfig holds per-site crawl overrides.
type SiteConfig struct {
	// UserAgent overrides the User-Agent header for this site.
	UserAgent string `yaml:"user_agent"`

	// CrawlDelay overrides the fixed per-worker delay (e.g. "2s").
	CrawlDelay Duration `yaml:"crawl_delay"`

	// Concurrency overrides the number of in-flight fetches.
	Concurrency int `yaml:"concurrency"`

	// MaxPages overrides the per-session page cap.
	MaxPages int `yaml:"max_pages"`

	// IgnorePatterns are URL path globs never enqueued.
	IgnorePatterns []string `yaml:"ignore_patterns"`
}

// LoadConfigFile loads site configurations from a YAML file.
// Returns ErrConfigNotFound when the file does not exist; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file:
//  1. the explicit path, if given
//  2. .seolens in the current directory
//  3. .seolens in the user's home directory
//
// Returns the path if found, or the empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// SiteFor returns the merged site configuration for a site URL.
// Lookup tries the full URL, then the bare host; defaults fill any
// field the site entry leaves at its zero value.
func (f *File) SiteFor(siteURL string) SiteConfig {
	if f == nil {
		return SiteConfig{}
	}

	if sc, ok := f.Sites[siteURL]; ok {
		return mergeSiteConfig(f.Defaults, sc)
	}

	host := siteURL
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	host = strings.TrimSuffix(host, "/")
	if sc, ok := f.Sites[host]; ok {
		return mergeSiteConfig(f.Defaults, sc)
	}

	return f.Defaults
}

// Apply copies non-zero site overrides onto the Config.
func (c *Config) Apply(sc SiteConfig) {
	if sc.UserAgent != "" {
		c.UserAgent = sc.UserAgent
	}
	if sc.CrawlDelay > 0 {
		c.CrawlDelay = time.Duration(sc.CrawlDelay)
	}
	if sc.Concurrency > 0 {
		c.Concurrency = sc.Concurrency
	}
	if sc.MaxPages > 0 {
		c.MaxPages = sc.MaxPages
	}
	if len(sc.IgnorePatterns) > 0 {
		c.IgnorePatterns = append(c.IgnorePatterns, sc.IgnorePatterns...)
	}
}

// mergeSiteConfig merges defaults with site-specific overrides.
func mergeSiteConfig(defaults, override SiteConfig) SiteConfig {
	result := defaults

	if override.UserAgent != "" {
		result.UserAgent = override.UserAgent
	}
	if override.CrawlDelay > 0 {
		result.CrawlDelay = override.CrawlDelay
	}
	if override.Concurrency > 0 {
		result.Concurrency = override.Concurrency
	}
	if override.MaxPages > 0 {
		result.MaxPages = override.MaxPages
	}
	if len(override.IgnorePatterns) > 0 {
		result.IgnorePatterns = override.IgnorePatterns
	}

	return result
}
