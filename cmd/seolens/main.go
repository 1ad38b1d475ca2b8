// Package main provides the entry point for the seolens CLI.
//
// seolens crawls a website, extracts on-page SEO signals, and stores
// them per session so crawls can be resumed, exported, and compared
// over time.
//
// Usage:
//
//	seolens crawl --site https://example.com
//	seolens crawl --resume
//	seolens report --markdown
//	seolens compare
//
// See --help for all available options.
package main

// main is the entry point for seolens.
func main() {
	Execute()
}
