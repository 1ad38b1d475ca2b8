// Package model defines the core data types shared across seolens:
// crawl sessions, page records with their SEO field set, discovered
// links and images, and URL normalization helpers.
//
// The page record is a closed, fixed schema. Every field the crawler
// persists is declared here; the storage layer never writes dynamic
// field sets.
package model
