// Package database provides SQLite-backed storage for crawl sessions,
// pages, links, and images.
//
// The database is the durable source of truth for resumability: the
// scheduler rebuilds its frontier from the pages and links tables and
// nothing else. Page results are written incrementally as the crawl
// progresses, and a full HTML result (page fields plus its links and
// images) is committed in a single transaction so a crash can never
// leave a page marked crawled with missing child rows.
package database
