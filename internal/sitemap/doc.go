// Package sitemap resolves sitemap-derived seed URLs for a site.
//
// It understands plain urlset documents and sitemap index files
// (followed one level deep per index, bounded overall), including
// gzip-compressed variants. Resolution is best-effort: individual
// sub-fetch failures are logged and skipped, and a site with no
// usable sitemap simply yields no seeds.
package sitemap
