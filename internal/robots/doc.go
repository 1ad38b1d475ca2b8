// Package robots resolves robots.txt policy for a site: per-URL
// allow/disallow rules, the Crawl-delay directive, and advertised
// sitemap URLs.
//
// Policy resolution is deliberately permissive: a site without a
// robots.txt, an unreachable server, or an unparsable file all yield
// an allow-everything policy. Disallowing on failure would silently
// skip entire sites over transient errors.
package robots
