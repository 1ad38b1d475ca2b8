package model

import (
	"net/url"
	"strings"
)

// NormalizeURL normalizes a URL for frontier deduplication.
//
// Fragments are dropped and the scheme and host are lowercased, since
// neither affects the resource identity. The path is kept verbatim:
// "https://example.com" and "https://example.com/" stay distinct so
// that root seeding can detect an exact match, trailing slash included.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	return u.String()
}

// SameHost reports whether target shares its host with base.
// Only same-host links feed back into the frontier.
func SameHost(base *url.URL, target *url.URL) bool {
	return strings.EqualFold(base.Host, target.Host)
}

// IsCrawlableScheme reports whether the URL scheme is one the crawler
// can fetch. Mailto, javascript, tel and data links are parsed out of
// pages but never enqueued.
func IsCrawlableScheme(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
