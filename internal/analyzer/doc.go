// Package analyzer extracts SEO-relevant signals from an HTML page:
// title, meta description, heading structure, canonical URL, robots
// directives, word count, outbound links, and images.
//
// Analysis is forgiving. Real-world HTML is routinely malformed, so
// the parser takes whatever the document gives it and reports
// whatever it finds; there is no failure mode beyond empty fields.
package analyzer
