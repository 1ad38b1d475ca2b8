package analyzer

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"

	"github.com/seolens/seolens/internal/model"
)

// Analysis contains everything extracted from one HTML page.
//
// Design decision: We return a comprehensive result struct from a
// single parse pass rather than per-signal methods because:
//  1. One DOM traversal is cheaper than several
//  2. Related signals (links, counts) stay consistent with each other
//  3. The caller picks what it needs
type Analysis struct {
	// Title is the text of the first <title> element, trimmed.
	Title string

	// MetaDescription is the content of <meta name="description">.
	MetaDescription string

	// H1Count and H2Count are heading element counts.
	H1Count int
	H2Count int

	// FirstH1 is the text of the first <h1>, trimmed.
	FirstH1 string

	// CanonicalURL is the rel="canonical" link resolved to an
	// absolute URL, or empty when absent.
	CanonicalURL string

	// RobotsMeta is the combined robots directives from the meta tag
	// and the X-Robots-Tag header, comma-joined, lowercased.
	RobotsMeta string

	// Indexable is false when a noindex directive is present.
	Indexable bool

	// WordCount is the whitespace-separated word count of the visible
	// body text, script and style content excluded.
	WordCount int

	// Links are the page's anchors, resolved and classified.
	Links []Link

	// Images are the page's <img> elements with resolved sources.
	Images []Image
}

// Link is one resolved anchor from the page.
type Link struct {
	// TargetURL is the absolute, normalized link target.
	TargetURL string

	// AnchorText is the anchor's visible text, trimmed.
	AnchorText string

	// IsExternal reports whether the target host differs from the
	// page's host.
	IsExternal bool
}

// Image is one <img> element from the page.
type Image struct {
	// Src is the absolute image source URL.
	Src string

	// Alt is the alt attribute. Nil means the attribute was absent,
	// which is a different SEO finding than an empty alt.
	Alt *string
}

// InternalLinkCount returns the number of same-host links.
func (a *Analysis) InternalLinkCount() int {
	n := 0
	for _, l := range a.Links {
		if !l.IsExternal {
			n++
		}
	}
	return n
}

// ExternalLinkCount returns the number of cross-host links.
func (a *Analysis) ExternalLinkCount() int {
	return len(a.Links) - a.InternalLinkCount()
}

// Analyze parses the HTML body fetched from pageURL and extracts all
// SEO signals. contentType guides character set detection and
// xRobotsTag carries the response's X-Robots-Tag header, which
// participates in the indexability verdict alongside the robots meta
// tag.
//
// Malformed HTML never fails: the html5 parsing algorithm always
// produces a tree, so the worst case is sparse results.
func Analyze(pageURL string, body []byte, contentType, xRobotsTag string) (*Analysis, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		// Unknown charset: fall back to the raw bytes rather than
		// dropping the page.
		reader = bytes.NewReader(body)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, err
	}

	a := &Analysis{}

	a.Title = strings.TrimSpace(doc.Find("title").First().Text())
	a.MetaDescription, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
	a.MetaDescription = strings.TrimSpace(a.MetaDescription)

	h1s := doc.Find("h1")
	a.H1Count = h1s.Length()
	a.FirstH1 = strings.TrimSpace(h1s.First().Text())
	a.H2Count = doc.Find("h2").Length()

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		a.CanonicalURL = resolveURL(base, href)
	}

	a.RobotsMeta, a.Indexable = robotsDirectives(doc, xRobotsTag)

	a.WordCount = countWords(doc)
	a.Links = extractLinks(doc, base)
	a.Images = extractImages(doc, base)

	return a, nil
}

// robotsDirectives merges the robots meta tag with the X-Robots-Tag
// header and reports whether the page remains indexable. Either
// source saying noindex wins.
func robotsDirectives(doc *goquery.Document, xRobotsTag string) (directives string, indexable bool) {
	var parts []string

	doc.Find(`meta[name="robots"]`).Each(func(_ int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok {
			if content = strings.TrimSpace(strings.ToLower(content)); content != "" {
				parts = append(parts, content)
			}
		}
	})

	if tag := strings.TrimSpace(strings.ToLower(xRobotsTag)); tag != "" {
		parts = append(parts, tag)
	}

	directives = strings.Join(parts, ", ")
	indexable = !strings.Contains(directives, "noindex") && !strings.Contains(directives, "none")
	return directives, indexable
}

// countWords counts whitespace-separated words in the visible body
// text. NFC normalization folds decomposed sequences first so that
// accented text counts the same regardless of encoding form.
func countWords(doc *goquery.Document) int {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()

	text := norm.NFC.String(body.Text())
	return len(strings.Fields(text))
}

// extractLinks collects the page's anchors, resolved against the
// page URL and normalized. Fragment-only and non-HTTP anchors
// (mailto, javascript, tel) are skipped.
func extractLinks(doc *goquery.Document, base *url.URL) []Link {
	var links []Link

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		target := resolveURL(base, href)
		if target == "" {
			return
		}

		targetURL, err := url.Parse(target)
		if err != nil {
			return
		}

		links = append(links, Link{
			TargetURL:  target,
			AnchorText: strings.TrimSpace(s.Text()),
			IsExternal: !model.SameHost(base, targetURL),
		})
	})

	return links
}

// extractImages collects the page's <img> elements. The distinction
// between a missing alt attribute and an empty one is preserved.
func extractImages(doc *goquery.Document, base *url.URL) []Image {
	var images []Image

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}

		img := Image{Src: resolved}
		if alt, ok := s.Attr("alt"); ok {
			img.Alt = &alt
		}
		images = append(images, img)
	})

	return images
}

// resolveURL resolves href against base and normalizes the result.
// Empty, fragment-only, and non-crawlable-scheme hrefs yield "".
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(u)
	if !model.IsCrawlableScheme(resolved) {
		return ""
	}

	return model.NormalizeURL(resolved.String())
}
