package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/seolens/seolens/internal/model"
)

// FieldChange records one attribute that differs between two crawls
// of the same URL.
type FieldChange struct {
	URL    string
	Field  string
	Before string
	After  string
}

// Diff is the comparison of two sessions over the same site.
type Diff struct {
	// Added holds URLs present only in the newer session.
	Added []string

	// Removed holds URLs present only in the older session.
	Removed []string

	// Changed holds per-field differences for URLs crawled in both
	// sessions.
	Changed []FieldChange
}

// Empty reports whether the two sessions are identical under the
// compared fields.
func (d *Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare diffs two sessions' pages: base is the older crawl, next
// the newer one. Only pages that reached the crawled state take part;
// a URL that merely errored in one run is not reported as content
// change. Compared fields: status code, title, meta description,
// canonical URL, indexability, and the content hash.
func Compare(base, next []*model.Page) *Diff {
	baseByURL := crawledByURL(base)
	nextByURL := crawledByURL(next)

	d := &Diff{}

	for url := range nextByURL {
		if _, ok := baseByURL[url]; !ok {
			d.Added = append(d.Added, url)
		}
	}
	for url := range baseByURL {
		if _, ok := nextByURL[url]; !ok {
			d.Removed = append(d.Removed, url)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)

	urls := make([]string, 0, len(baseByURL))
	for url := range baseByURL {
		if _, ok := nextByURL[url]; ok {
			urls = append(urls, url)
		}
	}
	sort.Strings(urls)

	for _, url := range urls {
		d.Changed = append(d.Changed, pageChanges(baseByURL[url], nextByURL[url])...)
	}

	return d
}

func crawledByURL(pages []*model.Page) map[string]*model.Page {
	m := make(map[string]*model.Page, len(pages))
	for _, p := range pages {
		if p.Status == model.PageCrawled {
			m[p.URL] = p
		}
	}
	return m
}

func pageChanges(before, after *model.Page) []FieldChange {
	var changes []FieldChange

	add := func(field, b, a string) {
		if b != a {
			changes = append(changes, FieldChange{URL: after.URL, Field: field, Before: b, After: a})
		}
	}

	add("status_code", formatIntPtr(before.StatusCode), formatIntPtr(after.StatusCode))
	add("title", before.Title, after.Title)
	add("meta_description", before.MetaDescription, after.MetaDescription)
	add("canonical_url", before.CanonicalURL, after.CanonicalURL)
	add("indexable", formatBoolPtr(before.Indexable), formatBoolPtr(after.Indexable))
	add("content_hash", before.ContentHash, after.ContentHash)

	return changes
}

// WriteCSV writes the diff as one flat CSV: change_type is added,
// removed, or changed, with field/before/after populated only for
// changed rows.
func (d *Diff) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"change_type", "url", "field", "before", "after"}); err != nil {
		return fmt.Errorf("write diff header: %w", err)
	}

	for _, url := range d.Added {
		if err := cw.Write([]string{"added", url, "", "", ""}); err != nil {
			return fmt.Errorf("write diff row: %w", err)
		}
	}
	for _, url := range d.Removed {
		if err := cw.Write([]string{"removed", url, "", "", ""}); err != nil {
			return fmt.Errorf("write diff row: %w", err)
		}
	}
	for _, c := range d.Changed {
		if err := cw.Write([]string{"changed", c.URL, c.Field, c.Before, c.After}); err != nil {
			return fmt.Errorf("write diff row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes the diff as a readable comparison report.
func (d *Diff) WriteMarkdown(w io.Writer, base, next *model.Session) error {
	md := markdown.NewMarkdown(w)

	md.H1("Session Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "Session", "Started", "Pages"},
		Rows: [][]string{
			{"Before", strconv.FormatInt(base.ID, 10), base.StartedAt.Format("2006-01-02 15:04"), strconv.Itoa(base.TotalPages)},
			{"After", strconv.FormatInt(next.ID, 10), next.StartedAt.Format("2006-01-02 15:04"), strconv.Itoa(next.TotalPages)},
		},
	})
	md.PlainText("")

	if d.Empty() {
		md.PlainText("No differences found.")
		return md.Build()
	}

	if len(d.Added) > 0 {
		md.H2("New Pages")
		md.PlainText("")
		md.BulletList(d.Added...)
		md.PlainText("")
	}

	if len(d.Removed) > 0 {
		md.H2("Removed Pages")
		md.PlainText("")
		md.BulletList(d.Removed...)
		md.PlainText("")
	}

	if len(d.Changed) > 0 {
		rows := make([][]string, 0, len(d.Changed))
		for _, c := range d.Changed {
			rows = append(rows, []string{c.URL, c.Field, c.Before, c.After})
		}
		md.H2("Changed Pages")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Field", "Before", "After"},
			Rows:   rows,
		})
	}

	return md.Build()
}
