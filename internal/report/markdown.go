package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/seolens/seolens/internal/model"
)

// WriteMarkdownSummary writes a human-readable session summary:
// session metadata, a status breakdown, indexability counts, and the
// most common SEO findings (missing titles, missing descriptions,
// multiple H1s).
func WriteMarkdownSummary(w io.Writer, session *model.Session, pages []*model.Page) error {
	md := markdown.NewMarkdown(w)

	md.H1("Crawl Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Site", "`" + session.RootURL + "`"},
			{"Session", strconv.FormatInt(session.ID, 10)},
			{"Label", session.Label},
			{"Status", string(session.Status)},
			{"Started", session.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Completed", formatCompleted(session)},
			{"Pages crawled", strconv.Itoa(session.TotalPages)},
		},
	})
	md.PlainText("")

	writeStatusBreakdown(md, pages)
	writeIndexability(md, pages)
	writeFindings(md, pages)

	return md.Build()
}

func formatCompleted(session *model.Session) string {
	if session.CompletedAt == nil {
		return "-"
	}
	return session.CompletedAt.Format("2006-01-02 15:04:05 MST")
}

func writeStatusBreakdown(md *markdown.Markdown, pages []*model.Page) {
	counts := make(map[model.PageStatus]int)
	for _, p := range pages {
		counts[p.Status]++
	}

	md.H2("Pages by Status")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"crawled", strconv.Itoa(counts[model.PageCrawled])},
			{"error", strconv.Itoa(counts[model.PageError])},
			{"skipped", strconv.Itoa(counts[model.PageSkipped])},
			{"pending", strconv.Itoa(counts[model.PagePending])},
		},
	})
	md.PlainText("")
}

func writeIndexability(md *markdown.Markdown, pages []*model.Page) {
	indexable, noindex, notApplicable := 0, 0, 0
	for _, p := range pages {
		if p.Status != model.PageCrawled {
			continue
		}
		switch {
		case p.Indexable == nil:
			notApplicable++
		case *p.Indexable:
			indexable++
		default:
			noindex++
		}
	}

	md.H2("Indexability")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{"indexable", strconv.Itoa(indexable)},
			{"not indexable", strconv.Itoa(noindex)},
			{"not applicable (non-HTML, redirects counted above)", strconv.Itoa(notApplicable)},
		},
	})
	md.PlainText("")
}

func writeFindings(md *markdown.Markdown, pages []*model.Page) {
	missingTitle, missingDescription, multipleH1, noH1 := 0, 0, 0, 0
	for _, p := range pages {
		if p.Status != model.PageCrawled || p.Indexable == nil {
			continue
		}
		if p.Title == "" {
			missingTitle++
		}
		if p.MetaDescription == "" {
			missingDescription++
		}
		switch {
		case p.H1Count == 0:
			noH1++
		case p.H1Count > 1:
			multipleH1++
		}
	}

	md.H2("Common Findings")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Pages without a title: %d", missingTitle),
		fmt.Sprintf("Pages without a meta description: %d", missingDescription),
		fmt.Sprintf("Pages without an H1: %d", noH1),
		fmt.Sprintf("Pages with multiple H1s: %d", multipleH1),
	)
}
