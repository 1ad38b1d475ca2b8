package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/seolens/seolens/internal/model"
)

func intPtr(v int) *int          { return &v }
func boolPtr(v bool) *bool       { return &v }
func strPtr(v string) *string    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestWritePagesCSV(t *testing.T) {
	t.Parallel()

	crawledAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	pages := []*model.Page{
		{
			URL:             "https://example.com/",
			Status:          model.PageCrawled,
			Depth:           0,
			InSitemap:       true,
			StatusCode:      intPtr(200),
			ContentType:     "text/html",
			Title:           "Home",
			MetaDescription: "Welcome, with a comma",
			H1Count:         1,
			Indexable:       boolPtr(true),
			WordCount:       120,
			CrawledAt:       timePtr(crawledAt),
		},
		{
			URL:    "https://example.com/broken",
			Status: model.PageError,
			Depth:  1,
			// StatusCode nil: transport failure.
			ErrorMessage: "dial tcp: connection refused",
		},
	}

	var buf bytes.Buffer
	if err := WritePagesCSV(&buf, pages); err != nil {
		t.Fatalf("WritePagesCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d, want header + 2 rows", len(records))
	}

	header := records[0]
	if header[0] != "url" || header[len(header)-1] != "crawled_at" {
		t.Errorf("unexpected header: %v", header)
	}

	row := records[1]
	if row[0] != "https://example.com/" || row[1] != "crawled" || row[3] != "true" {
		t.Errorf("first row = %v", row)
	}
	if row[4] != "200" {
		t.Errorf("status_code = %q, want 200", row[4])
	}
	if row[8] != "Welcome, with a comma" {
		t.Errorf("meta_description = %q, comma should survive quoting", row[8])
	}
	if row[14] != "true" {
		t.Errorf("indexable = %q, want true", row[14])
	}
	if row[23] != "2026-08-01T12:00:00Z" {
		t.Errorf("crawled_at = %q", row[23])
	}

	broken := records[2]
	if broken[4] != "" {
		t.Errorf("nil status code should render empty, got %q", broken[4])
	}
	if broken[14] != "" {
		t.Errorf("nil indexable should render empty, got %q", broken[14])
	}
}

func TestWriteImagesCSVAltDistinction(t *testing.T) {
	t.Parallel()

	images := []model.Image{
		{PageURL: "https://example.com/", Src: "https://example.com/a.png", Alt: strPtr("logo")},
		{PageURL: "https://example.com/", Src: "https://example.com/b.png", Alt: strPtr("")},
		{PageURL: "https://example.com/", Src: "https://example.com/c.png", Alt: nil},
	}

	var buf bytes.Buffer
	if err := WriteImagesCSV(&buf, images); err != nil {
		t.Fatalf("WriteImagesCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// alt_present separates alt="" from a missing attribute.
	if records[1][2] != "logo" || records[1][3] != "true" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][2] != "" || records[2][3] != "true" {
		t.Errorf("row 2 = %v, want empty alt marked present", records[2])
	}
	if records[3][2] != "" || records[3][3] != "false" {
		t.Errorf("row 3 = %v, want absent alt marked not present", records[3])
	}
}

func TestWriteLinksCSV(t *testing.T) {
	t.Parallel()

	links := []model.Link{
		{SourceURL: "https://example.com/", TargetURL: "https://example.com/a", AnchorText: "About us", IsExternal: false},
		{SourceURL: "https://example.com/", TargetURL: "https://other.test/", AnchorText: "Partner", IsExternal: true},
	}

	var buf bytes.Buffer
	if err := WriteLinksCSV(&buf, links); err != nil {
		t.Fatalf("WriteLinksCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d", len(records))
	}
	if records[2][3] != "true" {
		t.Errorf("is_external = %q, want true", records[2][3])
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	base := []*model.Page{
		{URL: "https://example.com/", Status: model.PageCrawled, StatusCode: intPtr(200), Title: "Home", Indexable: boolPtr(true), ContentHash: "aaa"},
		{URL: "https://example.com/gone", Status: model.PageCrawled, StatusCode: intPtr(200), Title: "Gone soon", ContentHash: "bbb"},
		{URL: "https://example.com/flaky", Status: model.PageError},
	}
	next := []*model.Page{
		{URL: "https://example.com/", Status: model.PageCrawled, StatusCode: intPtr(200), Title: "New Home", Indexable: boolPtr(false), ContentHash: "ccc"},
		{URL: "https://example.com/fresh", Status: model.PageCrawled, StatusCode: intPtr(200), Title: "Fresh"},
		{URL: "https://example.com/flaky", Status: model.PageError},
	}

	d := Compare(base, next)

	if len(d.Added) != 1 || d.Added[0] != "https://example.com/fresh" {
		t.Errorf("Added = %v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0] != "https://example.com/gone" {
		t.Errorf("Removed = %v", d.Removed)
	}

	changedFields := make(map[string]FieldChange)
	for _, c := range d.Changed {
		if c.URL != "https://example.com/" {
			t.Errorf("unexpected changed URL %q", c.URL)
		}
		changedFields[c.Field] = c
	}

	if c, ok := changedFields["title"]; !ok || c.Before != "Home" || c.After != "New Home" {
		t.Errorf("title change = %+v", c)
	}
	if c, ok := changedFields["indexable"]; !ok || c.Before != "true" || c.After != "false" {
		t.Errorf("indexable change = %+v", c)
	}
	if _, ok := changedFields["content_hash"]; !ok {
		t.Error("content hash change not detected")
	}
	if _, ok := changedFields["status_code"]; ok {
		t.Error("unchanged status code reported")
	}
}

func TestCompareIgnoresNonCrawled(t *testing.T) {
	t.Parallel()

	base := []*model.Page{
		{URL: "https://example.com/x", Status: model.PageError},
	}
	next := []*model.Page{
		{URL: "https://example.com/x", Status: model.PageCrawled, StatusCode: intPtr(200)},
	}

	d := Compare(base, next)
	if len(d.Added) != 1 {
		t.Errorf("page newly reaching crawled should count as added: %+v", d)
	}
	if len(d.Changed) != 0 {
		t.Errorf("error-to-crawled transition should not produce field changes: %v", d.Changed)
	}
}

func TestDiffWriteCSV(t *testing.T) {
	t.Parallel()

	d := &Diff{
		Added:   []string{"https://example.com/new"},
		Removed: []string{"https://example.com/old"},
		Changed: []FieldChange{{URL: "https://example.com/", Field: "title", Before: "A", After: "B"}},
	}

	var buf bytes.Buffer
	if err := d.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("record count = %d, want header + 3", len(records))
	}
	if records[1][0] != "added" || records[2][0] != "removed" || records[3][0] != "changed" {
		t.Errorf("change types = %v %v %v", records[1][0], records[2][0], records[3][0])
	}
	if records[3][2] != "title" || records[3][3] != "A" || records[3][4] != "B" {
		t.Errorf("changed row = %v", records[3])
	}
}

func TestWriteMarkdownSummary(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	session := &model.Session{
		ID:         3,
		RootURL:    "https://example.com",
		Label:      "weekly",
		Status:     model.SessionComplete,
		StartedAt:  started,
		TotalPages: 2,
	}
	pages := []*model.Page{
		{URL: "https://example.com/", Status: model.PageCrawled, Indexable: boolPtr(true), Title: "Home", MetaDescription: "d", H1Count: 1},
		{URL: "https://example.com/bare", Status: model.PageCrawled, Indexable: boolPtr(true), H1Count: 0},
		{URL: "https://example.com/missing", Status: model.PageError},
	}

	var buf bytes.Buffer
	if err := WriteMarkdownSummary(&buf, session, pages); err != nil {
		t.Fatalf("WriteMarkdownSummary() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Crawl Report",
		"`https://example.com`",
		"weekly",
		"## Pages by Status",
		"## Indexability",
		"Pages without a title: 1",
		"Pages without an H1: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestDiffWriteMarkdownEmpty(t *testing.T) {
	t.Parallel()

	base := &model.Session{ID: 1, StartedAt: time.Now()}
	next := &model.Session{ID: 2, StartedAt: time.Now()}

	var buf bytes.Buffer
	if err := (&Diff{}).WriteMarkdown(&buf, base, next); err != nil {
		t.Fatalf("WriteMarkdown() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No differences found.") {
		t.Error("empty diff should say so")
	}
}
