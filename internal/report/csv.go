package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/seolens/seolens/internal/model"
)

// pagesHeader is the column set of the pages export. The order is a
// stable contract: downstream spreadsheets and diff tooling rely on it.
var pagesHeader = []string{
	"url", "status", "depth", "in_sitemap",
	"status_code", "redirect_url", "content_type",
	"title", "meta_description", "h1_count", "h2_count", "first_h1",
	"canonical_url", "robots_meta", "indexable",
	"word_count", "internal_links", "external_links", "image_count",
	"content_hash", "response_time_ms", "size_bytes",
	"error_message", "crawled_at",
}

// WritePagesCSV writes the full page export for one session.
func WritePagesCSV(w io.Writer, pages []*model.Page) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(pagesHeader); err != nil {
		return fmt.Errorf("write pages header: %w", err)
	}

	for _, p := range pages {
		record := []string{
			p.URL,
			string(p.Status),
			strconv.Itoa(p.Depth),
			strconv.FormatBool(p.InSitemap),
			formatIntPtr(p.StatusCode),
			p.RedirectURL,
			p.ContentType,
			p.Title,
			p.MetaDescription,
			strconv.Itoa(p.H1Count),
			strconv.Itoa(p.H2Count),
			p.FirstH1,
			p.CanonicalURL,
			p.RobotsMeta,
			formatBoolPtr(p.Indexable),
			strconv.Itoa(p.WordCount),
			strconv.Itoa(p.InternalLinkCount),
			strconv.Itoa(p.ExternalLinkCount),
			strconv.Itoa(p.ImageCount),
			p.ContentHash,
			strconv.FormatInt(p.ResponseTimeMs, 10),
			strconv.FormatInt(p.SizeBytes, 10),
			p.ErrorMessage,
			formatTimePtr(p.CrawledAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write page row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteLinksCSV writes the link export for one session.
func WriteLinksCSV(w io.Writer, links []model.Link) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"source_url", "target_url", "anchor_text", "is_external"}); err != nil {
		return fmt.Errorf("write links header: %w", err)
	}

	for _, l := range links {
		record := []string{l.SourceURL, l.TargetURL, l.AnchorText, strconv.FormatBool(l.IsExternal)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write link row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteImagesCSV writes the image export for one session. CSV cannot
// express NULL, so a separate alt_present column keeps the
// missing-vs-empty alt distinction readable.
func WriteImagesCSV(w io.Writer, images []model.Image) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"page_url", "src", "alt", "alt_present"}); err != nil {
		return fmt.Errorf("write images header: %w", err)
	}

	for _, img := range images {
		alt := ""
		present := false
		if img.Alt != nil {
			alt = *img.Alt
			present = true
		}
		record := []string{img.PageURL, img.Src, alt, strconv.FormatBool(present)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write image row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatBoolPtr(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func formatTimePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
