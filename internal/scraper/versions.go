package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/pydocscan/internal/crawler"
	"github.com/nao1215/pydocscan/internal/model"
)

// allVersionsMarker identifies the version switcher list in the sidebar.
const allVersionsMarker = "All versions"

// LatestVersions collects the documentation versions listed in the sidebar.
type LatestVersions struct {
	base
}

// NewLatestVersions creates the latest-versions routine for the docs root at seed.
func NewLatestVersions(fetcher Fetcher, seed string, opts ...Option) *LatestVersions {
	return &LatestVersions{base: newBase(fetcher, seed, opts)}
}

// Mode implements Scraper.
func (s *LatestVersions) Mode() model.Mode {
	return model.ModeLatestVersions
}

// Scrape returns (Link, Version, Status) rows in display order.
func (s *LatestVersions) Scrape(ctx context.Context) (*model.Table, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	table := model.NewTable("Link", "Version", "Status")
	for _, e := range entries {
		if err := table.Append(e.Cells()...); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// Entries returns every anchor of the "All versions" list. Hrefs are kept
// exactly as they appear in the page.
func (s *LatestVersions) Entries(ctx context.Context) ([]model.VersionEntry, error) {
	doc, err := s.fetchDocument(ctx, s.seed)
	if err != nil {
		return nil, err
	}

	sidebar, err := findRequired(doc.Selection, s.seed, "div", map[string]string{"class": "sphinxsidebarwrapper"})
	if err != nil {
		return nil, err
	}

	var list *goquery.Selection
	crawler.FindAll(sidebar, "ul", "").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		if strings.Contains(crawler.Text(ul), allVersionsMarker) {
			list = ul
			return false
		}
		return true
	})
	if list == nil {
		return nil, &crawler.TagNotFoundError{URL: s.seed, Tag: "ul"}
	}

	anchors := crawler.FindAll(list, "a", "")
	entries := make([]model.VersionEntry, 0, anchors.Length())
	anchors.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		entries = append(entries, model.ParseVersionEntry(href, crawler.Text(a)))
	})

	unmatched := 0
	for _, e := range entries {
		if !e.Matched() {
			unmatched++
		}
	}
	s.logger.Debug("version list parsed", "entries", len(entries), "unmatched", unmatched)

	return entries, nil
}
