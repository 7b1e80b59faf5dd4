package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/pydocscan/internal/crawler"
	"github.com/nao1215/pydocscan/internal/model"
)

// whatsNewArticles selects the top level entries of the release notes index.
const whatsNewArticles = "div.toctree-wrapper li.toctree-l1 > a"

// WhatsNew collects the "What's New in Python" articles.
type WhatsNew struct {
	base
}

// NewWhatsNew creates the whats-new routine for the index at seed.
func NewWhatsNew(fetcher Fetcher, seed string, opts ...Option) *WhatsNew {
	return &WhatsNew{base: newBase(fetcher, seed, opts)}
}

// Mode implements Scraper.
func (s *WhatsNew) Mode() model.Mode {
	return model.ModeWhatsNew
}

// Scrape returns one (Link, Title, Editor/Author) row per article that could
// be read. Articles that fail are logged as warnings after all were tried.
func (s *WhatsNew) Scrape(ctx context.Context) (*model.Table, error) {
	doc, err := s.fetchDocument(ctx, s.seed)
	if err != nil {
		return nil, err
	}

	section, err := findRequired(doc.Selection, s.seed, "section", map[string]string{"id": "what-s-new-in-python"})
	if err != nil {
		return nil, err
	}
	anchors := crawler.Select(section, whatsNewArticles)

	table := model.NewTable("Link", "Title", "Editor/Author")
	var failures []error

	bar := s.newBar(anchors.Length(), string(model.ModeWhatsNew))
	for i := range anchors.Length() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		href, _ := anchors.Eq(i).Attr("href")
		link, title, authors, err := s.article(ctx, href)
		_ = bar.Add(1) //nolint:errcheck // progress output only
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if err := table.Append(link, title, authors); err != nil {
			return nil, err
		}
	}
	_ = bar.Finish() //nolint:errcheck // progress output only

	for _, f := range failures {
		s.logger.Warn("skipped release notes article", "error", f)
	}
	s.logger.Debug("release notes collected", "articles", table.Len(), "skipped", len(failures))

	return table, nil
}

// article reads the title and the editor/author list of one article.
func (s *WhatsNew) article(ctx context.Context, href string) (link, title, authors string, err error) {
	link, err = crawler.ResolveURL(s.seed, href)
	if err != nil {
		return "", "", "", err
	}

	doc, err := s.fetchDocument(ctx, link)
	if err != nil {
		return "", "", "", err
	}

	h1, err := findRequired(doc.Selection, link, "h1", nil)
	if err != nil {
		return "", "", "", err
	}
	dl, err := findRequired(doc.Selection, link, "dl", nil)
	if err != nil {
		return "", "", "", fmt.Errorf("no author list: %w", err)
	}

	return link, crawler.Text(h1), strings.ReplaceAll(crawler.Text(dl), "\n", " "), nil
}
