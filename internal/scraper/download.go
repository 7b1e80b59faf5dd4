package scraper

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/pydocscan/internal/crawler"
	"github.com/nao1215/pydocscan/internal/database"
	"github.com/nao1215/pydocscan/internal/model"
)

// archiveSuffix identifies the A4 PDF archive link on the download page.
const archiveSuffix = "pdf-a4.zip"

// Download saves the A4 PDF documentation archive.
type Download struct {
	base

	// dir is the directory the archive is written to.
	dir string
}

// NewDownload creates the download routine for the page at seed.
// The archive is written into dir, which is created when missing.
func NewDownload(fetcher Fetcher, seed, dir string, opts ...Option) *Download {
	return &Download{base: newBase(fetcher, seed, opts), dir: dir}
}

// Mode implements Scraper.
func (s *Download) Mode() model.Mode {
	return model.ModeDownload
}

// Scrape downloads the archive. It never returns a table.
func (s *Download) Scrape(ctx context.Context) (*model.Table, error) {
	if _, err := s.Save(ctx); err != nil {
		return nil, err
	}
	return nil, nil
}

// Save downloads the archive and returns the path it was written to.
// An existing file with the same name is overwritten.
func (s *Download) Save(ctx context.Context) (string, error) {
	archiveURL, err := s.archiveURL(ctx)
	if err != nil {
		return "", err
	}

	name, err := archiveName(archiveURL)
	if err != nil {
		return "", err
	}

	data, err := s.fetcher.FetchBytes(ctx, archiveURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create downloads directory: %w", err)
	}

	target := filepath.Join(s.dir, name)
	hash := database.HashBody(data)
	state := archiveState(target, hash)

	if err := os.WriteFile(target, data, 0600); err != nil {
		return "", fmt.Errorf("failed to save archive: %w", err)
	}

	s.logger.Info("archive downloaded and saved",
		"path", target,
		"bytes", len(data),
		"sha3", hash,
		"state", state,
	)
	return target, nil
}

// archiveURL finds the absolute URL of the A4 archive on the download page.
func (s *Download) archiveURL(ctx context.Context) (string, error) {
	doc, err := s.fetchDocument(ctx, s.seed)
	if err != nil {
		return "", err
	}

	table, err := findRequired(doc.Selection, s.seed, "table", map[string]string{"class": "docutils"})
	if err != nil {
		return "", err
	}

	var href string
	crawler.FindAll(table, "a", "").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if h, ok := a.Attr("href"); ok && strings.HasSuffix(h, archiveSuffix) {
			href = h
			return false
		}
		return true
	})
	if href == "" {
		return "", &crawler.TagNotFoundError{
			URL:   s.seed,
			Tag:   "a",
			Attrs: map[string]string{"href": "*" + archiveSuffix},
		}
	}

	return crawler.ResolveURL(s.seed, href)
}

// archiveName returns the last path segment of archiveURL.
func archiveName(archiveURL string) (string, error) {
	u, err := url.Parse(archiveURL)
	if err != nil {
		return "", fmt.Errorf("invalid archive URL %q: %w", archiveURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("archive URL %q has no file name", archiveURL)
	}
	return name, nil
}

// archiveState describes how saving an archive with hash changes target:
// "new", "unchanged" or "updated".
func archiveState(target, hash string) string {
	existing, err := os.ReadFile(target) //nolint:gosec // path built from the downloads directory
	if err != nil {
		return "new"
	}
	if database.HashBody(existing) == hash {
		return "unchanged"
	}
	return "updated"
}
