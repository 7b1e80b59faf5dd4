package scraper

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/pydocscan/internal/crawler"
)

// fetchDocument fetches and parses pageURL.
func (b *base) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	text, err := b.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return crawler.ParseString(text)
}

// findRequired is crawler.FindRequired with the page URL recorded in the error.
func findRequired(sel *goquery.Selection, pageURL, tag string, attrs map[string]string) (*goquery.Selection, error) {
	found, err := crawler.FindRequired(sel, tag, attrs)
	if err != nil {
		var notFound *crawler.TagNotFoundError
		if errors.As(err, &notFound) && notFound.URL == "" {
			notFound.URL = pageURL
		}
		return nil, err
	}
	return found, nil
}
