package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/sha3"
)

// Page is a cached HTTP response body.
type Page struct {
	// URL is the absolute request URL and the cache key.
	URL string

	// StatusCode is the HTTP status of the cached response. Only 2xx
	// responses are stored by the fetcher.
	StatusCode int

	// ContentType is the Content-Type header of the response.
	ContentType string

	// Body is the raw response body.
	Body []byte

	// Hash is the hex encoded SHA3-256 digest of Body.
	Hash string

	// FetchedAt is when the response was received.
	FetchedAt time.Time
}

// HashBody returns the hex encoded SHA3-256 digest of body.
func HashBody(body []byte) string {
	sum := sha3.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// LookupPage returns the cached page for url, or nil if there is none.
// When maxAge is positive, entries older than maxAge are treated as missing.
func (cdb *CrawlDB) LookupPage(ctx context.Context, url string, maxAge time.Duration) (*Page, error) {
	query := `
	SELECT url, status_code, content_type, body, body_hash, fetched_at
	FROM pages
	WHERE url = ?
	`

	var page Page
	var contentType sql.NullString
	var fetchedAt string

	err := cdb.db.QueryRowContext(ctx, query, url).Scan(
		&page.URL,
		&page.StatusCode,
		&contentType,
		&page.Body,
		&page.Hash,
		&fetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	page.ContentType = contentType.String
	page.FetchedAt = parseTimestamp(fetchedAt)

	if maxAge > 0 && cdb.now().Sub(page.FetchedAt) > maxAge {
		return nil, nil
	}
	return &page, nil
}

// StorePage inserts or replaces the cached page for page.URL.
// Hash and FetchedAt are filled in when empty.
func (cdb *CrawlDB) StorePage(ctx context.Context, page *Page) error {
	if page.Hash == "" {
		page.Hash = HashBody(page.Body)
	}
	if page.FetchedAt.IsZero() {
		page.FetchedAt = cdb.now()
	}

	query := `
	INSERT INTO pages (url, status_code, content_type, body, body_hash, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		status_code = excluded.status_code,
		content_type = excluded.content_type,
		body = excluded.body,
		body_hash = excluded.body_hash,
		fetched_at = excluded.fetched_at
	`

	body := page.Body
	if body == nil {
		body = []byte{}
	}

	_, err := cdb.db.ExecContext(ctx, query,
		page.URL,
		page.StatusCode,
		page.ContentType,
		body,
		page.Hash,
		formatTimestamp(page.FetchedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to store page: %w", err)
	}
	return nil
}

// ClearPages removes every cached page and returns how many were removed.
// Run history is kept.
func (cdb *CrawlDB) ClearPages(ctx context.Context) (int64, error) {
	result, err := cdb.db.ExecContext(ctx, "DELETE FROM pages")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return result.RowsAffected()
}

// CountPages returns the number of cached pages.
func (cdb *CrawlDB) CountPages(ctx context.Context) (int, error) {
	var count int
	if err := cdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached pages: %w", err)
	}
	return count, nil
}
