// Package crawler fetches and parses the documentation pages scraped by pydocscan.
//
// # Components
//
//   - Fetcher: HTTP GET with retries, politeness delay and an optional
//     response cache. Bodies are always decoded as UTF-8.
//   - Document helpers: Parse, FindRequired, FindAll, Select and Text wrap
//     goquery so extraction routines can express "this element must exist".
//
// # Errors
//
// Every transport failure and every non-2xx response is returned as a
// *FetchError carrying the requested URL. A missing mandatory element is
// returned as a *TagNotFoundError.
//
// # Usage
//
//	fetcher := crawler.NewFetcher(crawler.WithRetryMax(3), crawler.WithCache(db, 0))
//	text, err := fetcher.Fetch(ctx, "https://peps.python.org/")
//	doc, err := crawler.ParseString(text)
//	section, err := crawler.FindRequired(doc.Selection, "section", map[string]string{"id": "numerical-index"})
package crawler
