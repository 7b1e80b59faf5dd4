// Package database provides SQLite-based storage for pydocscan.
//
// This package implements the CrawlDB, which stores:
//   - Fetched pages, so repeated runs can be served without network access
//   - The history of scanner invocations and the tables they produced
//
// SQLite (via modernc.org/sqlite) keeps the store in a single CGO-free file
// under the XDG cache directory. The cache is emptied with --clear-cache.
package database
