// Package scraper implements the extraction routines of pydocscan.
//
// Every routine follows the same three stages: fetch a seed page, enumerate
// the targets listed on it, then extract one record per target. Failures on
// the seed page abort the routine. Failures on a single target are logged
// as warnings and the target is skipped.
//
//   - whats-new: release notes articles with their title and authors
//   - latest-versions: the "All versions" list of the documentation sidebar
//   - download: the A4 PDF documentation archive
//   - pep: PEP status counts, cross-checked against the PEP index
package scraper
