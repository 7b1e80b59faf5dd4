package scraper

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"

	"github.com/nao1215/pydocscan/internal/crawler"
	"github.com/nao1215/pydocscan/internal/model"
)

// statusLabel is the case-folded prefix of the status field on a PEP page.
const statusLabel = "status"

// PEPSummary is the outcome of a pep run.
type PEPSummary struct {
	// Tally counts PEPs per status read from their own pages.
	Tally *model.StatusTally

	// Mismatches lists PEPs whose page status disagrees with the index code.
	Mismatches []model.Mismatch

	// Failures lists index rows and pages that could not be read.
	Failures []error
}

// PEP summarizes PEP statuses.
type PEP struct {
	base
}

// NewPEP creates the pep routine for the PEP index at seed.
func NewPEP(fetcher Fetcher, seed string, opts ...Option) *PEP {
	return &PEP{base: newBase(fetcher, seed, opts)}
}

// Mode implements Scraper.
func (s *PEP) Mode() model.Mode {
	return model.ModePEP
}

// Scrape returns (Status, Count) rows in first-seen order followed by the
// Total row. Mismatches and failures are logged as warnings.
func (s *PEP) Scrape(ctx context.Context) (*model.Table, error) {
	summary, err := s.CollectPEPStatuses(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range summary.Mismatches {
		s.logger.Warn("mismatched PEP status", "detail", m.String())
	}
	for _, f := range summary.Failures {
		s.logger.Warn("skipped PEP", "error", f)
	}
	s.logger.Debug("PEP statuses collected",
		"peps", summary.Tally.Total(),
		"mismatches", len(summary.Mismatches),
		"skipped", len(summary.Failures),
	)

	return summary.Tally.Table(), nil
}

// CollectPEPStatuses reads every row of the numerical index and the status
// of the PEP page it links to. The page status is tallied even when it
// disagrees with the index code.
func (s *PEP) CollectPEPStatuses(ctx context.Context) (*PEPSummary, error) {
	doc, err := s.fetchDocument(ctx, s.seed)
	if err != nil {
		return nil, err
	}

	section, err := findRequired(doc.Selection, s.seed, "section", map[string]string{"id": "numerical-index"})
	if err != nil {
		return nil, err
	}
	tbody, err := findRequired(section, s.seed, "tbody", nil)
	if err != nil {
		return nil, err
	}
	rows := crawler.FindAll(tbody, "tr", "")

	summary := &PEPSummary{Tally: model.NewStatusTally()}

	bar := s.newBar(rows.Length(), string(model.ModePEP))
	for i := range rows.Length() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := s.collectRow(ctx, rows.Eq(i), summary)
		_ = bar.Add(1) //nolint:errcheck // progress output only
		if err != nil {
			summary.Failures = append(summary.Failures, fmt.Errorf("index row %d: %w", i+1, err))
		}
	}
	_ = bar.Finish() //nolint:errcheck // progress output only

	return summary, nil
}

// collectRow processes one index row.
func (s *PEP) collectRow(ctx context.Context, row *goquery.Selection, summary *PEPSummary) error {
	code, detailURL, err := s.indexRow(row)
	if err != nil {
		return err
	}

	status, err := s.pageStatus(ctx, detailURL)
	if err != nil {
		return err
	}

	if !model.StatusConsistent(code, status) {
		expected, _ := model.ExpectedStatus(code)
		summary.Mismatches = append(summary.Mismatches, model.Mismatch{
			DetailURL: detailURL,
			Code:      code,
			Observed:  status,
			Expected:  expected,
		})
	}
	summary.Tally.Increment(status)
	return nil
}

// indexRow returns the status code and the absolute PEP page URL of an index
// row. The first cell holds the type letter followed by the status code.
func (s *PEP) indexRow(row *goquery.Selection) (code, detailURL string, err error) {
	td, err := findRequired(row, s.seed, "td", nil)
	if err != nil {
		return "", "", err
	}
	a, err := findRequired(row, s.seed, "a", nil)
	if err != nil {
		return "", "", err
	}

	cell := strings.TrimSpace(crawler.Text(td))
	_, size := utf8.DecodeRuneInString(cell)
	code = cell[size:]

	href, _ := a.Attr("href")
	detailURL, err = crawler.ResolveURL(s.seed, href)
	if err != nil {
		return "", "", err
	}
	return code, detailURL, nil
}

// pageStatus reads the authoritative status from a PEP page.
func (s *PEP) pageStatus(ctx context.Context, detailURL string) (string, error) {
	doc, err := s.fetchDocument(ctx, detailURL)
	if err != nil {
		return "", err
	}

	fields, err := findRequired(doc.Selection, detailURL, "dl", map[string]string{"class": "rfc2822 field-list simple"})
	if err != nil {
		return "", err
	}

	fold := cases.Fold()
	var value *goquery.Selection
	crawler.FindAll(fields, "dt", "").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		label := fold.String(strings.TrimSpace(crawler.Text(dt)))
		if strings.HasPrefix(label, statusLabel) {
			value = dt.Next()
			return false
		}
		return true
	})
	if value == nil || value.Length() == 0 {
		return "", &crawler.TagNotFoundError{
			URL:   detailURL,
			Tag:   "dt",
			Attrs: map[string]string{"text": "Status"},
		}
	}

	return strings.TrimSpace(crawler.Text(value)), nil
}
