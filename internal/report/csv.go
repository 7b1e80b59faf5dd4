package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/pydocscan/internal/config"
	"github.com/nao1215/pydocscan/internal/model"
)

// CSVWriter saves each table as <dir>/<mode>_<YYYY-MM-DD_HH-MM-SS>.csv.
// Files are UTF-8 with LF line endings; fields are quoted only when needed.
type CSVWriter struct {
	// dir is the results directory, created on first write.
	dir string

	// now returns the time used in file names.
	now func() time.Time

	// logger receives the path of every saved file.
	logger *slog.Logger

	// lastPath is the path of the most recently written file.
	lastPath string
}

// CSVWriterOption configures a CSVWriter.
type CSVWriterOption func(*CSVWriter)

// WithClock sets the clock used for file names.
func WithClock(now func() time.Time) CSVWriterOption {
	return func(w *CSVWriter) {
		w.now = now
	}
}

// WithCSVLogger sets the logger that reports saved files.
func WithCSVLogger(logger *slog.Logger) CSVWriterOption {
	return func(w *CSVWriter) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewCSVWriter creates a CSVWriter that saves files into dir.
func NewCSVWriter(dir string, opts ...CSVWriterOption) *CSVWriter {
	w := &CSVWriter{
		dir:    dir,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *CSVWriter) Write(mode model.Mode, table *model.Table) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(table.Records()); err != nil {
		return 0, fmt.Errorf("failed to encode CSV: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create results directory: %w", err)
	}

	path := filepath.Join(w.dir, FileName(mode, w.now()))
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return 0, fmt.Errorf("failed to save results: %w", err)
	}
	w.lastPath = path

	w.logger.Info("results saved", "path", path, "rows", table.Len())
	return buf.Len(), nil
}

// LastPath returns the path of the most recently written file.
func (w *CSVWriter) LastPath() string {
	return w.lastPath
}

// FileName returns the CSV file name for a table produced by mode at t.
func FileName(mode model.Mode, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", mode, t.Format(config.ResultTimeFormat))
}

// ReadCSV loads a file written by CSVWriter back into a Table.
func ReadCSV(path string) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // path of a results file
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return model.TableFromRecords(records)
}
