package model

import (
	"errors"
	"fmt"
)

// ErrColumnMismatch is returned when a row does not have as many cells as the header.
var ErrColumnMismatch = errors.New("row column count does not match header")

// Row is one line of a Table.
type Row []string

// Table is the ordered result of an extraction routine.
// Header is row 0; Rows are the data rows. Every row has len(Header) cells.
type Table struct {
	// Header holds the column names.
	Header Row `json:"header"`

	// Rows holds the data rows in the order they were produced.
	Rows []Row `json:"rows"`
}

// NewTable creates an empty Table with the given column names.
func NewTable(columns ...string) *Table {
	return &Table{
		Header: Row(columns),
		Rows:   make([]Row, 0),
	}
}

// Append adds a data row. The row must have exactly as many cells as the header.
func (t *Table) Append(cells ...string) error {
	if len(cells) != len(t.Header) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrColumnMismatch, len(cells), len(t.Header))
	}
	row := make(Row, len(cells))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of data rows, excluding the header.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table is nil or has no header.
// A table with a header and no data rows is still reported to the user.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Header) == 0
}

// Records returns the header followed by the data rows as plain string slices.
func (t *Table) Records() [][]string {
	if t == nil {
		return nil
	}
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, []string(t.Header))
	for _, r := range t.Rows {
		records = append(records, []string(r))
	}
	return records
}

// TableFromRecords is the inverse of Records. The first record is the header.
func TableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("no records: header row is required")
	}
	t := NewTable(records[0]...)
	for i, rec := range records[1:] {
		if err := t.Append(rec...); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return t, nil
}
