package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/pydocscan/internal/model"
)

// JSONWriter outputs tables in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONResult is the document written by JSONWriter.
type JSONResult struct {
	// Mode is the routine that produced the table.
	Mode model.Mode `json:"mode"`

	// Header holds the column names.
	Header model.Row `json:"header"`

	// Rows holds the data rows.
	Rows []model.Row `json:"rows"`
}

// Write implements Writer.
func (w *JSONWriter) Write(mode model.Mode, table *model.Table) (int, error) {
	rows := table.Rows
	if rows == nil {
		rows = []model.Row{}
	}
	return w.writeJSON(JSONResult{Mode: mode, Header: table.Header, Rows: rows})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}
