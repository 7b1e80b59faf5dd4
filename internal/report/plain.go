package report

import (
	"io"
	"strings"

	"github.com/nao1215/pydocscan/internal/model"
)

// PlainWriter prints the header and every row on its own line with cells
// separated by a single space.
type PlainWriter struct {
	baseWriter
}

// NewPlainWriter creates a PlainWriter that outputs to the given writer.
func NewPlainWriter(output io.Writer) *PlainWriter {
	return &PlainWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *PlainWriter) Write(_ model.Mode, table *model.Table) (int, error) {
	var b strings.Builder
	for _, record := range table.Records() {
		b.WriteString(strings.Join(record, " "))
		b.WriteByte('\n')
	}
	return io.WriteString(w.output, b.String())
}
