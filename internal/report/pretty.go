package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nao1215/pydocscan/internal/model"
)

// PrettyWriter prints an aligned table with a header row.
type PrettyWriter struct {
	baseWriter
}

// NewPrettyWriter creates a PrettyWriter that outputs to the given writer.
func NewPrettyWriter(output io.Writer) *PrettyWriter {
	return &PrettyWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *PrettyWriter) Write(_ model.Mode, t *model.Table) (int, error) {
	return io.WriteString(w.output, RenderTable(t)+"\n")
}

// RenderTable renders t with the rounded box style. Cells are left aligned
// and header names are kept as they are.
func RenderTable(t *model.Table) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	tw.AppendHeader(toRow(t.Header))
	for _, r := range t.Rows {
		tw.AppendRow(toRow(r))
	}

	configs := make([]table.ColumnConfig, len(t.Header))
	for i := range t.Header {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(cells model.Row) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
