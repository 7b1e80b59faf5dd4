package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/pydocscan/internal/model"
)

// MarkdownWriter outputs tables as a Markdown document.
// The pep summary additionally gets a mermaid pie chart.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(mode model.Mode, table *model.Table) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2("pydocscan: " + string(mode))
	md.PlainText("")

	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, []string(r))
	}
	md.Table(markdown.TableSet{
		Header: []string(table.Header),
		Rows:   rows,
	})
	md.PlainText("")

	if mode == model.ModePEP {
		w.writePieChart(md, table)
	}

	return len(md.String()), md.Build()
}

// writePieChart writes a mermaid pie chart of a (Status, Count) table.
// The Total row is left out.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, table *model.Table) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("PEP statuses"),
		piechart.WithShowData(true),
	)

	added := 0
	for _, r := range table.Rows {
		if len(r) < 2 || r[0] == model.TotalLabel {
			continue
		}
		count, err := strconv.ParseUint(r[1], 10, 64)
		if err != nil || count == 0 {
			continue
		}
		chart.LabelAndIntValue(r[0], count)
		added++
	}
	if added == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
