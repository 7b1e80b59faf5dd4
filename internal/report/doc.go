// Package report renders result tables.
//
// Writers implement the Writer interface:
//   - PlainWriter: one line per row, cells separated by a space (default)
//   - PrettyWriter: an aligned table for the terminal (--output pretty)
//   - CSVWriter: a timestamped CSV file in the results directory (--output file)
//   - MarkdownWriter: a Markdown document (--output markdown)
//   - JSONWriter: a JSON object (--output json)
//
// NewWriter selects the writer for the configured output format.
package report
