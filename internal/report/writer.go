package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/pydocscan/internal/config"
	"github.com/nao1215/pydocscan/internal/model"
)

// Writer defines the interface for result output.
type Writer interface {
	// Write outputs the table produced by mode.
	// Returns the number of bytes written and any error encountered.
	Write(mode model.Mode, table *model.Table) (int, error)
}

// baseWriter provides common functionality for console writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// NewWriter returns the writer for cfg.Output. Console formats write to
// stdout; the file format writes into cfg.ResultsDir().
func NewWriter(cfg *config.Config, stdout io.Writer, logger *slog.Logger) (Writer, error) {
	switch cfg.Output {
	case config.OutputDefault:
		return NewPlainWriter(stdout), nil
	case config.OutputPretty:
		return NewPrettyWriter(stdout), nil
	case config.OutputFile:
		return NewCSVWriter(cfg.ResultsDir(), WithCSVLogger(logger)), nil
	case config.OutputMarkdown:
		return NewMarkdownWriter(stdout), nil
	case config.OutputJSON:
		return NewJSONWriter(stdout, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("%w: got %q", config.ErrInvalidOutput, cfg.Output)
	}
}
