package log

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nao1215/pydocscan/internal/config"
)

// TimeFormat is the timestamp layout of every log line.
const TimeFormat = "02.01.2006 15:04:05"

// ConsoleLevel returns the console level selected by cfg.
func ConsoleLevel(cfg *config.Config) slog.Level {
	switch {
	case cfg.Verbose:
		return slog.LevelDebug
	case cfg.Quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates the application logger writing to console and to the
// rotated file cfg.LogFile(). The caller must Close the returned closer to
// flush the file.
func NewLogger(cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(cfg.LogDir(), 0750); err != nil {
		return nil, nil, err
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile(),
		MaxSize:    config.LogMaxSizeMB,
		MaxBackups: config.LogMaxBackups,
	}

	handler := NewFanoutHandler(
		NewTextHandler(console, ConsoleLevel(cfg)),
		NewTextHandler(file, slog.LevelInfo),
	)
	return slog.New(handler), file, nil
}

// NewConsoleLogger creates a logger that writes only to w.
// It is used before the configuration is known and by tests.
func NewConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewFanoutHandler(NewTextHandler(w, level)))
}

// NewTextHandler creates a text handler with the pydocscan time format.
func NewTextHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: formatTime,
	})
}

func formatTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Format(TimeFormat))
	}
	return a
}
