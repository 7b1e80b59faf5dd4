// Package log builds the slog logger used by every pydocscan component.
//
// Records go to two destinations at once:
//   - the console (stderr), at Info by default, Debug with --verbose and
//     Warn with --quiet
//   - a size rotated log file under <base>/logs, always at Info or above
//
// Both destinations share one timestamp layout and mask credentials that
// may appear in URLs or request headers.
//
// # Usage
//
//	logger, closer, err := log.NewLogger(cfg, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer closer.Close()
//
//	logger.Info("scanner started", "mode", cfg.Mode)
//
// The returned *slog.Logger also satisfies retryablehttp's LeveledLogger,
// so HTTP retries are logged through the same handlers.
package log
