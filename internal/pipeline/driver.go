package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/nao1215/pydocscan/internal/model"
	"github.com/nao1215/pydocscan/internal/report"
	"github.com/nao1215/pydocscan/internal/scraper"
)

const (
	// StartMarker is logged before a routine runs.
	StartMarker = "scanner started"

	// EndMarker is logged after a routine returns, whatever the outcome.
	EndMarker = "scanner finished"
)

// Resolver returns the routine for a mode.
type Resolver func(mode model.Mode) (scraper.Scraper, error)

// History records finished runs. It is implemented by *database.CrawlDB.
type History interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// Driver runs one routine per invocation.
type Driver struct {
	// resolve looks up the routine for a mode.
	resolve Resolver

	// writer receives non-empty result tables. Nil discards them.
	writer report.Writer

	// history records every run. Nil disables recording.
	history History

	// logger receives the start and end markers and errors.
	logger *slog.Logger

	// now is the clock used for run timestamps.
	now func() time.Time
}

// Option is a function that configures a Driver.
type Option func(*Driver)

// WithLogger sets a custom logger for the driver.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithWriter sets the report writer.
func WithWriter(w report.Writer) Option {
	return func(d *Driver) {
		d.writer = w
	}
}

// WithHistory enables run recording.
func WithHistory(h History) Option {
	return func(d *Driver) {
		d.history = h
	}
}

// WithClock sets the clock used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// NewDriver creates a Driver that looks routines up with resolve.
func NewDriver(resolve Resolver, opts ...Option) *Driver {
	d := &Driver{
		resolve: resolve,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Run executes the routine for mode and reports its table.
// The returned error is the routine's or the writer's.
func (d *Driver) Run(ctx context.Context, mode model.Mode) (err error) {
	d.logger.Info(StartMarker, "mode", mode)

	run := &model.Run{Mode: mode, StartedAt: d.now()}
	defer func() {
		run.FinishedAt = d.now()
		run.Status = model.RunStatusSucceeded
		if err != nil {
			run.Status = model.RunStatusFailed
			run.Error = err.Error()
			run.Table = nil
			d.logger.Error("scanner failed", "mode", mode, "error", err)
		}
		d.record(ctx, run)
		d.logger.Info(EndMarker, "mode", mode, "duration", run.Duration().Round(time.Millisecond))
	}()

	s, err := d.resolve(mode)
	if err != nil {
		return err
	}

	table, err := d.invoke(ctx, s)
	if err != nil {
		return err
	}
	run.Table = table

	if table.IsEmpty() || d.writer == nil {
		return nil
	}
	if _, err := d.writer.Write(mode, table); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// invoke runs s once, turning a panic into an error.
func (d *Driver) invoke(ctx context.Context, s scraper.Scraper) (table *model.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("routine panicked", "mode", s.Mode(), "stack", string(debug.Stack()))
			table = nil
			err = fmt.Errorf("%s panicked: %v", s.Mode(), r)
		}
	}()
	return s.Scrape(ctx)
}

// record saves run. History failures are logged, never returned.
func (d *Driver) record(ctx context.Context, run *model.Run) {
	if d.history == nil {
		return
	}
	// The run is recorded even when ctx was canceled by a signal.
	id, err := d.history.SaveRun(context.WithoutCancel(ctx), run)
	if err != nil {
		d.logger.Warn("failed to record run", "mode", run.Mode, "error", err)
		return
	}
	d.logger.Debug("run recorded", "id", id)
}
