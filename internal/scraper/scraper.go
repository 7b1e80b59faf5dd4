package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/nao1215/pydocscan/internal/config"
	"github.com/nao1215/pydocscan/internal/model"
)

// Scraper is one extraction routine.
type Scraper interface {
	// Mode returns the mode the routine implements.
	Mode() model.Mode

	// Scrape runs the routine. It returns nil when the routine produces no
	// table (the download mode).
	Scrape(ctx context.Context) (*model.Table, error)
}

// Fetcher retrieves pages. It is implemented by *crawler.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Option configures a routine.
type Option func(*base)

// WithLogger sets the logger for warnings and progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithProgress renders a progress bar on w while targets are processed.
// A nil writer disables the bar.
func WithProgress(w io.Writer) Option {
	return func(b *base) {
		b.progress = w
	}
}

// base holds what every routine needs.
type base struct {
	fetcher  Fetcher
	seed     string
	logger   *slog.Logger
	progress io.Writer
}

func newBase(fetcher Fetcher, seed string, opts []Option) base {
	b := base{
		fetcher: fetcher,
		seed:    seed,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// newBar returns a progress bar for total targets. It writes to io.Discard
// when progress output is disabled.
func (b *base) newBar(total int, description string) *progressbar.ProgressBar {
	w := b.progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(b.progress != nil),
		progressbar.OptionClearOnFinish(),
	)
}

// constructor builds the routine for one mode.
type constructor func(fetcher Fetcher, cfg *config.Config, opts ...Option) Scraper

// registry maps every mode to its routine.
var registry = map[model.Mode]constructor{
	model.ModeWhatsNew: func(f Fetcher, cfg *config.Config, opts ...Option) Scraper {
		return NewWhatsNew(f, cfg.WhatsNewURL, opts...)
	},
	model.ModeLatestVersions: func(f Fetcher, cfg *config.Config, opts ...Option) Scraper {
		return NewLatestVersions(f, cfg.MainDocURL, opts...)
	},
	model.ModeDownload: func(f Fetcher, cfg *config.Config, opts ...Option) Scraper {
		return NewDownload(f, cfg.DownloadsURL, cfg.DownloadsDir(), opts...)
	},
	model.ModePEP: func(f Fetcher, cfg *config.Config, opts ...Option) Scraper {
		return NewPEP(f, cfg.PEPIndexURL, opts...)
	},
}

// New returns the routine for mode, configured from cfg.
func New(mode model.Mode, fetcher Fetcher, cfg *config.Config, opts ...Option) (Scraper, error) {
	build, ok := registry[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownMode, mode)
	}
	return build(fetcher, cfg, opts...), nil
}
