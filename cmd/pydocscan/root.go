package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/pydocscan/internal/config"
	"github.com/nao1215/pydocscan/internal/crawler"
	"github.com/nao1215/pydocscan/internal/database"
	"github.com/nao1215/pydocscan/internal/log"
	"github.com/nao1215/pydocscan/internal/model"
	"github.com/nao1215/pydocscan/internal/pipeline"
	"github.com/nao1215/pydocscan/internal/report"
	"github.com/nao1215/pydocscan/internal/scraper"
)

// NewRootCmd creates the root command for pydocscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pydocscan <mode>",
		Short: "Scrape the Python documentation and the PEP index",
		Long: `pydocscan collects information from docs.python.org and peps.python.org.

Modes:
  whats-new        list the "What's New" articles with title and editors
  latest-versions  list the documentation versions and their status
  download         download the A4 PDF documentation archive
  pep              count PEPs per status, cross-checked against the PEP index

Fetched pages are cached in a SQLite database; use --clear-cache to refetch.

Examples:
  # Print the documentation versions
  pydocscan latest-versions

  # Print the PEP summary as an aligned table
  pydocscan pep -o pretty

  # Save the What's New list as CSV into <base-dir>/results
  pydocscan whats-new -o file

  # Download the documentation archive, ignoring cached pages
  pydocscan download --clear-cache`,
		Version:       getVersion(),
		Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:     model.ModeNames(),
		RunE:          runRootCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on the console")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors on the console")
	cmd.PersistentFlags().String("config", "",
		"Configuration file path (default: .pydocscan in current or home directory)")
	cmd.PersistentFlags().String("base-dir", "",
		"Directory for downloads, results and logs (default: XDG data directory)")
	cmd.PersistentFlags().String("cache-dir", "",
		"Directory of the page cache and run history (default: XDG cache directory)")

	// Mode flags
	cmd.Flags().BoolP("clear-cache", "c", false, "Clear the page cache before scanning")
	cmd.Flags().StringP("output", "o", "",
		"Output format: "+strings.Join(outputNames(), ", ")+" (default: one line per row)")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func outputNames() []string {
	formats := config.OutputFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// runRootCmd runs the selected mode.
func runRootCmd(cmd *cobra.Command, args []string) error {
	mode, err := model.ParseMode(args[0])
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Mode = mode

	cfg.ClearCache, err = cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	cfg.Output = config.OutputFormat(output)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Ctrl-C cancels the in-flight request.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScanner(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildConfig creates a Config from the defaults, the configuration file
// and the global flags, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user named a config file, it must exist. Otherwise a missing
	// file just leaves the defaults in place.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if baseDir, err := cmd.Flags().GetString("base-dir"); err != nil {
		return nil, err
	} else if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if cacheDir, err := cmd.Flags().GetString("cache-dir"); err != nil {
		return nil, err
	} else if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	cfg.Quiet, err = cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runScanner wires the cache, fetcher, routine and writer for one run.
// Results go to stdout; logs and the progress bar go to stderr.
func runScanner(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (err error) {
	logger, logFile, err := log.NewLogger(cfg, stderr)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		err = errors.Join(err, logFile.Close())
	}()

	db, err := database.Open(cfg.CacheDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Debug("database opened", "path", db.Path())

	fetcher := crawler.NewFetcher(
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithRetryMax(cfg.RetryMax),
		crawler.WithCrawlDelay(cfg.CrawlDelay),
		crawler.WithCache(db, cfg.CacheTTL),
		crawler.WithLogger(logger),
	)

	if cfg.ClearCache {
		n, err := fetcher.ClearCache(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		logger.Info("cache cleared", "pages", n)
	}

	writer, err := report.NewWriter(cfg, stdout, logger)
	if err != nil {
		return err
	}

	var progress io.Writer
	if !cfg.Quiet {
		progress = stderr
	}

	resolve := func(mode model.Mode) (scraper.Scraper, error) {
		return scraper.New(mode, fetcher, cfg,
			scraper.WithLogger(logger),
			scraper.WithProgress(progress),
		)
	}

	driver := pipeline.NewDriver(resolve,
		pipeline.WithLogger(logger),
		pipeline.WithWriter(writer),
		pipeline.WithHistory(db),
	)

	err = driver.Run(ctx, cfg.Mode)

	stats := fetcher.Stats()
	logger.Debug("fetch statistics", "requests", stats.Requests, "cacheHits", stats.CacheHits)
	return err
}
