package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/pydocscan/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pydocscan"

	// DefaultMainDocURL is the root of the Python 3 documentation.
	DefaultMainDocURL = "https://docs.python.org/3/"

	// DefaultWhatsNewURL is the release notes index.
	DefaultWhatsNewURL = "https://docs.python.org/3/whatsnew/"

	// DefaultDownloadsURL is the documentation download page.
	DefaultDownloadsURL = "https://docs.python.org/3/download.html"

	// DefaultPEPIndexURL is the PEP index with the numerical index table.
	DefaultPEPIndexURL = "https://peps.python.org/"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultCrawlDelay is the minimum spacing between network requests.
	// Cached responses are not delayed.
	DefaultCrawlDelay = 0 * time.Second

	// DefaultRetryMax is the number of retries for failed requests (5xx, connection errors).
	DefaultRetryMax = 3

	// DefaultCacheTTL is the lifetime of cached pages. Zero keeps them until
	// --clear-cache is used.
	DefaultCacheTTL = 0 * time.Second

	// DefaultUserAgent identifies pydocscan in HTTP requests.
	DefaultUserAgent = "pydocscan/1.0 (+https://github.com/nao1215/pydocscan)"

	// DownloadsDirName, ResultsDirName and LogDirName are created under BaseDir.
	DownloadsDirName = "downloads"
	ResultsDirName   = "results"
	LogDirName       = "logs"

	// LogFileName is the name of the rotated log file inside LogDirName.
	LogFileName = "pydocscan.log"

	// LogMaxSizeMB is the size in megabytes at which the log file is rotated.
	LogMaxSizeMB = 1

	// LogMaxBackups is the number of rotated log files kept.
	LogMaxBackups = 5

	// ResultTimeFormat is the timestamp layout of exported result files
	// (YYYY-MM-DD_HH-MM-SS).
	ResultTimeFormat = "2006-01-02_15-04-05"

	// LogTimeFormat is the timestamp layout of log records.
	LogTimeFormat = "02.01.2006 15:04:05"
)

// OutputFormat selects how a result table is reported.
type OutputFormat string

const (
	// OutputDefault prints one line per row with space separated cells.
	OutputDefault OutputFormat = ""

	// OutputPretty prints an aligned table.
	OutputPretty OutputFormat = "pretty"

	// OutputFile writes a CSV file into the results directory.
	OutputFile OutputFormat = "file"

	// OutputMarkdown prints a Markdown table.
	OutputMarkdown OutputFormat = "markdown"

	// OutputJSON prints the table as JSON.
	OutputJSON OutputFormat = "json"
)

// OutputFormats returns the formats accepted by --output.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputPretty, OutputFile, OutputMarkdown, OutputJSON}
}

// Valid reports whether f is a known output format.
func (f OutputFormat) Valid() bool {
	if f == OutputDefault {
		return true
	}
	for _, known := range OutputFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// Config holds all configuration options for pydocscan.
// It is populated from CLI flags and the optional configuration file and
// passed explicitly to the components that need it.
type Config struct {
	// Mode is the extraction routine to run.
	Mode model.Mode

	// MainDocURL is the seed of the latest-versions mode.
	MainDocURL string

	// WhatsNewURL is the seed of the whats-new mode.
	WhatsNewURL string

	// DownloadsURL is the seed of the download mode.
	DownloadsURL string

	// PEPIndexURL is the seed of the pep mode.
	PEPIndexURL string

	// BaseDir is the parent of the downloads, results and logs directories.
	// Defaults to the XDG data directory.
	BaseDir string

	// CacheDir holds the SQLite response cache and run history.
	// Defaults to the XDG cache directory.
	CacheDir string

	// Output selects the report format.
	Output OutputFormat

	// ClearCache empties the response cache before any request is made.
	ClearCache bool

	// Verbose enables debug logging on the console.
	Verbose bool

	// Quiet limits console logging to warnings and errors.
	// The log file always receives info records.
	Quiet bool

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// CrawlDelay is the minimum spacing between network requests.
	CrawlDelay time.Duration

	// RetryMax is the number of retries for failed requests.
	RetryMax int

	// CacheTTL is the lifetime of cached pages; 0 keeps them forever.
	CacheTTL time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// ConfigFilePath is the configuration file given with --config.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MainDocURL:   DefaultMainDocURL,
		WhatsNewURL:  DefaultWhatsNewURL,
		DownloadsURL: DefaultDownloadsURL,
		PEPIndexURL:  DefaultPEPIndexURL,
		BaseDir:      XDGDataDir(),
		CacheDir:     XDGCacheDir(),
		Output:       OutputDefault,
		Timeout:      DefaultTimeout,
		CrawlDelay:   DefaultCrawlDelay,
		RetryMax:     DefaultRetryMax,
		CacheTTL:     DefaultCacheTTL,
		UserAgent:    DefaultUserAgent,
	}
}

// XDGDataDir returns the XDG data directory for pydocscan.
// On Linux: ~/.local/share/pydocscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pydocscan.
// On Linux: ~/.config/pydocscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for pydocscan.
// On Linux: ~/.cache/pydocscan
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// DownloadsDir returns the directory the download mode writes archives to.
func (c *Config) DownloadsDir() string {
	return filepath.Join(c.BaseDir, DownloadsDirName)
}

// ResultsDir returns the directory CSV results are written to.
func (c *Config) ResultsDir() string {
	return filepath.Join(c.BaseDir, ResultsDirName)
}

// LogDir returns the directory of the rotated log file.
func (c *Config) LogDir() string {
	return filepath.Join(c.BaseDir, LogDirName)
}

// LogFile returns the path of the rotated log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.LogDir(), LogFileName)
}

// SeedURL returns the seed URL of a mode.
func (c *Config) SeedURL(m model.Mode) string {
	switch m {
	case model.ModeWhatsNew:
		return c.WhatsNewURL
	case model.ModeLatestVersions:
		return c.MainDocURL
	case model.ModeDownload:
		return c.DownloadsURL
	case model.ModePEP:
		return c.PEPIndexURL
	default:
		return ""
	}
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	if _, err := model.ParseMode(string(c.Mode)); err != nil {
		return err
	}

	if !c.Output.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidOutput, c.Output)
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.RetryMax < 0 {
		return ErrInvalidRetryMax
	}

	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}

	if c.Verbose && c.Quiet {
		return ErrConflictingVerbosity
	}

	for _, m := range model.Modes() {
		seed := c.SeedURL(m)
		if seed == "" {
			return fmt.Errorf("%w: %s", ErrEmptyURL, m)
		}
		u, err := url.Parse(seed)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("invalid seed URL for %s: %q", m, seed)
		}
	}

	return nil
}
