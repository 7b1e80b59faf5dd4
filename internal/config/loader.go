package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pydocscan"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .pydocscan configuration file.
// Every field is optional; zero values keep the built-in defaults.
type File struct {
	// BaseDir overrides the parent directory of downloads, results and logs.
	BaseDir string `yaml:"baseDir,omitempty"`

	// CacheDir overrides the directory of the SQLite cache.
	CacheDir string `yaml:"cacheDir,omitempty"`

	// URLs overrides the seed URLs, e.g. to scrape a mirror.
	URLs URLSettings `yaml:"urls,omitempty"`

	// HTTP overrides the client settings.
	HTTP HTTPSettings `yaml:"http,omitempty"`
}

// URLSettings holds seed URL overrides.
type URLSettings struct {
	MainDoc   string `yaml:"mainDoc,omitempty"`
	WhatsNew  string `yaml:"whatsNew,omitempty"`
	Downloads string `yaml:"downloads,omitempty"`
	PEPIndex  string `yaml:"pepIndex,omitempty"`
}

// HTTPSettings holds HTTP client overrides. Durations use Go syntax ("30s", "24h").
type HTTPSettings struct {
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	CrawlDelay time.Duration `yaml:"crawlDelay,omitempty"`
	RetryMax   *int          `yaml:"retryMax,omitempty"`
	CacheTTL   time.Duration `yaml:"cacheTTL,omitempty"`
	UserAgent  string        `yaml:"userAgent,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .pydocscan in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .pydocscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// ApplyFile overrides the configuration with the non-zero values of cf.
// CLI flags are applied afterwards by the caller and win over the file.
func (c *Config) ApplyFile(cf *File) {
	if cf == nil {
		return
	}

	if cf.BaseDir != "" {
		c.BaseDir = cf.BaseDir
	}
	if cf.CacheDir != "" {
		c.CacheDir = cf.CacheDir
	}

	if cf.URLs.MainDoc != "" {
		c.MainDocURL = cf.URLs.MainDoc
	}
	if cf.URLs.WhatsNew != "" {
		c.WhatsNewURL = cf.URLs.WhatsNew
	}
	if cf.URLs.Downloads != "" {
		c.DownloadsURL = cf.URLs.Downloads
	}
	if cf.URLs.PEPIndex != "" {
		c.PEPIndexURL = cf.URLs.PEPIndex
	}

	if cf.HTTP.Timeout != 0 {
		c.Timeout = cf.HTTP.Timeout
	}
	if cf.HTTP.CrawlDelay != 0 {
		c.CrawlDelay = cf.HTTP.CrawlDelay
	}
	if cf.HTTP.RetryMax != nil {
		c.RetryMax = *cf.HTTP.RetryMax
	}
	if cf.HTTP.CacheTTL != 0 {
		c.CacheTTL = cf.HTTP.CacheTTL
	}
	if cf.HTTP.UserAgent != "" {
		c.UserAgent = cf.HTTP.UserAgent
	}
}
