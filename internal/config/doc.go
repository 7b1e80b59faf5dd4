// Package config provides configuration structures and utilities for pydocscan.
// It defines the target URLs, the HTTP client settings, the on-disk layout
// (downloads, results, logs, cache) and the output preferences.
package config
