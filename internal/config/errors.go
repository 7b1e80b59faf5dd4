package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidOutput is returned when --output names an unknown format.
	ErrInvalidOutput = errors.New("invalid output: must be one of pretty, file, markdown, json")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCrawlDelay is returned when the delay between requests is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidRetryMax is returned when the retry count is negative.
	ErrInvalidRetryMax = errors.New("invalid retry count: must be non-negative")

	// ErrInvalidCacheTTL is returned when the cache lifetime is negative.
	ErrInvalidCacheTTL = errors.New("invalid cache ttl: must be non-negative (0 keeps entries forever)")

	// ErrConflictingVerbosity is returned when both --verbose and --quiet are set.
	ErrConflictingVerbosity = errors.New("conflicting verbosity: --verbose and --quiet cannot be used together")

	// ErrEmptyURL is returned when one of the seed URLs is blank.
	ErrEmptyURL = errors.New("seed URL must not be empty")
)
