package crawler

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FetchError is returned when a page cannot be retrieved.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("failed to load page %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to load page %s: status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("failed to load page %s: %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// TagNotFoundError is returned when a mandatory element is missing from a page.
type TagNotFoundError struct {
	// URL is the page that was searched. It may be empty.
	URL string

	// Tag is the element name that was searched for.
	Tag string

	// Attrs are the attribute constraints of the search.
	Attrs map[string]string
}

// Error implements the error interface.
func (e *TagNotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("tag not found: ")
	b.WriteString(e.Tag)

	if len(e.Attrs) > 0 {
		pairs := make([]string, 0, len(e.Attrs))
		for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
			pairs = append(pairs, fmt.Sprintf("%s=%q", k, e.Attrs[k]))
		}
		b.WriteString(" {")
		b.WriteString(strings.Join(pairs, " "))
		b.WriteString("}")
	}

	if e.URL != "" {
		b.WriteString(" on ")
		b.WriteString(e.URL)
	}
	return b.String()
}
