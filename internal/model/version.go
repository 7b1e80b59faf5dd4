package model

import "regexp"

// versionPattern matches the version switcher labels, e.g. "Python 3.12 (stable)".
var versionPattern = regexp.MustCompile(`Python (\d\.\d+) \((.*)\)`)

// VersionEntry is one anchor of the "All versions" list in the documentation sidebar.
type VersionEntry struct {
	// Link is the anchor href exactly as it appears in the page.
	Link string `json:"link"`

	// Version is the "major.minor" part of the label. Empty when the label
	// does not follow the "Python X.Y (status)" pattern.
	Version string `json:"version,omitempty"`

	// Status is the parenthesized status. Empty when the pattern does not match.
	Status string `json:"status,omitempty"`

	// Label is the raw anchor text.
	Label string `json:"label"`
}

// ParseVersionEntry builds a VersionEntry from an anchor href and its visible text.
func ParseVersionEntry(link, label string) VersionEntry {
	entry := VersionEntry{Link: link, Label: label}
	if m := versionPattern.FindStringSubmatch(label); m != nil {
		entry.Version = m[1]
		entry.Status = m[2]
	}
	return entry
}

// Matched reports whether Version and Status were extracted from the label.
func (e VersionEntry) Matched() bool {
	return e.Version != ""
}

// Cells returns the table cells for the entry: (link, version, status) when
// the pattern matched, otherwise (link, label, "").
func (e VersionEntry) Cells() []string {
	if e.Matched() {
		return []string{e.Link, e.Version, e.Status}
	}
	return []string{e.Link, e.Label, ""}
}
