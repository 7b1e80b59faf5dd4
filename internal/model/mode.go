package model

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects one of the extraction routines.
type Mode string

const (
	// ModeWhatsNew collects the "What's New" release notes.
	ModeWhatsNew Mode = "whats-new"

	// ModeLatestVersions collects the documentation version switcher entries.
	ModeLatestVersions Mode = "latest-versions"

	// ModeDownload downloads the A4 PDF documentation archive.
	ModeDownload Mode = "download"

	// ModePEP summarizes PEP statuses cross-checked against the PEP index.
	ModePEP Mode = "pep"
)

// ErrUnknownMode is returned by ParseMode for names outside Modes().
var ErrUnknownMode = errors.New("unknown mode")

// Modes returns every supported mode in the order they are documented.
func Modes() []Mode {
	return []Mode{ModeWhatsNew, ModeLatestVersions, ModeDownload, ModePEP}
}

// ModeNames returns Modes() as strings, e.g. for cobra ValidArgs.
func ModeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// ParseMode converts a command line argument to a Mode.
func ParseMode(s string) (Mode, error) {
	candidate := Mode(strings.TrimSpace(s))
	for _, m := range Modes() {
		if m == candidate {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid modes: %s)", ErrUnknownMode, s, strings.Join(ModeNames(), ", "))
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}
