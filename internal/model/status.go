package model

import (
	"fmt"
	"slices"
	"strings"
)

// expectedStatus maps the status code shown in the PEP index to the full
// statuses a PEP page may carry for that code. The empty code is used by
// drafts and active informational PEPs.
var expectedStatus = map[string][]string{
	"A": {"Active", "Accepted"},
	"D": {"Deferred"},
	"F": {"Final"},
	"P": {"Provisional"},
	"R": {"Rejected"},
	"S": {"Superseded"},
	"W": {"Withdrawn"},
	"":  {"Draft", "Active"},
}

// ExpectedStatus returns the statuses consistent with an index status code.
// The returned slice is a copy; ok is false for unknown codes.
func ExpectedStatus(code string) (statuses []string, ok bool) {
	s, ok := expectedStatus[code]
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}

// StatusConsistent reports whether observed is one of the statuses expected for code.
// Unknown codes are never consistent.
func StatusConsistent(code, observed string) bool {
	s, ok := expectedStatus[code]
	if !ok {
		return false
	}
	return slices.Contains(s, observed)
}

// Mismatch records a PEP whose detail page status disagrees with its index code.
// It is diagnostic only.
type Mismatch struct {
	// DetailURL is the absolute URL of the PEP page.
	DetailURL string `json:"detail_url"`

	// Code is the status code shown in the index table.
	Code string `json:"code"`

	// Observed is the status read from the PEP page.
	Observed string `json:"observed"`

	// Expected is the set of statuses the index code allows.
	// Empty when the code is unknown.
	Expected []string `json:"expected"`
}

// String formats the mismatch for log output.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s status on page: %s, expected: [%s]",
		m.DetailURL, m.Observed, strings.Join(m.Expected, ", "))
}
