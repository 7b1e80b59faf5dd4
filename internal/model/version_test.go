package model

import (
	"slices"
	"testing"
)

// TestParseVersionEntry tests the version switcher label pattern.
func TestParseVersionEntry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		label   string
		matched bool
		cells   []string
	}{
		{
			name:    "stable release",
			label:   "Python 3.11 (stable)",
			matched: true,
			cells:   []string{"https://docs.python.org/3.11/", "3.11", "stable"},
		},
		{
			name:    "status with spaces",
			label:   "Python 3.14 (in development)",
			matched: true,
			cells:   []string{"https://docs.python.org/3.11/", "3.14", "in development"},
		},
		{
			name:    "bare version falls back to label",
			label:   "3.9",
			matched: false,
			cells:   []string{"https://docs.python.org/3.11/", "3.9", ""},
		},
		{
			name:    "all versions link falls back",
			label:   "All versions",
			matched: false,
			cells:   []string{"https://docs.python.org/3.11/", "All versions", ""},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			entry := ParseVersionEntry("https://docs.python.org/3.11/", tc.label)
			if entry.Matched() != tc.matched {
				t.Errorf("Matched() = %v, expected %v", entry.Matched(), tc.matched)
			}
			if entry.Label != tc.label {
				t.Errorf("Label = %q, expected %q", entry.Label, tc.label)
			}
			if !slices.Equal(entry.Cells(), tc.cells) {
				t.Errorf("Cells() = %v, expected %v", entry.Cells(), tc.cells)
			}
		})
	}
}
