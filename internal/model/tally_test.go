package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestStatusTally tests counting and first-seen ordering.
func TestStatusTally(t *testing.T) {
	t.Parallel()

	t.Run("keeps first-seen order and appends total", func(t *testing.T) {
		t.Parallel()

		tally := NewStatusTally()
		for _, s := range []string{"Final", "Final", "Draft"} {
			tally.Increment(s)
		}

		want := &Table{
			Header: Row{"Status", "Count"},
			Rows: []Row{
				{"Final", "2"},
				{"Draft", "1"},
				{"Total", "3"},
			},
		}
		if diff := cmp.Diff(want, tally.Table()); diff != "" {
			t.Errorf("Table() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		var tally StatusTally
		tally.Increment("Active")
		if tally.Count("Active") != 1 {
			t.Errorf("expected count 1, got %d", tally.Count("Active"))
		}
		if tally.Count("Rejected") != 0 {
			t.Errorf("expected count 0 for unseen status")
		}
	})

	t.Run("empty tally still has total row", func(t *testing.T) {
		t.Parallel()

		table := NewStatusTally().Table()
		if len(table.Rows) != 1 || table.Rows[0][0] != TotalLabel || table.Rows[0][1] != "0" {
			t.Errorf("unexpected rows: %v", table.Rows)
		}
	})

	t.Run("statuses returns a copy", func(t *testing.T) {
		t.Parallel()

		tally := NewStatusTally()
		tally.Increment("Final")
		s := tally.Statuses()
		s[0] = "changed"
		if tally.Statuses()[0] != "Final" {
			t.Error("Statuses() exposes internal slice")
		}
	})
}
