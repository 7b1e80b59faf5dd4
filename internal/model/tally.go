package model

import "strconv"

// TotalLabel is the label of the synthetic last row of a status summary.
const TotalLabel = "Total"

// StatusTally counts PEPs per authoritative status.
// Statuses keep the order in which they were first seen.
// The zero value is ready to use.
type StatusTally struct {
	order  []string
	counts map[string]int
}

// NewStatusTally returns an empty tally.
func NewStatusTally() *StatusTally {
	return &StatusTally{counts: make(map[string]int)}
}

// Increment adds one to the counter of status, inserting it with count 1
// when it was not seen before.
func (s *StatusTally) Increment(status string) {
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
	if _, ok := s.counts[status]; !ok {
		s.order = append(s.order, status)
	}
	s.counts[status]++
}

// Count returns the counter of status, 0 when never seen.
func (s *StatusTally) Count(status string) int {
	return s.counts[status]
}

// Statuses returns the distinct statuses in first-seen order.
func (s *StatusTally) Statuses() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Total returns the sum of all counters.
func (s *StatusTally) Total() int {
	total := 0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// Table renders the tally as (Status, Count) rows followed by the Total row.
func (s *StatusTally) Table() *Table {
	t := NewTable("Status", "Count")
	for _, status := range s.order {
		t.Rows = append(t.Rows, Row{status, strconv.Itoa(s.counts[status])})
	}
	t.Rows = append(t.Rows, Row{TotalLabel, strconv.Itoa(s.Total())})
	return t
}
