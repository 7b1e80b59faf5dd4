package model

import "time"

// RunStatus is the outcome of a recorded invocation.
type RunStatus string

const (
	// RunStatusSucceeded means the routine returned without error.
	RunStatusSucceeded RunStatus = "succeeded"

	// RunStatusFailed means the routine or the report writer returned an error.
	RunStatusFailed RunStatus = "failed"
)

// Run is one invocation of the scanner as stored in the history database.
type Run struct {
	// ID is the database identifier, zero before the run is saved.
	ID int64 `json:"id"`

	// Mode is the routine that was executed.
	Mode Mode `json:"mode"`

	// StartedAt and FinishedAt bound the execution.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Status is the outcome.
	Status RunStatus `json:"status"`

	// Error holds the error message of a failed run.
	Error string `json:"error,omitempty"`

	// Table is the produced result. Nil for the download mode and failed runs.
	Table *Table `json:"table,omitempty"`
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
