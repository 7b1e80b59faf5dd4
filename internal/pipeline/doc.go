// Package pipeline drives a single pydocscan invocation.
//
// The Driver resolves the extraction routine for the selected mode, runs it
// exactly once, forwards a non-empty table to the report writer and records
// the outcome in the run history. Start and end markers are logged around
// every run, including failed and panicking ones, so the log file shows
// where each invocation begins and ends.
package pipeline
