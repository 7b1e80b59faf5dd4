// Package model defines the data structures shared by the pydocscan packages.
//
// This package contains the following main types:
//   - Mode: The scraping mode selected on the command line
//   - Table: The tabular result handed to the report writers
//   - VersionEntry: One entry of the documentation version switcher
//   - StatusTally: Ordered per-status PEP counters
//   - ExpectedStatus / Mismatch: The PEP index cross-check
//   - Run: A recorded invocation stored in the history database
//
// The types are plain values that serialize to JSON so the database package
// can persist them without knowing the scraper internals.
package model
