package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/pydocscan/internal/model"
)

// SaveRun stores a finished run and returns its ID. run.ID is set as well.
func (cdb *CrawlDB) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	var tableJSON sql.NullString
	if run.Table != nil {
		data, err := json.Marshal(run.Table)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize table: %w", err)
		}
		tableJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
	INSERT INTO runs (mode, started_at, finished_at, status, error, row_count, table_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := cdb.db.ExecContext(ctx, query,
		string(run.Mode),
		formatTimestamp(run.StartedAt),
		formatTimestamp(run.FinishedAt),
		string(run.Status),
		run.Error,
		run.Table.Len(),
		tableJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// RunMetadata contains summary information about a stored run.
// This is used for listing history without loading the result tables.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Mode is the routine that was executed.
	Mode model.Mode

	// StartedAt and FinishedAt bound the execution.
	StartedAt  time.Time
	FinishedAt time.Time

	// Status is the outcome of the run.
	Status model.RunStatus

	// Error is the message of a failed run.
	Error string

	// RowCount is the number of data rows in the produced table.
	RowCount int
}

// Duration returns how long the run took.
func (m RunMetadata) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// ListRuns returns run metadata, newest first.
// An empty mode lists every mode. A non-positive limit returns all runs.
func (cdb *CrawlDB) ListRuns(ctx context.Context, mode model.Mode, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, mode, started_at, finished_at, status, error, row_count
	FROM runs
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if mode != "" {
		query += " AND mode = ?"
		args = append(args, string(mode))
	}

	query += " ORDER BY id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var modeStr, statusStr, startedAt, finishedAt string
		var errMsg sql.NullString

		if err := rows.Scan(&meta.ID, &modeStr, &startedAt, &finishedAt, &statusStr, &errMsg, &meta.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.Mode = model.Mode(modeStr)
		meta.Status = model.RunStatus(statusStr)
		meta.StartedAt = parseTimestamp(startedAt)
		meta.FinishedAt = parseTimestamp(finishedAt)
		meta.Error = errMsg.String
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRun retrieves a run including its result table by ID.
// It returns nil if no run has that ID.
func (cdb *CrawlDB) GetRun(ctx context.Context, id int64) (*model.Run, error) {
	query := `
	SELECT id, mode, started_at, finished_at, status, error, table_json
	FROM runs
	WHERE id = ?
	`

	var run model.Run
	var modeStr, statusStr, startedAt, finishedAt string
	var errMsg, tableJSON sql.NullString

	err := cdb.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&modeStr,
		&startedAt,
		&finishedAt,
		&statusStr,
		&errMsg,
		&tableJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Mode = model.Mode(modeStr)
	run.Status = model.RunStatus(statusStr)
	run.StartedAt = parseTimestamp(startedAt)
	run.FinishedAt = parseTimestamp(finishedAt)
	run.Error = errMsg.String

	if tableJSON.Valid && tableJSON.String != "" {
		var table model.Table
		if err := json.Unmarshal([]byte(tableJSON.String), &table); err != nil {
			return nil, fmt.Errorf("failed to parse table: %w", err)
		}
		run.Table = &table
	}

	return &run, nil
}
