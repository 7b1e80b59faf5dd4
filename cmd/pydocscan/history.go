package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nao1215/pydocscan/internal/database"
	"github.com/nao1215/pydocscan/internal/model"
	"github.com/nao1215/pydocscan/internal/report"
)

// defaultHistoryLimit is the number of runs listed without --limit.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command lists runs stored in the database and prints stored tables.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs",
		Long: `History lists previous pydocscan runs recorded in the database.

Every run stores its mode, duration, outcome and, for table producing modes,
the result table. Use --show to print the table of one run again.

Examples:
  # List the latest runs
  pydocscan history

  # List only pep runs
  pydocscan history --mode pep

  # Print the table produced by run 12
  pydocscan history --show 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("mode", "m", "", "Only list runs of this mode")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64P("show", "s", 0, "Print the result table of the run with this ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var mode model.Mode
	if name, err := cmd.Flags().GetString("mode"); err != nil {
		return err
	} else if name != "" {
		if mode, err = model.ParseMode(name); err != nil {
			return err
		}
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.CacheDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if showID != 0 {
		return showRun(ctx, cmd.OutOrStdout(), db, showID)
	}
	return listRuns(ctx, cmd.OutOrStdout(), db, mode, limit)
}

// listRuns prints run metadata as a table.
func listRuns(ctx context.Context, w io.Writer, db *database.CrawlDB, mode model.Mode, limit int) error {
	runs, err := db.ListRuns(ctx, mode, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Mode", "Started", "Duration", "Status", "Rows"})
	for _, r := range runs {
		status := string(r.Status)
		if r.Error != "" {
			status += ": " + r.Error
		}
		tw.AppendRow(table.Row{
			r.ID,
			r.Mode,
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration().Round(time.Millisecond),
			status,
			r.RowCount,
		})
	}

	_, err = fmt.Fprintln(w, tw.Render())
	return err
}

// showRun prints the stored table of one run.
func showRun(ctx context.Context, w io.Writer, db *database.CrawlDB, id int64) error {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found (use 'pydocscan history' to see available IDs)", id)
	}
	if run.Table == nil {
		if run.Error != "" {
			return fmt.Errorf("run %d failed: %s", id, run.Error)
		}
		return fmt.Errorf("run %d produced no table", id)
	}

	fmt.Fprintf(w, "Run %d: %s, %s\n", run.ID, run.Mode, run.StartedAt.Local().Format(time.DateTime))
	_, err = report.NewPrettyWriter(w).Write(run.Mode, run.Table)
	return err
}
