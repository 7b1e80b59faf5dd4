package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/pydocscan/internal/model"
)

func TestRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	newTable := func(t *testing.T) *model.Table {
		t.Helper()
		table := model.NewTable("Status", "Count")
		if err := table.Append("Final", "3"); err != nil {
			t.Fatal(err)
		}
		if err := table.Append("Total", "3"); err != nil {
			t.Fatal(err)
		}
		return table
	}

	t.Run("save and get round trip", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := &model.Run{
			Mode:       model.ModePEP,
			StartedAt:  started,
			FinishedAt: started.Add(3 * time.Second),
			Status:     model.RunStatusSucceeded,
			Table:      newTable(t),
		}

		id, err := db.SaveRun(ctx, run)
		if err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		if id == 0 || run.ID != id {
			t.Errorf("expected run.ID to be set, got id=%d run.ID=%d", id, run.ID)
		}

		got, err := db.GetRun(ctx, id)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if got == nil {
			t.Fatal("expected run")
		}
		if got.Mode != model.ModePEP || got.Status != model.RunStatusSucceeded {
			t.Errorf("unexpected run: %+v", got)
		}
		if got.Duration() != 3*time.Second {
			t.Errorf("expected 3s duration, got %v", got.Duration())
		}
		if diff := cmp.Diff(run.Table, got.Table); diff != "" {
			t.Errorf("table mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("failed run without table", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		id, err := db.SaveRun(ctx, &model.Run{
			Mode:       model.ModeDownload,
			StartedAt:  started,
			FinishedAt: started,
			Status:     model.RunStatusFailed,
			Error:      "fetch https://docs.python.org/3/download.html: status 404",
		})
		if err != nil {
			t.Fatal(err)
		}

		got, err := db.GetRun(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Table != nil {
			t.Errorf("expected nil table, got %+v", got.Table)
		}
		if got.Error == "" {
			t.Error("expected error message to be stored")
		}
	})

	t.Run("get unknown ID returns nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		got, err := db.GetRun(ctx, 42)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("list is newest first and filters by mode", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		modes := []model.Mode{model.ModePEP, model.ModeWhatsNew, model.ModePEP}
		for i, m := range modes {
			_, err := db.SaveRun(ctx, &model.Run{
				Mode:       m,
				StartedAt:  started.Add(time.Duration(i) * time.Minute),
				FinishedAt: started.Add(time.Duration(i)*time.Minute + time.Second),
				Status:     model.RunStatusSucceeded,
				Table:      newTable(t),
			})
			if err != nil {
				t.Fatal(err)
			}
		}

		all, err := db.ListRuns(ctx, "", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(all))
		}
		if all[0].ID != 3 || all[2].ID != 1 {
			t.Errorf("expected newest first, got ids %d..%d", all[0].ID, all[2].ID)
		}
		if all[0].RowCount != 2 {
			t.Errorf("expected row count 2, got %d", all[0].RowCount)
		}
		if all[0].Duration() != time.Second {
			t.Errorf("expected 1s duration, got %v", all[0].Duration())
		}

		peps, err := db.ListRuns(ctx, model.ModePEP, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(peps) != 2 {
			t.Errorf("expected 2 pep runs, got %d", len(peps))
		}

		limited, err := db.ListRuns(ctx, "", 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(limited) != 1 {
			t.Errorf("expected 1 run with limit, got %d", len(limited))
		}
	})

	t.Run("clearing the cache keeps history", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if _, err := db.SaveRun(ctx, &model.Run{Mode: model.ModePEP, StartedAt: started, FinishedAt: started, Status: model.RunStatusSucceeded}); err != nil {
			t.Fatal(err)
		}
		if _, err := db.ClearPages(ctx); err != nil {
			t.Fatal(err)
		}
		runs, err := db.ListRuns(ctx, "", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 1 {
			t.Errorf("expected history to survive cache clear, got %d runs", len(runs))
		}
	})
}
