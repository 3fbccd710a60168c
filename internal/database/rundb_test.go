package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zvalenta/forumscan/internal/model"
)

func openTestDB(t *testing.T) *RunDB {
	t.Helper()
	rdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return rdb
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database file", func(t *testing.T) {
		t.Parallel()

		rdb := openTestDB(t)
		if _, err := os.Stat(rdb.Path()); err != nil {
			t.Errorf("expected database file at %s: %v", rdb.Path(), err)
		}
	})

	t.Run("refuses a missing database without create", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "missing")
		if _, err := Open(dir, Options{CreateIfNotExists: false}); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

func TestSaveRun(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a run with its pages", func(t *testing.T) {
		t.Parallel()

		rdb := openTestDB(t)
		ctx := context.Background()

		started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		summary := &model.RunSummary{
			Mode:       "forum",
			StartedAt:  started,
			FinishedAt: started.Add(30 * time.Second),
			Succeeded:  1,
			Skipped:    1,
			Pages: []model.PageResult{
				{
					Target: model.CrawlTarget{
						Kind:        model.KindForum,
						Identifier:  "38314",
						StartOffset: "0",
						URL:         "https://forum.pirati.cz/viewtopic.php?t=38314",
					},
					Fetch: model.FetchResult{
						Status:        model.StatusUsable,
						HTTPStatus:    200,
						ContentLength: 5120,
						FetchedAt:     started.Add(2 * time.Second),
					},
					FileName: "topic_38314-0.html",
					Records:  25,
				},
				{
					Target: model.CrawlTarget{
						Kind:        model.KindForum,
						Identifier:  "99999",
						StartOffset: "0",
						URL:         "https://forum.pirati.cz/viewtopic.php?t=99999",
					},
					Fetch: model.FetchResult{
						Status:        model.StatusErrorPage,
						HTTPStatus:    200,
						ContentLength: 900,
						FetchedAt:     started.Add(5 * time.Second),
					},
				},
			},
		}

		runID, err := rdb.SaveRun(ctx, summary)
		if err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		if runID == 0 {
			t.Fatal("expected a non-zero run id")
		}

		last, err := rdb.LastRun(ctx)
		if err != nil {
			t.Fatalf("failed to get last run: %v", err)
		}
		if last == nil {
			t.Fatal("expected a stored run")
		}
		if last.ID != runID || last.Mode != "forum" || last.Pages != 2 || last.Succeeded != 1 || last.Skipped != 1 {
			t.Errorf("run row mismatch: %+v", last)
		}
		if !last.StartedAt.Equal(started) {
			t.Errorf("expected started %v, got %v", started, last.StartedAt)
		}

		pages, err := rdb.RunPages(ctx, runID)
		if err != nil {
			t.Fatalf("failed to get run pages: %v", err)
		}
		if len(pages) != 2 {
			t.Fatalf("expected 2 page rows, got %d", len(pages))
		}
		first := pages[0]
		if first.Identifier != "38314" || first.PageOrOffset != "0" || first.Status != "usable" ||
			first.HTTPStatus != 200 || first.ContentLength != 5120 || first.Records != 25 ||
			first.File != "topic_38314-0.html" {
			t.Errorf("page row mismatch: %+v", first)
		}
		if pages[1].Status != "error-page" || pages[1].File != "" {
			t.Errorf("skip row mismatch: %+v", pages[1])
		}
	})

	t.Run("runs accumulate and the newest wins LastRun", func(t *testing.T) {
		t.Parallel()

		rdb := openTestDB(t)
		ctx := context.Background()

		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			summary := &model.RunSummary{
				Mode:       "election-roll",
				StartedAt:  base.Add(time.Duration(i) * time.Hour),
				FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
			}
			if _, err := rdb.SaveRun(ctx, summary); err != nil {
				t.Fatalf("failed to save run %d: %v", i, err)
			}
		}

		last, err := rdb.LastRun(ctx)
		if err != nil {
			t.Fatalf("failed to get last run: %v", err)
		}
		if want := base.Add(2 * time.Hour); !last.StartedAt.Equal(want) {
			t.Errorf("expected newest run at %v, got %v", want, last.StartedAt)
		}
	})
}

func TestLastRunEmpty(t *testing.T) {
	t.Parallel()

	rdb := openTestDB(t)
	last, err := rdb.LastRun(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != nil {
		t.Errorf("expected no runs, got %+v", last)
	}
}
