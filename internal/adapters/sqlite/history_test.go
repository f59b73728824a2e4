package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"postsmith/internal/domain"
)

func TestHistory_RecordAndRecent(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	h, err := Open("/tmp/site/public")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	ctx := context.Background()
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := &domain.BuildRun{
			StartedAt: start.Add(time.Duration(i) * time.Minute),
			Stats: domain.BuildStats{
				Created:  i,
				Saved:    []string{"collection", "tags"},
				Duration: 1500 * time.Millisecond,
			},
		}
		if err := h.Record(ctx, run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		if run.ID == "" {
			t.Error("Record should assign an ID")
		}
	}

	runs, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Stats.Created != 2 {
		t.Errorf("expected newest run first, got created=%d", runs[0].Stats.Created)
	}
	if runs[0].OutputPath != "/tmp/site/public" {
		t.Errorf("unexpected output path %s", runs[0].OutputPath)
	}
	if len(runs[0].Stats.Saved) != 2 || runs[0].Stats.Saved[1] != "tags" {
		t.Errorf("unexpected saved list %v", runs[0].Stats.Saved)
	}
	if runs[0].Stats.Duration != 1500*time.Millisecond {
		t.Errorf("unexpected duration %v", runs[0].Stats.Duration)
	}
	if runs[0].Stats.Reseeded != nil {
		t.Errorf("expected no reseeded indices, got %v", runs[0].Stats.Reseeded)
	}
}

func TestHistory_Retention(t *testing.T) {
	h, err := OpenAt(filepath.Join(t.TempDir(), "ledger.db"), "/out")
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer h.Close()
	h.retention = 2

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := h.Record(ctx, &domain.BuildRun{StartedAt: time.Unix(int64(i), 0)}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected retention to keep 2 runs, got %d", len(runs))
	}
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	a := databasePath("/site/a")
	b := databasePath("/site/b")
	if a == b {
		t.Error("different outputs should use different databases")
	}
	if filepath.Dir(a) != "/data/postsmith" {
		t.Errorf("unexpected directory %s", filepath.Dir(a))
	}
}
