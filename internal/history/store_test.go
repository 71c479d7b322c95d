package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/iabetor/pisay/internal/database"
	"github.com/iabetor/pisay/internal/tts"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	results := []tts.Result{
		{ID: "a", Input: "'hello'", Text: "hello", WAVPath: "/out/0001.wav", Samples: 100, SampleRate: 22050, Elapsed: 1500 * time.Millisecond},
		{ID: "b", Input: "!!! ---", Skipped: true},
		{ID: "c", Input: "'bye'", Text: "bye", WAVPath: "/out/0003.wav", Samples: 50, SampleRate: 22050},
	}
	for _, r := range results {
		if err := store.Record(ctx, "piper", r); err != nil {
			t.Fatalf("Record(%s) failed: %v", r.ID, err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "c" || entries[1].ID != "b" {
		t.Errorf("expected newest first [c b], got [%s %s]", entries[0].ID, entries[1].ID)
	}
	if !entries[1].Skipped || entries[1].Filtered != "" {
		t.Errorf("entry b should be skipped with empty filtered text: %+v", entries[1])
	}
	if entries[0].Engine != "piper" || entries[0].WAVPath != "/out/0003.wav" {
		t.Errorf("entry c mismatch: %+v", entries[0])
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries with default limit, got %d", len(all))
	}
	if all[2].Elapsed != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v, want 1.5s", all[2].Elapsed)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.Total != 0 || st.Skipped != 0 {
		t.Errorf("empty store stats = %+v", st)
	}

	store.Record(ctx, "edge", tts.Result{ID: "1", Input: "x", Skipped: true})
	store.Record(ctx, "edge", tts.Result{ID: "2", Input: "'ok'", Text: "ok"})

	st, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.Total != 2 || st.Skipped != 1 {
		t.Errorf("stats = %+v, want {Total:2 Skipped:1}", st)
	}
}

func TestRecord_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := tts.Result{ID: "dup", Input: "'a b'", Text: "a b"}
	if err := store.Record(ctx, "edge", r); err != nil {
		t.Fatalf("first Record failed: %v", err)
	}
	if err := store.Record(ctx, "edge", r); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}
