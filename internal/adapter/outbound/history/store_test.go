package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndList(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	entries := []Entry{
		{CreatedAt: base, Source: "text", Mode: "PARAGRAPH", Length: "SHORT", Summary: "first", SentenceCount: 1, WordCount: 1},
		{CreatedAt: base.Add(time.Minute), Source: "notes.txt", Mode: "BULLET_POINT", Length: "LONG", Summary: "second", SentenceCount: 3, WordCount: 20},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].Summary != "second" || got[1].Summary != "first" {
		t.Errorf("unexpected order: %q, %q", got[0].Summary, got[1].Summary)
	}
	if got[0].Source != "notes.txt" || got[0].Mode != "BULLET_POINT" {
		t.Errorf("unexpected entry: %+v", got[0])
	}
	if !got[0].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("unexpected timestamp: %v", got[0].CreatedAt)
	}
}

func TestListRespectsLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Append(ctx, Entry{Source: "text", Mode: "PARAGRAPH", Length: "SHORT", Summary: "s"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
}

func TestListEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	got, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Append(context.Background(), Entry{Source: "text", Mode: "PARAGRAPH", Length: "MEDIUM", Summary: "persisted"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Summary != "persisted" {
		t.Errorf("expected persisted entry after reopen, got %+v", got)
	}
}
