package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecentNewestFirst(t *testing.T) {
	store := openTestStore(t, 10)

	t1 := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Minute)

	entries := []Entry{
		{ID: "1", SubmittedAt: t1, Field: "comment", Value: "first"},
		{ID: "2", SubmittedAt: t2, Field: "comment", Value: "second"},
		{ID: "3", SubmittedAt: t1, Field: "tag", Value: "other"},
	}
	for _, entry := range entries {
		if err := store.Append(entry); err != nil {
			t.Fatalf("append %s: %v", entry.ID, err)
		}
	}

	got, err := store.Recent("comment", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 comment entries, got %d", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "1" {
		t.Fatalf("expected newest-first order, got %q then %q", got[0].ID, got[1].ID)
	}

	all, err := store.Recent("", 10)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries across fields, got %d", len(all))
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t, 10)

	if err := store.Append(Entry{Field: "comment", Value: "hello"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.Recent("comment", 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one entry, got %d", len(got))
	}
	if got[0].ID == "" {
		t.Fatalf("expected generated ID")
	}
	if got[0].SubmittedAt.IsZero() {
		t.Fatalf("expected generated timestamp")
	}
}

func TestAppendSkipsBlankValues(t *testing.T) {
	store := openTestStore(t, 10)

	if err := store.Append(Entry{Field: "comment", Value: "   "}); err != nil {
		t.Fatalf("append blank: %v", err)
	}
	got, err := store.Recent("comment", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected blank submissions to be dropped, got %d entries", len(got))
	}
}

func TestAppendPrunesPerField(t *testing.T) {
	store := openTestStore(t, 3)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := Entry{
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			Field:       "comment",
			Value:       string(rune('a' + i)),
		}
		if err := store.Append(entry); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := store.Recent("comment", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected prune to keep 3 entries, got %d", len(got))
	}
	if got[0].Value != "e" || got[2].Value != "c" {
		t.Fatalf("expected newest three kept, got %q..%q", got[0].Value, got[2].Value)
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t, 10)

	if err := store.Append(Entry{ID: "x", Field: "comment", Value: "bye"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	ok, err := store.Delete("x")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatalf("expected delete to report the entry existed")
	}
	ok, err = store.Delete("x")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Fatalf("expected second delete to be a no-op")
	}
}

func TestClearField(t *testing.T) {
	store := openTestStore(t, 10)

	seed := []Entry{
		{ID: "1", Field: "comment", Value: "a"},
		{ID: "2", Field: "tag", Value: "b"},
	}
	for _, entry := range seed {
		if err := store.Append(entry); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := store.Clear("comment"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	left, err := store.Recent("", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(left) != 1 || left[0].Field != "tag" {
		t.Fatalf("expected only tag entries to survive, got %v", left)
	}
}
